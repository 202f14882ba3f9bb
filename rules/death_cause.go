package rules

const (
	// DeathCauseSnakeCollision is the death reason when a head runs into another snake's body
	DeathCauseSnakeCollision = "snake-collision"
	// DeathCauseSelfCollision is the death reason when a head runs into its own body
	DeathCauseSelfCollision = "self-collision"
	// DeathCauseHeadToHeadCollision is when two or more heads land on the same cell
	DeathCauseHeadToHeadCollision = "head-collision"
	// DeathCauseWallCollision is when a snake runs off the board
	DeathCauseWallCollision = "wall-collision"
)

// Death records why a player died during a tick.
type Death struct {
	PlayerID string `json:"playerId" msgpack:"playerId"`
	Cause    string `json:"cause" msgpack:"cause"`
	KillerID string `json:"killerId,omitempty" msgpack:"killerId,omitempty"`
}
