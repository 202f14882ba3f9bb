package rules

// Status is the lifecycle state of a player.
type Status string

const (
	// StatusActive represents a player that is on the board and moving
	StatusActive Status = "ACTIVE"
	// StatusSpectating represents a connected player that only watches
	StatusSpectating Status = "SPECTATING"
	// StatusPendingRespawn represents a player that died this tick, or could
	// not be placed yet, and is waiting for a fresh body
	StatusPendingRespawn Status = "PENDING_RESPAWN"
)
