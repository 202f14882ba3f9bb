package rules

// PlayerRegistry owns player records. Lookups of unknown ids report ok=false
// and every mutation on an unknown id is a no-op.
type PlayerRegistry interface {
	AddPlayer(p *Player)
	Player(id string) (*Player, bool)
	// Players returns every player ordered by id.
	Players() []*Player
	NumberOfPlayers() int
	// AnActivePlayer picks a random active player other than excludeID.
	AnActivePlayer(excludeID string) (*Player, bool)
	AddPlayerIDToRespawn(id string)
	PlayersMarkedForRespawn() []string
	ResetPlayerState(id string)
	UpdatePlayerStatusToSpectating(id string)
	RemovePlayer(id string)
}

// Stat is the running tally of a single player.
type Stat struct {
	Score  int `json:"score" msgpack:"score"`
	Kills  int `json:"kills" msgpack:"kills"`
	Deaths int `json:"deaths" msgpack:"deaths"`
}

// StatBoard keeps the score of every player.
type StatBoard interface {
	IncreaseScore(id string)
	AddKill(id string)
	AddDeath(id string)
	Stat(id string) Stat
}

// VictimSummary describes one participant of a mutual kill.
type VictimSummary struct {
	Name  string `json:"name" msgpack:"name"`
	Color string `json:"color" msgpack:"color"`
}

// Notifier delivers game events. Every call is one way, a missing target is
// not an error and nothing is returned.
type Notifier interface {
	BroadcastKill(killerName, victimName, killerColor, victimColor string, newLength int)
	BroadcastSuicide(name, color string)
	BroadcastKillEachOther(victims []VictimSummary)
	BroadcastRanIntoWall(name, color string)
	NotifyPlayerDied(id string)
	NotifyPlayerMadeAKill(id string)
	NotifyPlayerFoodCollected(id, text string, at Coordinate, color string, isSwap bool)
	BroadcastNotification(text, color string)
	BroadcastGameState(state *GameState)
}

// NameAllocator hands out unique names and ids.
type NameAllocator interface {
	FoodID() string
	ReturnFoodID(id string)
	BotID() string
	PlayerName() string
	ReleaseName(name string)
}

// RNG returns a non-negative pseudo random number in [0,n). *rand.Rand
// satisfies it.
type RNG interface {
	Intn(n int) int
}
