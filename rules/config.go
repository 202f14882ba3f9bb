package rules

// Config holds the game tunables read by the rules.
type Config struct {
	Width  int
	Height int

	MinFPS      int
	MaxFPS      int
	StartingFPS int

	DefaultFood   int
	FoodGrowth    int
	FoodColor     string
	SwapFoodColor string
	// SwapChance is the N in the 1 in N chance of a new food being SWAP,
	// zero disables SWAP food.
	SwapChance int

	StartLength    int
	MinStartLength int
	MaxStartLength int
	KillGrowth     int

	MaxBots         int
	DefaultBots     int
	BotWanderChance int

	// SpawnProbes is the number of random cells tried before scanning the
	// whole board for a free one.
	SpawnProbes int
}

// DefaultConfig returns the settings the arena ships with.
func DefaultConfig() Config {
	return Config{
		Width:           50,
		Height:          50,
		MinFPS:          1,
		MaxFPS:          60,
		StartingFPS:     8,
		DefaultFood:     20,
		FoodGrowth:      1,
		FoodColor:       "#ff0000",
		SwapFoodColor:   "#ffffff",
		SwapChance:      25,
		StartLength:     5,
		MinStartLength:  1,
		MaxStartLength:  100,
		KillGrowth:      5,
		MaxBots:         10,
		DefaultBots:     5,
		BotWanderChance: 20,
		SpawnProbes:     20,
	}
}
