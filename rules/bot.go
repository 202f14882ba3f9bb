package rules

// BotDirector steers bot players away from walls and bodies.
type BotDirector struct {
	occupancy    *Occupancy
	rng          RNG
	wanderChance int
}

// NewBotDirector returns a director reading the given index. wanderChance is
// the N in the 1 in N chance of a bot turning at random on a tick, zero
// disables wandering.
func NewBotDirector(occupancy *Occupancy, rng RNG, wanderChance int) *BotDirector {
	return &BotDirector{
		occupancy:    occupancy,
		rng:          rng,
		wanderChance: wanderChance,
	}
}

// Steer picks the direction of a bot for the coming tick.
func (b *BotDirector) Steer(bot *Player) {
	if b.wanderChance > 0 && b.rng.Intn(b.wanderChance) == 0 {
		b.ChangeToRandomDirection(bot)
	}
	b.ChangeDirectionIfInDanger(bot)
}

// IsInDanger reports whether the cell lookahead steps from head in dir is out
// of bounds or occupied by a player.
func (b *BotDirector) IsInDanger(head Coordinate, dir Direction, lookahead int) bool {
	c := head.Step(dir, lookahead)
	return b.occupancy.IsOutOfBounds(c) || !b.occupancy.IsSafe(c)
}

// isClear reports whether every cell from 1 up to lookahead steps ahead is
// free.
func (b *BotDirector) isClear(head Coordinate, dir Direction, lookahead int) bool {
	for n := 1; n <= lookahead; n++ {
		if b.IsInDanger(head, dir, n) {
			return false
		}
	}
	return true
}

// ChangeDirectionIfInDanger turns the bot when something is in its way
// within two cells. A clear perpendicular is preferred, then one that is
// clear for a single cell, then any move that is not a reversal.
func (b *BotDirector) ChangeDirectionIfInDanger(bot *Player) {
	head, ok := bot.Head()
	if !ok {
		return
	}
	if b.isClear(head, bot.Direction, 2) {
		return
	}
	perpendiculars := bot.Direction.Perpendiculars()
	for _, lookahead := range []int{2, 1} {
		safe := make([]Direction, 0, 2)
		for _, d := range perpendiculars {
			if bot.CanTurn(d) && b.isClear(head, d, lookahead) {
				safe = append(safe, d)
			}
		}
		if len(safe) > 0 {
			bot.ChangeDirection(b.pick(safe))
			return
		}
	}

	moves := turns(bot)
	safe := make([]Direction, 0, len(moves))
	for _, d := range moves {
		if !b.IsInDanger(head, d, 1) {
			safe = append(safe, d)
		}
	}
	if len(safe) == 0 {
		safe = moves
	}
	bot.ChangeDirection(b.pick(safe))
}

// ChangeToRandomDirection turns the bot to any move that is not a reversal.
func (b *BotDirector) ChangeToRandomDirection(bot *Player) {
	bot.ChangeDirection(b.pick(turns(bot)))
}

// turns lists the valid next moves the bot is allowed to take.
func turns(bot *Player) []Direction {
	moves := []Direction{}
	for _, d := range ValidNextMoves(bot.Direction) {
		if bot.CanTurn(d) {
			moves = append(moves, d)
		}
	}
	return moves
}

func (b *BotDirector) pick(dirs []Direction) Direction {
	if len(dirs) == 0 {
		return ""
	}
	if len(dirs) == 1 {
		return dirs[0]
	}
	return dirs[b.rng.Intn(len(dirs))]
}
