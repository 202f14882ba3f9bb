package rules

// Player is a snake on the board. The record is owned by the PlayerRegistry,
// the game only mutates its direction, segments and status.
type Player struct {
	ID        string
	Name      string
	Color     string
	Direction Direction
	Segments  []Coordinate
	Status    Status
	IsBot     bool

	// movedDirection is the direction of the last completed move, it stops
	// two quick turns inside one tick from reversing the snake into itself.
	movedDirection Direction
	growth         int
}

// NewPlayer returns a player record that still needs to be placed.
func NewPlayer(id, name, color string, isBot bool) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Color:     color,
		Direction: DirectionRight,
		Status:    StatusPendingRespawn,
		IsBot:     isBot,
	}
}

// CanTurn reports whether d would not reverse the player into itself.
func (p *Player) CanTurn(d Direction) bool {
	if !d.Valid() || d == p.Direction.Opposite() {
		return false
	}
	return p.movedDirection == "" || d != p.movedDirection.Opposite()
}

// ChangeDirection turns the player. A reversal into itself is ignored.
func (p *Player) ChangeDirection(d Direction) {
	if p.CanTurn(d) {
		p.Direction = d
	}
}

// Head returns the first segment.
func (p *Player) Head() (Coordinate, bool) {
	if len(p.Segments) == 0 {
		return Coordinate{}, false
	}
	return p.Segments[0], true
}

// NextHead returns where the head will be after moving one cell.
func (p *Player) NextHead() (Coordinate, bool) {
	h, ok := p.Head()
	if !ok {
		return Coordinate{}, false
	}
	return h.Step(p.Direction, 1), true
}

// Move the player 1 space in its current direction. The tail is dropped
// unless the player has growth credit left.
func (p *Player) Move() {
	next, ok := p.NextHead()
	if !ok {
		return
	}
	body := make([]Coordinate, 0, len(p.Segments)+1)
	body = append(body, next)
	if p.growth > 0 {
		p.growth--
		body = append(body, p.Segments...)
	} else {
		body = append(body, p.Segments[:len(p.Segments)-1]...)
	}
	p.Segments = body
	p.movedDirection = p.Direction
}

// Grow adds growth credit, one segment is added per move until it runs out.
func (p *Player) Grow(n int) {
	if n > 0 {
		p.growth += n
	}
}

// Growth returns the growth credit that has not been applied yet.
func (p *Player) Growth() int {
	return p.growth
}

// Length is the number of segments the player will have once all growth
// credit has been applied.
func (p *Player) Length() int {
	return len(p.Segments) + p.growth
}

// ClearSegments removes the body from the player.
func (p *Player) ClearSegments() {
	p.Segments = nil
	p.growth = 0
}

// Reset gives the player a fresh body facing dir. extraGrowth segments are
// added over the next moves.
func (p *Player) Reset(segments []Coordinate, dir Direction, extraGrowth int) {
	p.Segments = segments
	p.Direction = dir
	p.movedDirection = ""
	p.growth = 0
	p.Grow(extraGrowth)
	p.Status = StatusActive
}

// swapBodies exchanges the kinematic state of two players.
func swapBodies(a, b *Player) {
	a.Segments, b.Segments = b.Segments, a.Segments
	a.Direction, b.Direction = b.Direction, a.Direction
	a.movedDirection, b.movedDirection = b.movedDirection, a.movedDirection
	a.growth, b.growth = b.growth, a.growth
}
