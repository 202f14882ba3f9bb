package rules

import (
	"fmt"
	"strings"
)

// Coordinate is a cell on the board. The origin is the top left corner.
type Coordinate struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Equal checks if 2 coordinates are the same x,y cell
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// Step returns the coordinate n cells away in the given direction.
func (c Coordinate) Step(dir Direction, n int) Coordinate {
	switch dir {
	case DirectionUp:
		return Coordinate{X: c.X, Y: c.Y - n}
	case DirectionDown:
		return Coordinate{X: c.X, Y: c.Y + n}
	case DirectionLeft:
		return Coordinate{X: c.X - n, Y: c.Y}
	case DirectionRight:
		return Coordinate{X: c.X + n, Y: c.Y}
	}
	return c
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is the heading of a player.
type Direction string

const (
	// DirectionUp moves towards y = 0
	DirectionUp Direction = "UP"
	// DirectionDown moves towards y = height
	DirectionDown Direction = "DOWN"
	// DirectionLeft moves towards x = 0
	DirectionLeft Direction = "LEFT"
	// DirectionRight moves towards x = width
	DirectionRight Direction = "RIGHT"
)

// Directions lists every direction in a fixed order.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// ParseDirection parses a direction case insensitively.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if d.Valid() {
		return d, nil
	}
	return "", fmt.Errorf("rules: invalid direction %q", s)
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// Opposite returns the reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return d
}

// Perpendiculars returns the two directions at a right angle to d, in the
// same order as Directions.
func (d Direction) Perpendiculars() [2]Direction {
	switch d {
	case DirectionLeft, DirectionRight:
		return [2]Direction{DirectionUp, DirectionDown}
	}
	return [2]Direction{DirectionLeft, DirectionRight}
}

// ValidNextMoves lists every direction except the reversal of d.
func ValidNextMoves(d Direction) []Direction {
	moves := make([]Direction, 0, len(Directions))
	for _, m := range Directions {
		if m != d.Opposite() {
			moves = append(moves, m)
		}
	}
	return moves
}
