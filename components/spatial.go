package components

import (
	"fmt"
	"math/rand"
)

// Position is a grid coordinate. Bounds are enforced by the world, not here.
type Position struct {
	X, Y int
}

// Direction is one of the four cardinal unit steps.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions is the fixed enumeration order used for neighbor scans.
var Directions = [...]Direction{North, East, South, West}

// Delta returns the unit displacement. North is toward y = 0.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Invalid"
}

// RandomDirection draws a direction uniformly.
func RandomDirection(rng *rand.Rand) Direction {
	return Directions[rng.Intn(len(Directions))]
}

// DistanceTo returns the Manhattan distance between p and q.
func (p Position) DistanceTo(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// DirectionTo returns the single step that best approaches q.
// The horizontal axis wins only when strictly dominant, so diagonal ties go North/South.
func (p Position) DirectionTo(q Position) Direction {
	dx := q.X - p.X
	dy := q.Y - p.Y

	if abs(dx) > abs(dy) {
		if dx > 0 {
			return East
		}
		return West
	}
	if dy > 0 {
		return South
	}
	return North
}

// DirectionFrom returns the single step that best moves away from q.
func (p Position) DirectionFrom(q Position) Direction {
	dx := q.X - p.X
	dy := q.Y - p.Y

	if abs(dx) > abs(dy) {
		if dx > 0 {
			return West
		}
		return East
	}
	if dy > 0 {
		return North
	}
	return South
}

// Step returns the position one unit away in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String formats the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
