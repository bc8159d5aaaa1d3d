package sketch

import "strings"

// Direction identifies one wall of a room rectangle.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"north", "east", "south", "west"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Opposite returns the facing direction, the wall a neighbor shares.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Horizontal reports whether the wall runs east-west on screen, which
// is true for the north and south walls.
func (d Direction) Horizontal() bool {
	return d == North || d == South
}

// ParseDirection maps a stored direction string to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, true
	case "east":
		return East, true
	case "south":
		return South, true
	case "west":
		return West, true
	}
	return North, false
}

// DirectionFromWallIndex maps the numeric wall index used by older
// mobile clients: 0=north, 1=east, 2=south, 3=west.
func DirectionFromWallIndex(i int) (Direction, bool) {
	if i < 0 || i > 3 {
		return North, false
	}
	return Direction(i), true
}
