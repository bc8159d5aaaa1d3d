package sketch

// Point is a position in plan pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a straight segment between two points.
type Line struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Rect is an axis-aligned rectangle in plan pixel space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside r, edges inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// overlaps reports whether the interiors of two rectangles intersect.
// Rectangles that only share an edge do not overlap, so rooms can sit
// flush against each other.
func (r Rect) overlaps(o Rect) bool {
	const eps = 0.001
	return r.X < o.Right()-eps && r.Right() > o.X+eps &&
		r.Y < o.Bottom()-eps && r.Bottom() > o.Y+eps
}

// Wall returns one wall of r as its two endpoints. North and south
// walls run left to right, east and west walls top to bottom, matching
// the offset convention used everywhere else.
func (r Rect) Wall(d Direction) (Point, Point) {
	switch d {
	case North:
		return Point{r.X, r.Y}, Point{r.Right(), r.Y}
	case South:
		return Point{r.X, r.Bottom()}, Point{r.Right(), r.Bottom()}
	case East:
		return Point{r.Right(), r.Y}, Point{r.Right(), r.Bottom()}
	default: // West
		return Point{r.X, r.Y}, Point{r.X, r.Bottom()}
	}
}

// WallLength returns the pixel length of the named wall.
func (r Rect) WallLength(d Direction) float64 {
	if d.Horizontal() {
		return r.W
	}
	return r.H
}

// interiorNormal returns the unit vector pointing from the named wall
// into the room.
func (r Rect) interiorNormal(d Direction) Point {
	switch d {
	case North:
		return Point{0, 1}
	case South:
		return Point{0, -1}
	case West:
		return Point{1, 0}
	default: // East
		return Point{-1, 0}
	}
}

// LayoutRect is a placed room rectangle. It is derived on every render
// pass and never persisted.
type LayoutRect struct {
	RoomID string `json:"roomId"`
	Rect
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
