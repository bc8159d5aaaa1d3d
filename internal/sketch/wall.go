package sketch

import "math"

// WallHit is the result of a successful wall hit-test.
type WallHit struct {
	Wall   Direction `json:"wall"`
	Offset float64   `json:"offset"` // 0..1 along the wall from its reference end
}

// HitTestWall finds the wall of rect nearest to p, if any lies within
// tolerance. A wall qualifies when the perpendicular distance from p
// to its line is at most tolerance and p projects onto the wall's
// extent, ends inclusive. Among qualifying walls the nearest wins;
// on an exact tie the first in north/east/south/west order is kept.
func HitTestWall(rect Rect, p Point, tolerance float64) (WallHit, bool) {
	var best WallHit
	bestDist := math.Inf(1)
	found := false

	for _, wall := range [...]Direction{North, East, South, West} {
		a, b := rect.Wall(wall)
		var dist, offset float64
		if wall.Horizontal() {
			if p.X < a.X || p.X > b.X {
				continue
			}
			dist = math.Abs(p.Y - a.Y)
			if b.X > a.X {
				offset = (p.X - a.X) / (b.X - a.X)
			}
		} else {
			if p.Y < a.Y || p.Y > b.Y {
				continue
			}
			dist = math.Abs(p.X - a.X)
			if b.Y > a.Y {
				offset = (p.Y - a.Y) / (b.Y - a.Y)
			}
		}
		if dist > tolerance {
			continue
		}
		if !found || dist < bestDist {
			found = true
			bestDist = dist
			best = WallHit{Wall: wall, Offset: offset}
		}
	}

	return best, found
}
