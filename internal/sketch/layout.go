// Package sketch builds floor-plan geometry for inspection sketches:
// deterministic room layout from adjacency relations, closed-form roof
// plans, opening and annotation symbols, SVG rendering, and the edit
// session that drives live sketch changes.
package sketch

import (
	"math"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

const (
	// fallbackMargin pads the minimum footprint used for rooms
	// without usable dimensions.
	fallbackMargin = 20.0

	// packWidth is where fallback rows wrap, roughly one phone
	// canvas wide.
	packWidth = 600.0

	// packGap separates bin-packed rooms from the cluster and from
	// each other.
	packGap = 10.0
)

// Layout places interior rooms as non-overlapping rectangles.
//
// Placement is seeded by the first room in input order and grown
// breadth-first along adjacency edges: a neighbor lands flush against
// the wall its edge names on the current room's side. A candidate that
// would overlap an already placed room is skipped, and every room the
// walk never reaches is bin-packed row by row below the cluster. The
// result is translated so the minimum x and y are 0 and is
// deterministic for identical input order.
//
// Sub-area rooms (ParentRoomID set) and rooms that are not interior
// are not placed; adjacencies naming unknown rooms are dropped.
func Layout(rooms []models.Room, adjacencies []models.Adjacency, scale, minW, minH float64) []LayoutRect {
	order := make([]string, 0, len(rooms))
	byID := make(map[string]models.Room, len(rooms))
	for _, r := range rooms {
		if (r.ParentRoomID != nil && *r.ParentRoomID != "") || !r.IsInterior() {
			continue
		}
		if _, dup := byID[r.ID]; dup {
			continue
		}
		byID[r.ID] = r
		order = append(order, r.ID)
	}
	if len(order) == 0 {
		return nil
	}

	type edge struct {
		neighbor string
		dir      Direction
	}
	edges := make(map[string][]edge)
	addEdge := func(from, to, dirName string) {
		if _, ok := byID[from]; !ok {
			return
		}
		if _, ok := byID[to]; !ok {
			return
		}
		dir, ok := ParseDirection(dirName)
		if !ok {
			dir = East
		}
		edges[from] = append(edges[from], edge{neighbor: to, dir: dir})
	}
	for _, adj := range adjacencies {
		addEdge(adj.RoomIDA, adj.RoomIDB, adj.WallDirectionA)
		addEdge(adj.RoomIDB, adj.RoomIDA, adj.WallDirectionB)
	}

	placed := make(map[string]Rect, len(order))

	// BFS from the first room
	seed := byID[order[0]]
	w, h := footprint(&seed, scale, minW, minH)
	placed[seed.ID] = Rect{X: 0, Y: 0, W: w, H: h}
	queue := []string{seed.ID}
	for len(queue) > 0 {
		curID := queue[0]
		queue = queue[1:]
		cur := placed[curID]
		for _, e := range edges[curID] {
			if _, done := placed[e.neighbor]; done {
				continue
			}
			nb := byID[e.neighbor]
			nw, nh := footprint(&nb, scale, minW, minH)
			cand := neighborRect(cur, e.dir, nw, nh)
			if collides(cand, placed) {
				continue
			}
			placed[e.neighbor] = cand
			queue = append(queue, e.neighbor)
		}
	}

	// Row-major bin-pack for everything the walk never placed
	clusterBottom, clusterLeft := 0.0, math.Inf(1)
	for _, r := range placed {
		if r.Bottom() > clusterBottom {
			clusterBottom = r.Bottom()
		}
		if r.X < clusterLeft {
			clusterLeft = r.X
		}
	}
	x, y, rowH := clusterLeft, clusterBottom+packGap, 0.0
	for _, id := range order {
		if _, done := placed[id]; done {
			continue
		}
		room := byID[id]
		rw, rh := footprint(&room, scale, minW, minH)
		if x > clusterLeft && x+rw > clusterLeft+packWidth {
			x = clusterLeft
			y += rowH + packGap
			rowH = 0
		}
		placed[id] = Rect{X: x, Y: y, W: rw, H: rh}
		x += rw + packGap
		if rh > rowH {
			rowH = rh
		}
	}

	// Normalize so the minimum x and y are 0
	minX, minY := math.Inf(1), math.Inf(1)
	for _, r := range placed {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
	}
	out := make([]LayoutRect, 0, len(order))
	for _, id := range order {
		r := placed[id]
		r.X -= minX
		r.Y -= minY
		out = append(out, LayoutRect{RoomID: id, Rect: r})
	}
	return out
}

// footprint sizes one room in pixels. A measured room keeps its scaled
// shape unless that would fall below the minimum, in which case both
// axes grow uniformly to preserve the aspect ratio. Unmeasured rooms
// get a fixed minimum-plus-margin footprint.
func footprint(r *models.Room, scale, minW, minH float64) (w, h float64) {
	length, width, ok := r.Dims()
	if !ok {
		return minW + fallbackMargin, minH + fallbackMargin
	}
	w = length * scale
	h = width * scale
	scaleW := minW / w
	scaleH := minH / h
	if scaleW > 1 || scaleH > 1 {
		f := math.Max(scaleW, scaleH)
		w *= f
		h *= f
	}
	return w, h
}

// neighborRect positions a w×h rectangle flush against cur on the
// named side, sharing cur's origin on the other axis.
func neighborRect(cur Rect, d Direction, w, h float64) Rect {
	switch d {
	case East:
		return Rect{X: cur.Right(), Y: cur.Y, W: w, H: h}
	case West:
		return Rect{X: cur.X - w, Y: cur.Y, W: w, H: h}
	case South:
		return Rect{X: cur.X, Y: cur.Bottom(), W: w, H: h}
	default: // North
		return Rect{X: cur.X, Y: cur.Y - h, W: w, H: h}
	}
}

func collides(cand Rect, placed map[string]Rect) bool {
	for _, r := range placed {
		if cand.overlaps(r) {
			return true
		}
	}
	return false
}
