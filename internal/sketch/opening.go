package sketch

import (
	"math"
	"strconv"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

// Arc is a circular arc from Start to End around Center. Sweep follows
// the SVG convention: true draws clockwise in screen coordinates.
type Arc struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Start  Point   `json:"start"`
	End    Point   `json:"end"`
	Sweep  bool    `json:"sweep"`
}

// OpeningSymbol is the drawable form of one opening: the wall gap plus
// the type-specific swing arcs, panel lines and dashes.
type OpeningSymbol struct {
	OpeningID   string    `json:"openingId"`
	Type        string    `json:"type"`
	Wall        Direction `json:"wall"`
	GapStart    Point     `json:"gapStart"`
	GapEnd      Point     `json:"gapEnd"`
	GapPx       float64   `json:"gapPx"`
	Arcs        []Arc     `json:"arcs,omitempty"`
	Lines       []Line    `json:"lines,omitempty"`
	DashedLines []Line    `json:"dashedLines,omitempty"`
	CountLabel  string    `json:"countLabel,omitempty"`
	CountAt     Point     `json:"countAt,omitempty"`
}

const (
	doorGapCap    = 0.5 // door gap may take up to half the wall
	windowGapCap  = 0.4
	slidingInset  = 3.0 // panel offset to either side of the wall line
	windowPaneGap = 2.0
	countOffset   = 12.0
)

// RenderOpening places an opening symbol on its wall. The gap is the
// opening width in pixels, capped to a fraction of the wall so a wide
// garage door on a short wall stays drawable. Openings with no
// resolvable wall are skipped.
func RenderOpening(op models.Opening, room Rect, ppf float64) (OpeningSymbol, bool) {
	wall, ok := resolveWall(op)
	if !ok {
		return OpeningSymbol{}, false
	}

	wallLen := room.WallLength(wall)
	if wallLen <= 0 {
		return OpeningSymbol{}, false
	}

	gapCap := windowGapCap
	if op.IsDoorLike() {
		gapCap = doorGapCap
	}
	gap := wallLen * gapCap
	if op.WidthFt > 0 && ppf > 0 {
		gap = math.Min(op.WidthFt*ppf, gap)
	}

	center := clamp01(op.PositionOnWall) * wallLen
	if center < gap/2 {
		center = gap / 2
	}
	if center > wallLen-gap/2 {
		center = wallLen - gap/2
	}

	from, to := room.Wall(wall)
	u := Point{X: (to.X - from.X) / wallLen, Y: (to.Y - from.Y) / wallLen}
	n := room.interiorNormal(wall)

	sym := OpeningSymbol{
		OpeningID: op.ID,
		Type:      op.OpeningType,
		Wall:      wall,
		GapStart:  Point{X: from.X + u.X*(center-gap/2), Y: from.Y + u.Y*(center-gap/2)},
		GapEnd:    Point{X: from.X + u.X*(center+gap/2), Y: from.Y + u.Y*(center+gap/2)},
		GapPx:     gap,
	}

	switch op.OpeningType {
	case models.OpeningDoor:
		hinge := sym.GapStart
		leafEnd := Point{X: hinge.X + n.X*gap, Y: hinge.Y + n.Y*gap}
		sym.Lines = []Line{{From: hinge, To: leafEnd}}
		sym.Arcs = []Arc{arcBetween(hinge, gap, sym.GapEnd, leafEnd)}

	case models.OpeningFrenchDoor:
		half := gap / 2
		mid := Point{X: from.X + u.X*center, Y: from.Y + u.Y*center}
		leftEnd := Point{X: sym.GapStart.X + n.X*half, Y: sym.GapStart.Y + n.Y*half}
		rightEnd := Point{X: sym.GapEnd.X + n.X*half, Y: sym.GapEnd.Y + n.Y*half}
		sym.Lines = []Line{
			{From: sym.GapStart, To: leftEnd},
			{From: sym.GapEnd, To: rightEnd},
		}
		sym.Arcs = []Arc{
			arcBetween(sym.GapStart, half, mid, leftEnd),
			arcBetween(sym.GapEnd, half, mid, rightEnd),
		}

	case models.OpeningSlidingDoor:
		mid := Point{X: from.X + u.X*center, Y: from.Y + u.Y*center}
		sym.Lines = []Line{
			{
				From: Point{X: sym.GapStart.X - n.X*slidingInset, Y: sym.GapStart.Y - n.Y*slidingInset},
				To:   Point{X: mid.X - n.X*slidingInset, Y: mid.Y - n.Y*slidingInset},
			},
			{
				From: Point{X: mid.X + n.X*slidingInset, Y: mid.Y + n.Y*slidingInset},
				To:   Point{X: sym.GapEnd.X + n.X*slidingInset, Y: sym.GapEnd.Y + n.Y*slidingInset},
			},
		}

	case models.OpeningWindow:
		for _, off := range [...]float64{-windowPaneGap, 0, windowPaneGap} {
			sym.Lines = append(sym.Lines, Line{
				From: Point{X: sym.GapStart.X + n.X*off, Y: sym.GapStart.Y + n.Y*off},
				To:   Point{X: sym.GapEnd.X + n.X*off, Y: sym.GapEnd.Y + n.Y*off},
			})
		}

	case models.OpeningOverheadDoor:
		sym.DashedLines = []Line{{From: sym.GapStart, To: sym.GapEnd}}
	}
	// missing_wall, pass_through, archway and cased_opening render as
	// the bare gap.

	if op.Quantity > 1 {
		sym.CountLabel = "×" + strconv.Itoa(op.Quantity)
		sym.CountAt = Point{
			X: from.X + u.X*center + n.X*countOffset,
			Y: from.Y + u.Y*center + n.Y*countOffset,
		}
	}
	return sym, true
}

// resolveWall picks the wall from WallDirection, falling back to the
// legacy numeric index older clients send.
func resolveWall(op models.Opening) (Direction, bool) {
	if d, ok := ParseDirection(op.WallDirection); ok {
		return d, true
	}
	if op.WallIndex != nil {
		return DirectionFromWallIndex(*op.WallIndex)
	}
	return North, false
}

// arcBetween builds the arc around center from start to end, picking
// the sweep that keeps the arc on the short side.
func arcBetween(center Point, radius float64, start, end Point) Arc {
	crossZ := (start.X-center.X)*(end.Y-center.Y) - (start.Y-center.Y)*(end.X-center.X)
	return Arc{Center: center, Radius: radius, Start: start, End: end, Sweep: crossZ > 0}
}
