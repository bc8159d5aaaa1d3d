package sketch

import (
	"testing"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

func TestRenderOpeningDoor(t *testing.T) {
	room := Rect{X: 0, Y: 0, W: 100, H: 80}
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningDoor,
		WallDirection:  "north",
		PositionOnWall: 0.5,
		WidthFt:        3,
		HeightFt:       6.8,
		Quantity:       1,
	}

	sym, ok := RenderOpening(op, room, 4)
	if !ok {
		t.Fatal("door should render")
	}
	if sym.Wall != North {
		t.Errorf("wall: got %v, want north", sym.Wall)
	}
	if sym.GapPx != 12 {
		t.Errorf("gap: got %v, want 12", sym.GapPx)
	}
	if sym.GapStart != (Point{44, 0}) || sym.GapEnd != (Point{56, 0}) {
		t.Errorf("gap span: got %v-%v, want {44 0}-{56 0}", sym.GapStart, sym.GapEnd)
	}
	if len(sym.Lines) != 1 {
		t.Fatalf("leaf lines: got %d, want 1", len(sym.Lines))
	}
	// leaf swings from the hinge into the room
	if sym.Lines[0].From != (Point{44, 0}) || sym.Lines[0].To != (Point{44, 12}) {
		t.Errorf("leaf: got %v-%v, want {44 0}-{44 12}", sym.Lines[0].From, sym.Lines[0].To)
	}
	if len(sym.Arcs) != 1 {
		t.Fatalf("arcs: got %d, want 1", len(sym.Arcs))
	}
	arc := sym.Arcs[0]
	if arc.Center != (Point{44, 0}) || arc.Radius != 12 {
		t.Errorf("arc: got center %v radius %v, want {44 0} 12", arc.Center, arc.Radius)
	}
	if arc.Start != (Point{56, 0}) || arc.End != (Point{44, 12}) {
		t.Errorf("arc span: got %v-%v", arc.Start, arc.End)
	}
	if sym.CountLabel != "" {
		t.Errorf("single door should carry no count label, got %q", sym.CountLabel)
	}
}

func TestRenderOpeningLegacyWallIndex(t *testing.T) {
	idx := 2
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningWindow,
		WallIndex:      &idx,
		PositionOnWall: 0.5,
		WidthFt:        3,
	}

	sym, ok := RenderOpening(op, Rect{0, 0, 100, 80}, 4)
	if !ok {
		t.Fatal("legacy index should resolve")
	}
	if sym.Wall != South {
		t.Errorf("wall from index 2: got %v, want south", sym.Wall)
	}
}

func TestRenderOpeningNoWall(t *testing.T) {
	op := models.Opening{ID: "op-1", OpeningType: models.OpeningDoor, WidthFt: 3}
	if _, ok := RenderOpening(op, Rect{0, 0, 100, 80}, 4); ok {
		t.Error("opening without a wall must be skipped")
	}
}

func TestRenderOpeningGapCap(t *testing.T) {
	room := Rect{X: 0, Y: 0, W: 100, H: 80}

	// 30ft overhead door would be 120px; door-like cap holds it to
	// half the wall
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningOverheadDoor,
		WallDirection:  "north",
		PositionOnWall: 0.5,
		WidthFt:        30,
	}
	sym, _ := RenderOpening(op, room, 4)
	if sym.GapPx != 50 {
		t.Errorf("door-like cap: got %v, want 50", sym.GapPx)
	}

	op.OpeningType = models.OpeningWindow
	sym, _ = RenderOpening(op, room, 4)
	if sym.GapPx != 40 {
		t.Errorf("window cap: got %v, want 40", sym.GapPx)
	}
}

func TestRenderOpeningClampsToWall(t *testing.T) {
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningDoor,
		WallDirection:  "north",
		PositionOnWall: 0,
		WidthFt:        3,
	}

	sym, _ := RenderOpening(op, Rect{0, 0, 100, 80}, 4)
	// the gap slides inward so it never hangs past the corner
	if sym.GapStart != (Point{0, 0}) || sym.GapEnd != (Point{12, 0}) {
		t.Errorf("clamped gap: got %v-%v, want {0 0}-{12 0}", sym.GapStart, sym.GapEnd)
	}
}

func TestRenderOpeningWindowLines(t *testing.T) {
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningWindow,
		WallDirection:  "east",
		PositionOnWall: 0.5,
		WidthFt:        3,
	}

	sym, ok := RenderOpening(op, Rect{0, 0, 100, 80}, 4)
	if !ok {
		t.Fatal("window should render")
	}
	if len(sym.Lines) != 3 {
		t.Errorf("window pane lines: got %d, want 3", len(sym.Lines))
	}
	if len(sym.Arcs) != 0 {
		t.Errorf("window should have no arcs, got %d", len(sym.Arcs))
	}
}

func TestRenderOpeningSlidingPanels(t *testing.T) {
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningSlidingDoor,
		WallDirection:  "north",
		PositionOnWall: 0.5,
		WidthFt:        6,
	}

	sym, ok := RenderOpening(op, Rect{0, 0, 100, 80}, 4)
	if !ok {
		t.Fatal("sliding door should render")
	}
	if len(sym.Lines) != 2 {
		t.Fatalf("panel lines: got %d, want 2", len(sym.Lines))
	}
	// panels sit on opposite sides of the wall line, each half the gap
	if sym.Lines[0].From != (Point{38, -3}) || sym.Lines[0].To != (Point{50, -3}) {
		t.Errorf("outer panel: got %v-%v, want {38 -3}-{50 -3}", sym.Lines[0].From, sym.Lines[0].To)
	}
	if sym.Lines[1].From != (Point{50, 3}) || sym.Lines[1].To != (Point{62, 3}) {
		t.Errorf("inner panel: got %v-%v, want {50 3}-{62 3}", sym.Lines[1].From, sym.Lines[1].To)
	}
}

func TestRenderOpeningOverheadDashed(t *testing.T) {
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningOverheadDoor,
		WallDirection:  "south",
		PositionOnWall: 0.5,
		WidthFt:        9,
	}

	sym, _ := RenderOpening(op, Rect{0, 0, 100, 80}, 4)
	if len(sym.DashedLines) != 1 {
		t.Fatalf("overhead door: got %d dashed lines, want 1", len(sym.DashedLines))
	}
	if len(sym.Lines) != 0 || len(sym.Arcs) != 0 {
		t.Error("overhead door should render only the dashed centerline")
	}
}

func TestRenderOpeningFrenchDoorArcs(t *testing.T) {
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningFrenchDoor,
		WallDirection:  "north",
		PositionOnWall: 0.5,
		WidthFt:        6,
	}

	sym, _ := RenderOpening(op, Rect{0, 0, 200, 80}, 4)
	if len(sym.Arcs) != 2 || len(sym.Lines) != 2 {
		t.Fatalf("french door: got %d arcs %d lines, want 2 and 2", len(sym.Arcs), len(sym.Lines))
	}
	// leaves hinge at opposite ends of the gap
	if sym.Arcs[0].Center != sym.GapStart || sym.Arcs[1].Center != sym.GapEnd {
		t.Errorf("hinges: got %v and %v", sym.Arcs[0].Center, sym.Arcs[1].Center)
	}
}

func TestRenderOpeningArchwayGapOnly(t *testing.T) {
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningArchway,
		WallDirection:  "west",
		PositionOnWall: 0.3,
		WidthFt:        4,
	}

	sym, ok := RenderOpening(op, Rect{0, 0, 100, 80}, 4)
	if !ok {
		t.Fatal("archway should render")
	}
	if len(sym.Lines)+len(sym.Arcs)+len(sym.DashedLines) != 0 {
		t.Error("archway should render as the bare gap")
	}
	if sym.GapPx != 16 {
		t.Errorf("archway gap: got %v, want 16", sym.GapPx)
	}
}

func TestRenderOpeningQuantityLabel(t *testing.T) {
	op := models.Opening{
		ID:             "op-1",
		OpeningType:    models.OpeningWindow,
		WallDirection:  "north",
		PositionOnWall: 0.5,
		WidthFt:        3,
		Quantity:       3,
	}

	sym, _ := RenderOpening(op, Rect{0, 0, 100, 80}, 4)
	if sym.CountLabel != "×3" {
		t.Errorf("count label: got %q, want ×3", sym.CountLabel)
	}
	// label sits inside the room, below the north wall
	if sym.CountAt.Y <= 0 {
		t.Errorf("count label position: got %v, want inside the room", sym.CountAt)
	}
}
