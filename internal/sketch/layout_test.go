package sketch

import (
	"testing"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

func fpt(v float64) *float64 { return &v }

func interiorRoom(id, name string, lengthFt, widthFt float64) models.Room {
	r := models.Room{
		ID:           id,
		InspectionID: "insp-1",
		Name:         name,
		Status:       models.RoomNotStarted,
		ViewType:     models.ViewInterior,
	}
	if lengthFt > 0 {
		r.LengthFt = fpt(lengthFt)
	}
	if widthFt > 0 {
		r.WidthFt = fpt(widthFt)
	}
	return r
}

func TestLayoutFlushAdjacency(t *testing.T) {
	rooms := []models.Room{
		interiorRoom("a", "Living Room", 12, 10),
		interiorRoom("b", "Kitchen", 10, 10),
	}
	adjs := []models.Adjacency{
		{ID: "adj-1", RoomIDA: "a", RoomIDB: "b", WallDirectionA: "east", WallDirectionB: "west"},
	}

	rects := Layout(rooms, adjs, 4, 40, 30)
	if len(rects) != 2 {
		t.Fatalf("placed %d rooms, want 2", len(rects))
	}
	if rects[0].Rect != (Rect{0, 0, 48, 40}) {
		t.Errorf("room a: got %+v, want {0 0 48 40}", rects[0].Rect)
	}
	if rects[1].Rect != (Rect{48, 0, 40, 40}) {
		t.Errorf("room b: got %+v, want {48 0 40 40}", rects[1].Rect)
	}
}

func TestLayoutNormalizesNegativeCoordinates(t *testing.T) {
	rooms := []models.Room{
		interiorRoom("a", "Living Room", 12, 10),
		interiorRoom("b", "Hall", 10, 10),
	}
	adjs := []models.Adjacency{
		{ID: "adj-1", RoomIDA: "a", RoomIDB: "b", WallDirectionA: "west", WallDirectionB: "east"},
	}

	rects := Layout(rooms, adjs, 4, 40, 30)
	if rects[1].Rect != (Rect{0, 0, 40, 40}) {
		t.Errorf("west neighbor after normalize: got %+v, want {0 0 40 40}", rects[1].Rect)
	}
	if rects[0].Rect != (Rect{40, 0, 48, 40}) {
		t.Errorf("seed after normalize: got %+v, want {40 0 48 40}", rects[0].Rect)
	}
}

func TestLayoutSkipsOverlappingCandidate(t *testing.T) {
	rooms := []models.Room{
		interiorRoom("a", "Living Room", 10, 10),
		interiorRoom("b", "Kitchen", 10, 10),
		interiorRoom("c", "Dining", 10, 10),
	}
	// both neighbors claim the east wall; the second candidate
	// overlaps the first and must fall back to bin packing
	adjs := []models.Adjacency{
		{ID: "adj-1", RoomIDA: "a", RoomIDB: "b", WallDirectionA: "east", WallDirectionB: "west"},
		{ID: "adj-2", RoomIDA: "a", RoomIDB: "c", WallDirectionA: "east", WallDirectionB: "west"},
	}

	rects := Layout(rooms, adjs, 4, 40, 30)
	c := rects[2].Rect
	if c.Y != 50 {
		t.Errorf("skipped room should pack below the cluster: got y=%v, want 50", c.Y)
	}
	if c.X != 0 {
		t.Errorf("packed row should start at the cluster's left edge: got x=%v, want 0", c.X)
	}
	for i, r := range rects {
		for j, o := range rects {
			if i != j && r.overlaps(o.Rect) {
				t.Fatalf("rooms %s and %s overlap: %+v vs %+v", rects[i].RoomID, rects[j].RoomID, r.Rect, o.Rect)
			}
		}
	}
}

func TestLayoutPacksDisconnectedRooms(t *testing.T) {
	rooms := []models.Room{
		interiorRoom("a", "Living Room", 12, 10),
		interiorRoom("b", "Detached Office", 10, 8),
	}

	rects := Layout(rooms, nil, 4, 40, 30)
	if len(rects) != 2 {
		t.Fatalf("placed %d rooms, want 2", len(rects))
	}
	b := rects[1].Rect
	if b.Y != 50 { // cluster bottom 40 + pack gap 10
		t.Errorf("disconnected room: got y=%v, want 50", b.Y)
	}
}

func TestLayoutWithoutAdjacenciesStaysDisjoint(t *testing.T) {
	rooms := []models.Room{
		interiorRoom("a", "Living Room", 18, 14),
		interiorRoom("b", "Kitchen", 12, 14),
		interiorRoom("c", "Hallway", 12, 4),
		interiorRoom("d", "Closet", 3, 3),
		interiorRoom("e", "Unknown", 0, 0),
	}

	rects := Layout(rooms, nil, 4, 40, 30)
	if len(rects) != len(rooms) {
		t.Fatalf("placed %d rooms, want %d", len(rects), len(rooms))
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Rect.overlaps(rects[j].Rect) {
				t.Errorf("rooms %s and %s overlap: %+v vs %+v",
					rects[i].RoomID, rects[j].RoomID, rects[i].Rect, rects[j].Rect)
			}
		}
	}
}

func TestLayoutUniformMinimumEnlargement(t *testing.T) {
	rooms := []models.Room{interiorRoom("a", "Closet", 5, 5)}

	rects := Layout(rooms, nil, 4, 40, 30)
	r := rects[0].Rect
	// 20×20 scaled hits the 40px width floor; both axes grow by the
	// same factor so the square stays square
	if r.W != 40 || r.H != 40 {
		t.Errorf("enlarged footprint: got %vx%v, want 40x40", r.W, r.H)
	}
}

func TestLayoutUnmeasuredRoomFootprint(t *testing.T) {
	rooms := []models.Room{interiorRoom("a", "Unknown", 0, 0)}

	rects := Layout(rooms, nil, 4, 40, 30)
	r := rects[0].Rect
	if r.W != 60 || r.H != 50 {
		t.Errorf("unmeasured footprint: got %vx%v, want 60x50", r.W, r.H)
	}
}

func TestLayoutFiltersNonInterior(t *testing.T) {
	parent := "a"
	rooms := []models.Room{
		interiorRoom("a", "Living Room", 12, 10),
		{ID: "f1", Name: "Front Slope", ViewType: models.ViewRoofPlan},
		{ID: "e1", Name: "Front Elevation", ViewType: models.ViewElevation},
		{ID: "sub", Name: "Closet", ViewType: models.ViewInterior, ParentRoomID: &parent},
	}

	rects := Layout(rooms, nil, 4, 40, 30)
	if len(rects) != 1 {
		t.Fatalf("placed %d rooms, want 1", len(rects))
	}
	if rects[0].RoomID != "a" {
		t.Errorf("placed room: got %s, want a", rects[0].RoomID)
	}
}

func TestLayoutDropsUnknownAdjacency(t *testing.T) {
	rooms := []models.Room{interiorRoom("a", "Living Room", 12, 10)}
	adjs := []models.Adjacency{
		{ID: "adj-1", RoomIDA: "a", RoomIDB: "ghost", WallDirectionA: "east", WallDirectionB: "west"},
	}

	rects := Layout(rooms, adjs, 4, 40, 30)
	if len(rects) != 1 {
		t.Fatalf("placed %d rooms, want 1", len(rects))
	}
}

func TestLayoutEmptyInput(t *testing.T) {
	if got := Layout(nil, nil, 4, 40, 30); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
}
