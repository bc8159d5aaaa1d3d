package sketch

import (
	"testing"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

func TestBuildPlanGroupsStructures(t *testing.T) {
	garage := interiorRoom("g", "Garage Interior", 20, 20)
	garage.Structure = "Detached Garage"

	st := State{
		Rooms: []models.Room{
			interiorRoom("a", "Living Room", 12, 10),
			roofFacet("f1", "Front Slope", 40, "6/12"),
			garage,
		},
	}

	plan := BuildPlan("insp-1", st, DefaultParams())
	if len(plan.Structures) != 2 {
		t.Fatalf("structures: got %d, want 2", len(plan.Structures))
	}
	if plan.Structures[0].Name != "Main Structure" {
		t.Errorf("first structure: got %q, want Main Structure", plan.Structures[0].Name)
	}
	if plan.Structures[1].Name != "Detached Garage" {
		t.Errorf("second structure: got %q, want Detached Garage", plan.Structures[1].Name)
	}
	if plan.Structures[0].Roof == nil {
		t.Error("main structure should carry the roof plan")
	}
	if plan.Structures[1].Roof != nil {
		t.Error("garage has no roof facets")
	}
	if len(plan.Structures[1].Rooms) != 1 {
		t.Errorf("garage rooms: got %d, want 1", len(plan.Structures[1].Rooms))
	}
}

func TestBuildPlanRoomDecoration(t *testing.T) {
	parent := "a"
	st := State{
		Rooms: []models.Room{
			interiorRoom("a", "Master Bedroom", 18, 14),
			{ID: "sub", InspectionID: "insp-1", Name: "Walk-in Closet", ViewType: models.ViewInterior, ParentRoomID: &parent},
			{ID: "e1", InspectionID: "insp-1", Name: "Front Elevation", ViewType: models.ViewElevation},
		},
		Openings: []models.Opening{
			{ID: "op-1", RoomID: "a", OpeningType: models.OpeningDoor, WallDirection: "south", PositionOnWall: 0.5, WidthFt: 3, Quantity: 1},
		},
		Annotations: []models.Annotation{
			{ID: "an-1", RoomID: "a", AnnotationType: models.AnnotationDamage, Label: "Water damage", PosX: 0.25, PosY: 0.75},
		},
	}

	plan := BuildPlan("insp-1", st, DefaultParams())
	if len(plan.Structures) != 1 {
		t.Fatalf("structures: got %d, want 1", len(plan.Structures))
	}
	sp := plan.Structures[0]
	if len(sp.Rooms) != 1 {
		t.Fatalf("plan rooms: got %d, want 1", len(sp.Rooms))
	}
	room := sp.Rooms[0]
	if room.DimLabel != "18' × 14'" {
		t.Errorf("dim label: got %q, want 18' × 14'", room.DimLabel)
	}
	if room.LengthFt != 18 || room.WidthFt != 14 {
		t.Errorf("measured dims: got %v×%v, want 18×14", room.LengthFt, room.WidthFt)
	}
	if len(room.SubAreas) != 1 || room.SubAreas[0] != "Walk-in Closet" {
		t.Errorf("sub-areas: got %v", room.SubAreas)
	}
	if len(room.Openings) != 1 {
		t.Fatalf("openings: got %d, want 1", len(room.Openings))
	}
	if len(room.Markers) != 1 {
		t.Fatalf("markers: got %d, want 1", len(room.Markers))
	}
	// 18×14 at scale 4 → 72×56; marker at quarter x, three-quarter y
	m := room.Markers[0]
	if m.At != (Point{18, 42}) {
		t.Errorf("marker position: got %v, want {18 42}", m.At)
	}
	if len(sp.Elevations) != 1 || sp.Elevations[0] != "Front Elevation" {
		t.Errorf("elevations: got %v", sp.Elevations)
	}
	if sp.Bounds != (Rect{0, 0, 72, 56}) {
		t.Errorf("bounds: got %+v, want {0 0 72 56}", sp.Bounds)
	}
}

func TestBuildPlanOpeningUsesRoomScale(t *testing.T) {
	// a tiny room is enlarged to the minimum footprint; its openings
	// must scale with the enlarged pixels-per-foot, not the default
	st := State{
		Rooms: []models.Room{interiorRoom("a", "Closet", 5, 5)},
		Openings: []models.Opening{
			{ID: "op-1", RoomID: "a", OpeningType: models.OpeningDoor, WallDirection: "north", PositionOnWall: 0.5, WidthFt: 2, Quantity: 1},
		},
	}

	plan := BuildPlan("insp-1", st, DefaultParams())
	room := plan.Structures[0].Rooms[0]
	if room.W != 40 {
		t.Fatalf("enlarged width: got %v, want 40", room.W)
	}
	// ppf = 40px / 5ft = 8 → 2ft door = 16px gap, not the 8px the
	// default scale would give
	if got := room.Openings[0].GapPx; got != 16 {
		t.Errorf("gap at enlarged scale: got %v, want 16", got)
	}
}

func TestPlaceAnnotationsClamps(t *testing.T) {
	anns := []models.Annotation{
		{ID: "an-1", AnnotationType: models.AnnotationNote, Label: "note", PosX: -0.5, PosY: 1.5},
	}
	markers := PlaceAnnotations(anns, Rect{X: 10, Y: 20, W: 100, H: 50})
	if len(markers) != 1 {
		t.Fatalf("markers: got %d, want 1", len(markers))
	}
	if markers[0].At != (Point{10, 70}) {
		t.Errorf("clamped marker: got %v, want {10 70}", markers[0].At)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Scale != 4 || p.MinRoomW != 40 || p.MinRoomH != 30 || p.Tolerance != 8 {
		t.Errorf("defaults changed: %+v", p)
	}
}
