package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

func fpt(v float64) *float64 { return &v }

func spt(s string) *string { return &s }

func testInspection() *models.Inspection {
	return &models.Inspection{
		ID:           "insp-1",
		ClaimNumber:  "CLM-2024-0042",
		PolicyNumber: "HO-889123",
		InsuredName:  "Dana Whitfield",
		Address:      "18 Cedar Loop, Springfield",
		Status:       models.InspectionComplete,
		UpdatedAt:    time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC),
	}
}

func testState() sketch.State {
	return sketch.State{
		Rooms: []models.Room{
			{ID: "lr", InspectionID: "insp-1", Name: "Living Room", Status: models.RoomComplete,
				LengthFt: fpt(18), WidthFt: fpt(14), HeightFt: fpt(8)},
			{ID: "kit", InspectionID: "insp-1", Name: "Kitchen", Status: models.RoomInProgress,
				LengthFt: fpt(12), WidthFt: fpt(14)},
			{ID: "cl", InspectionID: "insp-1", Name: "Pantry", ParentRoomID: spt("kit")},
			{ID: "roof-n", InspectionID: "insp-1", Name: "Front Slope", ViewType: models.ViewRoofPlan,
				FacetLabel: "Front", LengthFt: fpt(40), Pitch: "6/12"},
			{ID: "roof-s", InspectionID: "insp-1", Name: "Rear Slope", ViewType: models.ViewRoofPlan,
				FacetLabel: "Rear", LengthFt: fpt(40), Pitch: "6/12"},
		},
		Openings: []models.Opening{
			{ID: "d1", RoomID: "lr", OpeningType: models.OpeningDoor, WallDirection: "south",
				PositionOnWall: 0.5, WidthFt: 3, HeightFt: 6.8, Quantity: 1},
			{ID: "w1", RoomID: "lr", OpeningType: models.OpeningWindow, WallDirection: "north",
				PositionOnWall: 0.3, WidthFt: 3, HeightFt: 4, Quantity: 2},
		},
		Adjacencies: []models.Adjacency{
			{ID: "adj1", InspectionID: "insp-1", RoomIDA: "lr", RoomIDB: "kit",
				WallDirectionA: "east", WallDirectionB: "west"},
		},
		Annotations: []models.Annotation{
			{ID: "a1", RoomID: "lr", AnnotationType: models.AnnotationDamage,
				Label: "Water stain", PosX: 0.25, PosY: 0.5},
		},
	}
}

func TestBuildPDF(t *testing.T) {
	st := testState()
	plan := sketch.BuildPlan("insp-1", st, sketch.DefaultParams())

	got, err := BuildPDF(testInspection(), plan, "http://localhost:3410/?inspection=insp-1")
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("%PDF-")) {
		t.Error("output does not start with PDF magic")
	}
	if !bytes.HasSuffix(bytes.TrimSpace(got), []byte("%%EOF")) {
		t.Errorf("output does not end with %%%%EOF")
	}
	if len(got) < 2000 {
		t.Errorf("report suspiciously small: %d bytes", len(got))
	}
}

func TestBuildPDFEmptyPlan(t *testing.T) {
	plan := sketch.BuildPlan("empty", sketch.State{}, sketch.DefaultParams())

	got, err := BuildPDF(testInspection(), plan, "")
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("%PDF-")) {
		t.Error("output does not start with PDF magic")
	}
}

func TestBuildPDFDeterministic(t *testing.T) {
	st := testState()
	plan := sketch.BuildPlan("insp-1", st, sketch.DefaultParams())
	insp := testInspection()

	a, err := BuildPDF(insp, plan, "http://example.com/v")
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := BuildPDF(insp, plan, "http://example.com/v")
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if len(a) != len(b) {
		t.Errorf("same input produced different sizes: %d vs %d", len(a), len(b))
	}
}
