package sketch

import (
	"testing"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

func roofFacet(id, label string, lengthFt float64, pitch string) models.Room {
	r := models.Room{
		ID:         id,
		Name:       label,
		FacetLabel: label,
		ViewType:   models.ViewRoofPlan,
		Pitch:      pitch,
	}
	if lengthFt > 0 {
		r.LengthFt = fpt(lengthFt)
	}
	return r
}

func TestBuildRoofPlanGable(t *testing.T) {
	facets := []models.Room{
		roofFacet("f1", "Front Slope", 40, "6/12"),
		roofFacet("f2", "Rear Slope", 40, "6/12"),
	}

	plan := BuildRoofPlan(facets, 4)
	if plan.IsHip {
		t.Fatal("two opposing facets should build a gable")
	}
	if plan.WidthFt != 40 {
		t.Errorf("width: got %v, want 40", plan.WidthFt)
	}
	// depth is derived from width when no side facet is measured
	if plan.DepthFt != 26 {
		t.Errorf("derived depth: got %v, want 26", plan.DepthFt)
	}
	if plan.Ridge == nil {
		t.Fatal("gable must have a ridge")
	}
	// full-length ridge at mid depth
	if plan.Ridge.From != (Point{0, 52}) || plan.Ridge.To != (Point{160, 52}) {
		t.Errorf("ridge: got %v-%v, want {0 52}-{160 52}", plan.Ridge.From, plan.Ridge.To)
	}
	if len(plan.Facets) != 2 {
		t.Fatalf("facet count: got %d, want 2", len(plan.Facets))
	}
	if len(plan.HipLines) != 0 {
		t.Errorf("gable should have no hip lines, got %d", len(plan.HipLines))
	}
	if plan.Facets[1].Pitch != "6/12" {
		t.Errorf("facet pitch: got %q, want 6/12", plan.Facets[1].Pitch)
	}
}

func TestBuildRoofPlanGableSideOnly(t *testing.T) {
	facets := []models.Room{
		roofFacet("f1", "Left Slope", 30, ""),
		roofFacet("f2", "Right Slope", 30, ""),
	}

	plan := BuildRoofPlan(facets, 4)
	if plan.IsHip {
		t.Fatal("left and right facets alone should stay a gable")
	}
	if plan.DepthFt != 30 {
		t.Errorf("depth from side facet: got %v, want 30", plan.DepthFt)
	}
	if plan.WidthFt != 45 { // 30 × 1.5
		t.Errorf("derived width: got %v, want 45", plan.WidthFt)
	}
	if plan.Ridge == nil {
		t.Fatal("gable must have a ridge")
	}
	// ridge runs north-south between the two side slopes
	if plan.Ridge.From.X != plan.Ridge.To.X {
		t.Errorf("side-only ridge should be vertical: got %v-%v", plan.Ridge.From, plan.Ridge.To)
	}
}

func TestBuildRoofPlanHip(t *testing.T) {
	facets := []models.Room{
		roofFacet("f1", "North Slope", 40, "6/12"),
		roofFacet("f2", "South Slope", 40, "6/12"),
		roofFacet("f3", "East Slope", 26, "8/12"),
		roofFacet("f4", "West Slope", 26, "8/12"),
	}

	plan := BuildRoofPlan(facets, 4)
	if !plan.IsHip {
		t.Fatal("facets on both axes should build a hip")
	}
	if len(plan.Facets) != 4 {
		t.Fatalf("facet count: got %d, want 4", len(plan.Facets))
	}
	if len(plan.HipLines) != 4 {
		t.Errorf("hip line count: got %d, want 4", len(plan.HipLines))
	}
	if plan.Ridge == nil {
		t.Fatal("hip with a long footprint keeps a ridge segment")
	}
	// ridge inset = min(depth/2, width/4) = min(52, 40) = 40
	if plan.Ridge.From != (Point{40, 52}) || plan.Ridge.To != (Point{120, 52}) {
		t.Errorf("ridge: got %v-%v, want {40 52}-{120 52}", plan.Ridge.From, plan.Ridge.To)
	}

	// every polygon vertex stays inside the eave rectangle
	for _, f := range plan.Facets {
		if len(f.Polygon) < 3 {
			t.Fatalf("facet %v: polygon has %d points", f.Side, len(f.Polygon))
		}
		for _, p := range f.Polygon {
			if p.X < 0 || p.X > 160 || p.Y < 0 || p.Y > 104 {
				t.Errorf("facet %v: vertex %v outside footprint", f.Side, p)
			}
		}
	}
}

func TestBuildRoofPlanShapeOverride(t *testing.T) {
	facets := []models.Room{
		roofFacet("f1", "North Slope", 40, ""),
		roofFacet("f2", "South Slope", 40, ""),
		roofFacet("f3", "East Slope", 26, ""),
	}
	facets[0].ShapeType = models.ShapeGable

	plan := BuildRoofPlan(facets, 4)
	if plan.IsHip {
		t.Error("explicit gable shape must override the facet heuristic")
	}

	facets[0].ShapeType = models.ShapeHip
	facets = facets[:2] // only one axis left
	plan = BuildRoofPlan(facets, 4)
	if !plan.IsHip {
		t.Error("explicit hip shape must override the facet heuristic")
	}
}

func TestBuildRoofPlanDefaults(t *testing.T) {
	facets := []models.Room{
		roofFacet("f1", "Front Slope", 0, ""),
		roofFacet("f2", "Rear Slope", 0, ""),
	}

	plan := BuildRoofPlan(facets, 4)
	if plan.WidthFt != 40 || plan.DepthFt != 26 {
		t.Errorf("default footprint: got %vx%v ft, want 40x26", plan.WidthFt, plan.DepthFt)
	}
	if len(plan.Dimensions) != 2 {
		t.Fatalf("dimension lines: got %d, want 2", len(plan.Dimensions))
	}
	if plan.Dimensions[0].Label != "40'" {
		t.Errorf("width label: got %q, want 40'", plan.Dimensions[0].Label)
	}
	if plan.Dimensions[1].Label != "26'" {
		t.Errorf("depth label: got %q, want 26'", plan.Dimensions[1].Label)
	}
	if plan.Compass.Radius <= 0 {
		t.Error("compass glyph missing")
	}
}

func TestBuildRoofPlanUnmatchedFacetsFillSides(t *testing.T) {
	facets := []models.Room{
		roofFacet("f1", "Slope A", 40, ""),
		roofFacet("f2", "Slope B", 40, ""),
	}

	plan := BuildRoofPlan(facets, 4)
	if plan.IsHip {
		t.Fatal("two anonymous facets should fill north and south, a gable")
	}
	sides := map[Direction]bool{}
	for _, f := range plan.Facets {
		sides[f.Side] = true
	}
	if !sides[North] || !sides[South] {
		t.Errorf("anonymous facets should land on north and south, got %v", sides)
	}
}

func TestBuildRoofPlanPointRidge(t *testing.T) {
	facets := []models.Room{
		roofFacet("f1", "North Slope", 40, ""),
		roofFacet("f2", "South Slope", 40, ""),
		roofFacet("f3", "East Slope", 26, ""),
	}

	// a tiny scale collapses the ridge span below a pixel
	plan := BuildRoofPlan(facets, 0.05)
	if !plan.IsHip {
		t.Fatal("expected hip")
	}
	if plan.RidgePoint == nil {
		t.Fatal("collapsed ridge should degenerate to a point")
	}
	if plan.Ridge != nil {
		t.Error("point-ridge pyramid should carry no ridge segment")
	}
	if len(plan.Facets) != 4 {
		t.Errorf("pyramid facet count: got %d, want 4", len(plan.Facets))
	}
	for _, f := range plan.Facets {
		if len(f.Polygon) != 3 {
			t.Errorf("pyramid facet %v: got %d vertices, want 3", f.Side, len(f.Polygon))
		}
	}
	if len(plan.HipLines) != 4 {
		t.Errorf("pyramid hip lines: got %d, want 4", len(plan.HipLines))
	}
}

func TestBuildRoofPlanEmpty(t *testing.T) {
	plan := BuildRoofPlan(nil, 4)
	if len(plan.Facets) != 0 || plan.Ridge != nil {
		t.Errorf("empty input should produce an empty plan, got %+v", plan)
	}
}
