package sketch

import (
	"strings"
	"testing"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

func TestRenderSVGDocument(t *testing.T) {
	done := interiorRoom("a", "Living Room", 12, 10)
	done.Status = models.RoomComplete
	st := State{
		Rooms: []models.Room{
			done,
			roofFacet("f1", "Front Slope", 40, "6/12"),
			roofFacet("f2", "Rear Slope", 40, "6/12"),
		},
		Openings: []models.Opening{
			{ID: "op-1", RoomID: "a", OpeningType: models.OpeningOverheadDoor, WallDirection: "south", PositionOnWall: 0.5, WidthFt: 9, Quantity: 1},
		},
		Annotations: []models.Annotation{
			{ID: "an-1", RoomID: "a", AnnotationType: models.AnnotationDamage, Label: "Hail", PosX: 0.5, PosY: 0.5},
		},
	}
	plan := BuildPlan("insp-1", st, DefaultParams())

	svg := RenderSVG(plan, DefaultParams())
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg root: %.80s", svg)
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("document not closed")
	}
	// complete-status fill, dashed overhead door, dimension label,
	// marker label, compass and roof polygons all land in the output
	for _, want := range []string{
		"Living Room",
		"Main Structure",
		"#e8f5e9",
		"stroke-dasharray",
		`12' × 10'`,
		"Hail",
		`text-anchor="middle"`,
		">N</text>",
		"<polygon",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	st := State{
		Rooms: []models.Room{
			interiorRoom("a", "Living Room", 12, 10),
			interiorRoom("b", "Kitchen", 10, 10),
		},
		Adjacencies: []models.Adjacency{
			{ID: "adj-1", RoomIDA: "a", RoomIDB: "b", WallDirectionA: "east", WallDirectionB: "west"},
		},
	}
	plan := BuildPlan("insp-1", st, DefaultParams())

	first := RenderSVG(plan, DefaultParams())
	second := RenderSVG(plan, DefaultParams())
	if first != second {
		t.Error("identical plans must render identical documents")
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	room := interiorRoom("a", `Bath & "Laundry" <combo>`, 8, 6)
	plan := BuildPlan("insp-1", State{Rooms: []models.Room{room}}, DefaultParams())

	svg := RenderSVG(plan, DefaultParams())
	if !strings.Contains(svg, "Bath &amp; &quot;Laundry&quot; &lt;combo&gt;") {
		t.Error("room name not escaped")
	}
	if strings.Contains(svg, `Bath & "Laundry"`) {
		t.Error("raw markup leaked into the document")
	}
}

func TestRenderSVGEmptyPlan(t *testing.T) {
	svg := RenderSVG(Plan{InspectionID: "insp-1"}, DefaultParams())
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("empty plan should still produce a valid document")
	}
}
