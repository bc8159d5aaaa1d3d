package sketch

import (
	"math"
	"strconv"
	"strings"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

// RoofFacet is one sloped plane drawn on the roof plan.
type RoofFacet struct {
	RoomID  string    `json:"roomId,omitempty"`
	Label   string    `json:"label"`
	Pitch   string    `json:"pitch,omitempty"`
	Side    Direction `json:"side"`
	Polygon []Point   `json:"polygon"`
}

// DimensionLine labels one eave extent of the footprint.
type DimensionLine struct {
	From  Point  `json:"from"`
	To    Point  `json:"to"`
	Label string `json:"label"`
}

// Compass marks plan north beside the footprint.
type Compass struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// RoofPlan is the closed-form geometry for one structure's roof.
type RoofPlan struct {
	IsHip      bool            `json:"isHip"`
	Facets     []RoofFacet     `json:"facets"`
	Ridge      *Line           `json:"ridge,omitempty"`
	RidgePoint *Point          `json:"ridgePoint,omitempty"` // pyramid degenerate: all hips meet here
	HipLines   []Line          `json:"hipLines,omitempty"`
	Footprint  Rect            `json:"footprint"`
	WidthFt    float64         `json:"widthFt"`
	DepthFt    float64         `json:"depthFt"`
	Dimensions []DimensionLine `json:"dimensions"`
	Compass    Compass         `json:"compass"`
}

const (
	defaultRoofWidthFt = 40.0
	defaultRoofDepthFt = 26.0
	roofDepthRatio     = 0.65 // depth derived from width
	roofWidthRatio     = 1.5  // width derived from depth

	dimensionOffset = 18.0
	compassRadius   = 12.0
)

// BuildRoofPlan constructs hip or gable roof geometry from facet
// rooms. Facets are matched to compass sides by name cues
// (north/rear, south/front, east/right, west/left); unmatched facets
// fill the unused sides in input order. The building footprint comes
// from matched facet lengths, with unmeasured axes derived at a fixed
// ratio and fixed defaults when nothing is measured. Everything is
// closed-form.
func BuildRoofPlan(facets []models.Room, scale float64) RoofPlan {
	if len(facets) == 0 || scale <= 0 {
		return RoofPlan{}
	}

	var sides [4]*models.Room
	var unmatched []*models.Room
	for i := range facets {
		f := &facets[i]
		if d, ok := facetSide(f); ok && sides[d] == nil {
			sides[d] = f
		} else {
			unmatched = append(unmatched, f)
		}
	}
	// Unused sides fill axis pairs first so two anonymous facets
	// become a front/back gable rather than a corner.
	for _, f := range unmatched {
		for _, d := range [...]Direction{North, South, East, West} {
			if sides[d] == nil {
				sides[d] = f
				break
			}
		}
	}

	isHip := inferHip(facets, sides)
	widthFt, depthFt := roofFootprintFt(sides)

	w := widthFt * scale
	d := depthFt * scale
	plan := RoofPlan{
		IsHip:     isHip,
		Footprint: Rect{X: 0, Y: 0, W: w, H: d},
		WidthFt:   widthFt,
		DepthFt:   depthFt,
	}

	nw := Point{0, 0}
	ne := Point{w, 0}
	se := Point{w, d}
	sw := Point{0, d}

	if isHip {
		buildHip(&plan, sides, nw, ne, se, sw)
	} else {
		buildGable(&plan, sides, nw, ne, se, sw)
	}

	plan.Dimensions = []DimensionLine{
		{From: Point{0, d + dimensionOffset}, To: Point{w, d + dimensionOffset}, Label: formatFeet(widthFt)},
		{From: Point{-dimensionOffset, 0}, To: Point{-dimensionOffset, d}, Label: formatFeet(depthFt)},
	}
	plan.Compass = Compass{Center: Point{w + 30, 20}, Radius: compassRadius}
	return plan
}

// facetSide matches a facet to a compass side from its label or name.
func facetSide(r *models.Room) (Direction, bool) {
	s := strings.ToLower(r.FacetLabel + " " + r.Name)
	switch {
	case strings.Contains(s, "north"), strings.Contains(s, "rear"):
		return North, true
	case strings.Contains(s, "south"), strings.Contains(s, "front"):
		return South, true
	case strings.Contains(s, "east"), strings.Contains(s, "right"):
		return East, true
	case strings.Contains(s, "west"), strings.Contains(s, "left"):
		return West, true
	}
	return North, false
}

// inferHip decides hip vs gable. An explicit shape on any facet wins;
// otherwise a roof is hip when facets occupy both axes and there are
// at least three of them.
func inferHip(facets []models.Room, sides [4]*models.Room) bool {
	for i := range facets {
		switch facets[i].ShapeType {
		case models.ShapeHip:
			return true
		case models.ShapeGable:
			return false
		}
	}
	ns := sides[North] != nil || sides[South] != nil
	ew := sides[East] != nil || sides[West] != nil
	return ns && ew && len(facets) >= 3
}

// roofFootprintFt sizes the eave rectangle in feet. The east-west
// extent comes from a north/south facet length and the north-south
// extent from an east/west facet length.
func roofFootprintFt(sides [4]*models.Room) (widthFt, depthFt float64) {
	if f := sides[North]; f != nil && f.LengthFt != nil && *f.LengthFt > 0 {
		widthFt = *f.LengthFt
	} else if f := sides[South]; f != nil && f.LengthFt != nil && *f.LengthFt > 0 {
		widthFt = *f.LengthFt
	}
	if f := sides[East]; f != nil && f.LengthFt != nil && *f.LengthFt > 0 {
		depthFt = *f.LengthFt
	} else if f := sides[West]; f != nil && f.LengthFt != nil && *f.LengthFt > 0 {
		depthFt = *f.LengthFt
	}

	switch {
	case widthFt <= 0 && depthFt <= 0:
		widthFt, depthFt = defaultRoofWidthFt, defaultRoofDepthFt
	case widthFt <= 0:
		widthFt = depthFt * roofWidthRatio
	case depthFt <= 0:
		depthFt = widthFt * roofDepthRatio
	}
	return widthFt, depthFt
}

// buildHip adds the inset ridge, four facet polygons and the corner
// hip lines. When the inset closes the ridge span the roof degenerates
// to a pyramid with a single ridge point.
func buildHip(plan *RoofPlan, sides [4]*models.Room, nw, ne, se, sw Point) {
	w := plan.Footprint.W
	d := plan.Footprint.H
	midY := d / 2
	inset := math.Min(d/2, w*0.25)
	x1, x2 := inset, w-inset

	if x2-x1 <= 1 {
		apex := Point{w / 2, midY}
		plan.RidgePoint = &apex
		plan.Facets = []RoofFacet{
			facetFor(sides[North], North, []Point{nw, ne, apex}),
			facetFor(sides[East], East, []Point{ne, se, apex}),
			facetFor(sides[South], South, []Point{se, sw, apex}),
			facetFor(sides[West], West, []Point{sw, nw, apex}),
		}
		plan.HipLines = []Line{
			{From: nw, To: apex}, {From: ne, To: apex},
			{From: se, To: apex}, {From: sw, To: apex},
		}
		return
	}

	r1 := Point{x1, midY}
	r2 := Point{x2, midY}
	plan.Ridge = &Line{From: r1, To: r2}
	plan.Facets = []RoofFacet{
		facetFor(sides[North], North, []Point{nw, ne, r2, r1}),
		facetFor(sides[East], East, []Point{ne, se, r2}),
		facetFor(sides[South], South, []Point{r1, r2, se, sw}),
		facetFor(sides[West], West, []Point{sw, nw, r1}),
	}
	plan.HipLines = []Line{
		{From: nw, To: r1}, {From: sw, To: r1},
		{From: ne, To: r2}, {From: se, To: r2},
	}
}

// buildGable splits the footprint with a full-length ridge. The ridge
// runs east-west when a north or south facet exists, north-south when
// only side facets were matched.
func buildGable(plan *RoofPlan, sides [4]*models.Room, nw, ne, se, sw Point) {
	w := plan.Footprint.W
	d := plan.Footprint.H

	if sides[North] != nil || sides[South] != nil {
		r1 := Point{0, d / 2}
		r2 := Point{w, d / 2}
		plan.Ridge = &Line{From: r1, To: r2}
		if sides[North] != nil {
			plan.Facets = append(plan.Facets, facetFor(sides[North], North, []Point{nw, ne, r2, r1}))
		}
		if sides[South] != nil {
			plan.Facets = append(plan.Facets, facetFor(sides[South], South, []Point{r1, r2, se, sw}))
		}
		return
	}

	r1 := Point{w / 2, 0}
	r2 := Point{w / 2, d}
	plan.Ridge = &Line{From: r1, To: r2}
	if sides[East] != nil {
		plan.Facets = append(plan.Facets, facetFor(sides[East], East, []Point{r1, ne, se, r2}))
	}
	if sides[West] != nil {
		plan.Facets = append(plan.Facets, facetFor(sides[West], West, []Point{nw, r1, r2, sw}))
	}
}

func facetFor(r *models.Room, side Direction, polygon []Point) RoofFacet {
	f := RoofFacet{Side: side, Polygon: polygon}
	if r != nil {
		f.RoomID = r.ID
		f.Pitch = r.Pitch
		f.Label = r.FacetLabel
		if f.Label == "" {
			f.Label = r.Name
		}
	}
	return f
}

// formatFeet renders a feet value like 40' or 12.5'.
func formatFeet(ft float64) string {
	return strconv.FormatFloat(ft, 'f', -1, 64) + "'"
}
