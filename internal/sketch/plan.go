package sketch

import "github.com/claimsketch-com/claimsketchgo/internal/models"

// State is one inspection's sketch data as loaded from the store.
type State struct {
	Rooms       []models.Room
	Openings    []models.Opening
	Adjacencies []models.Adjacency
	Annotations []models.Annotation
}

// Params tune plan geometry. Scale is pixels per foot; MinRoomW and
// MinRoomH are the smallest drawn footprint for a room without
// measurements; Tolerance is the wall hit-test distance in pixels.
type Params struct {
	Scale     float64
	MinRoomW  float64
	MinRoomH  float64
	Tolerance float64
}

// DefaultParams matches the mobile sketch client.
func DefaultParams() Params {
	return Params{Scale: 4, MinRoomW: 40, MinRoomH: 30, Tolerance: 8}
}

// PlanRoom is one interior room placed on the plan with its decorated
// geometry.
type PlanRoom struct {
	LayoutRect
	Name     string             `json:"name"`
	Status   string             `json:"status"`
	RoomType string             `json:"roomType,omitempty"`
	LengthFt float64            `json:"lengthFt,omitempty"`
	WidthFt  float64            `json:"widthFt,omitempty"`
	DimLabel string             `json:"dimLabel,omitempty"`
	Openings []OpeningSymbol    `json:"openings,omitempty"`
	Markers  []AnnotationMarker `json:"markers,omitempty"`
	SubAreas []string           `json:"subAreas,omitempty"`
}

// StructurePlan is the drawable plan for one structure: the interior
// room cluster, an optional roof diagram and the elevation views that
// carry photos but no geometry.
type StructurePlan struct {
	Name       string     `json:"name"`
	Rooms      []PlanRoom `json:"rooms"`
	Roof       *RoofPlan  `json:"roof,omitempty"`
	Elevations []string   `json:"elevations,omitempty"`
	Bounds     Rect       `json:"bounds"`
}

// Plan is the complete drawable sketch for an inspection.
type Plan struct {
	InspectionID string          `json:"inspectionId"`
	Structures   []StructurePlan `json:"structures"`
}

const mainStructureName = "Main Structure"

// BuildPlan assembles the full plan from raw inspection state. Rooms
// group into structures in first-seen order; within each structure the
// interior rooms are laid out from adjacencies, roof facets become a
// roof diagram, and openings, annotations and sub-areas attach to
// their rooms.
func BuildPlan(inspectionID string, st State, p Params) Plan {
	plan := Plan{InspectionID: inspectionID}

	roomsByID := make(map[string]*models.Room, len(st.Rooms))
	for i := range st.Rooms {
		roomsByID[st.Rooms[i].ID] = &st.Rooms[i]
	}

	openingsByRoom := make(map[string][]models.Opening)
	for _, op := range st.Openings {
		openingsByRoom[op.RoomID] = append(openingsByRoom[op.RoomID], op)
	}
	annsByRoom := make(map[string][]models.Annotation)
	for _, a := range st.Annotations {
		annsByRoom[a.RoomID] = append(annsByRoom[a.RoomID], a)
	}
	subAreasByParent := make(map[string][]string)
	for i := range st.Rooms {
		r := &st.Rooms[i]
		if r.ParentRoomID != nil && *r.ParentRoomID != "" {
			subAreasByParent[*r.ParentRoomID] = append(subAreasByParent[*r.ParentRoomID], r.Name)
		}
	}

	var order []string
	groups := make(map[string][]models.Room)
	for _, r := range st.Rooms {
		name := r.Structure
		if name == "" {
			name = mainStructureName
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], r)
	}

	for _, name := range order {
		plan.Structures = append(plan.Structures, buildStructure(name, groups[name], st.Adjacencies, openingsByRoom, annsByRoom, subAreasByParent, p))
	}
	return plan
}

func buildStructure(name string, rooms []models.Room, adjacencies []models.Adjacency,
	openingsByRoom map[string][]models.Opening, annsByRoom map[string][]models.Annotation,
	subAreasByParent map[string][]string, p Params) StructurePlan {

	sp := StructurePlan{Name: name}

	var interior []models.Room
	var facets []models.Room
	for _, r := range rooms {
		switch {
		case r.ParentRoomID != nil && *r.ParentRoomID != "":
			// rolled into the parent's sub-area list
		case r.IsRoofFacet():
			facets = append(facets, r)
		case r.ViewType == models.ViewElevation || r.ViewType == models.ViewExteriorOther:
			sp.Elevations = append(sp.Elevations, r.Name)
		case r.IsInterior():
			interior = append(interior, r)
		}
	}

	rects := Layout(interior, adjacencies, p.Scale, p.MinRoomW, p.MinRoomH)
	for i, r := range interior {
		rect := rects[i]
		pr := PlanRoom{
			LayoutRect: rect,
			Name:       r.Name,
			Status:     r.Status,
			RoomType:   r.RoomType,
			SubAreas:   subAreasByParent[r.ID],
		}

		ppf := p.Scale
		if length, width, ok := r.Dims(); ok {
			pr.LengthFt = length
			pr.WidthFt = width
			pr.DimLabel = formatFeet(length) + " × " + formatFeet(width)
			if length > 0 {
				ppf = rect.W / length
			}
		}
		for _, op := range openingsByRoom[r.ID] {
			if sym, ok := RenderOpening(op, rect.Rect, ppf); ok {
				pr.Openings = append(pr.Openings, sym)
			}
		}
		pr.Markers = PlaceAnnotations(annsByRoom[r.ID], rect.Rect)
		sp.Rooms = append(sp.Rooms, pr)
	}

	if len(facets) > 0 {
		roof := BuildRoofPlan(facets, p.Scale)
		sp.Roof = &roof
	}

	sp.Bounds = structureBounds(sp.Rooms)
	return sp
}

// structureBounds is the union of the interior room rectangles. Roof
// geometry keeps its own coordinate space and is offset at render
// time.
func structureBounds(rooms []PlanRoom) Rect {
	if len(rooms) == 0 {
		return Rect{}
	}
	minX, minY := rooms[0].X, rooms[0].Y
	maxX, maxY := rooms[0].Right(), rooms[0].Bottom()
	for _, r := range rooms[1:] {
		if r.X < minX {
			minX = r.X
		}
		if r.Y < minY {
			minY = r.Y
		}
		if r.Right() > maxX {
			maxX = r.Right()
		}
		if r.Bottom() > maxY {
			maxY = r.Bottom()
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
