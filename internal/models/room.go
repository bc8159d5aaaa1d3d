package models

import "time"

// Room is one captured space. Depending on ViewType it is an interior
// room placed on the floor plan, a roof facet, or an elevation that is
// listed but never drawn.
type Room struct {
	ID           string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	InspectionID string  `gorm:"type:uuid;not null;index" json:"inspectionId"`
	Name         string  `gorm:"type:varchar(120);not null" json:"name"`
	Status       string  `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	RoomType     string  `gorm:"type:varchar(40)" json:"roomType,omitempty"`
	ViewType     string  `gorm:"type:varchar(20);not null;default:'interior';index" json:"viewType"`
	ShapeType    string  `gorm:"type:varchar(20)" json:"shapeType,omitempty"`
	Structure    string  `gorm:"type:varchar(120)" json:"structure,omitempty"`
	ParentRoomID *string `gorm:"type:uuid;index" json:"parentRoomId,omitempty"` // sub-area of another room, never placed directly

	// Dimensions in feet; absent until measured on site
	LengthFt *float64 `json:"lengthFt,omitempty"`
	WidthFt  *float64 `json:"widthFt,omitempty"`
	HeightFt *float64 `json:"heightFt,omitempty"`

	// Roof facets only
	FacetLabel string `gorm:"type:varchar(40)" json:"facetLabel,omitempty"`
	Pitch      string `gorm:"type:varchar(20)" json:"pitch,omitempty"`

	SortOrder int `gorm:"default:0" json:"sortOrder"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Room) TableName() string { return "rooms" }

// Room statuses
const (
	RoomNotStarted = "not_started"
	RoomInProgress = "in_progress"
	RoomComplete   = "complete"
)

// View types
const (
	ViewInterior      = "interior"
	ViewRoofPlan      = "roof_plan"
	ViewElevation     = "elevation"
	ViewExteriorOther = "exterior_other"
)

// Shape types
const (
	ShapeRectangle = "rectangle"
	ShapeHip       = "hip"
	ShapeGable     = "gable"
)

// IsInterior reports whether the room belongs on the floor plan.
// Rooms captured before view types existed carry no ViewType and
// count as interior.
func (r *Room) IsInterior() bool {
	return r.ViewType == "" || r.ViewType == ViewInterior
}

// IsRoofFacet reports whether the room is one roof slope.
func (r *Room) IsRoofFacet() bool {
	return r.ViewType == ViewRoofPlan
}

// Dims returns the measured footprint, if both axes are known.
func (r *Room) Dims() (length, width float64, ok bool) {
	if r.LengthFt == nil || r.WidthFt == nil || *r.LengthFt <= 0 || *r.WidthFt <= 0 {
		return 0, 0, false
	}
	return *r.LengthFt, *r.WidthFt, true
}
