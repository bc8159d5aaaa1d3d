package models

import "time"

// Opening is a wall penetration owned by a room. WallDirection names
// the wall it sits on; records from older mobile clients carry only
// the numeric WallIndex (0=north, 1=east, 2=south, 3=west).
type Opening struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RoomID         string  `gorm:"type:uuid;not null;index" json:"roomId"`
	OpeningType    string  `gorm:"type:varchar(30);not null" json:"openingType"`
	WallDirection  string  `gorm:"type:varchar(10)" json:"wallDirection,omitempty"`
	WallIndex      *int    `json:"wallIndex,omitempty"`
	PositionOnWall float64 `gorm:"not null" json:"positionOnWall"` // 0..1 along the wall
	WidthFt        float64 `gorm:"not null" json:"widthFt"`
	HeightFt       float64 `gorm:"not null" json:"heightFt"`
	Quantity       int     `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Opening) TableName() string { return "openings" }

// Opening types
const (
	OpeningDoor         = "door"
	OpeningWindow       = "window"
	OpeningSlidingDoor  = "sliding_door"
	OpeningFrenchDoor   = "french_door"
	OpeningOverheadDoor = "overhead_door"
	OpeningMissingWall  = "missing_wall"
	OpeningPassThrough  = "pass_through"
	OpeningArchway      = "archway"
	OpeningCasedOpening = "cased_opening"
)

// IsDoorLike reports whether the opening renders with the wider gap
// cap used for doors.
func (o *Opening) IsDoorLike() bool {
	switch o.OpeningType {
	case OpeningDoor, OpeningSlidingDoor, OpeningFrenchDoor, OpeningOverheadDoor:
		return true
	}
	return false
}
