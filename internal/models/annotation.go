package models

import "time"

// Annotation is a marker pinned inside a room's placed rectangle at a
// fractional position.
type Annotation struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RoomID         string  `gorm:"type:uuid;not null;index" json:"roomId"`
	AnnotationType string  `gorm:"type:varchar(30);not null" json:"annotationType"`
	Label          string  `gorm:"type:varchar(120)" json:"label,omitempty"`
	Value          string  `gorm:"type:varchar(200)" json:"value,omitempty"`
	PosX           float64 `gorm:"not null" json:"posX"` // 0..1 of the room rectangle
	PosY           float64 `gorm:"not null" json:"posY"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Annotation) TableName() string { return "annotations" }

// Annotation types
const (
	AnnotationDamage         = "damage"
	AnnotationHailCount      = "hail_count"
	AnnotationPitch          = "pitch"
	AnnotationStormDirection = "storm_direction"
	AnnotationNote           = "note"
)
