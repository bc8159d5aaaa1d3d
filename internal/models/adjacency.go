package models

import "time"

// Adjacency records that two rooms share a wall: room A's
// WallDirectionA faces room B's WallDirectionB, and the two are always
// mutually opposite (north↔south, east↔west). The relation is
// symmetric and owned by neither room.
type Adjacency struct {
	ID                 string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	InspectionID       string   `gorm:"type:uuid;not null;index" json:"inspectionId"`
	RoomIDA            string   `gorm:"type:uuid;not null;index" json:"roomIdA"`
	RoomIDB            string   `gorm:"type:uuid;not null;index" json:"roomIdB"`
	WallDirectionA     string   `gorm:"type:varchar(10);not null" json:"wallDirectionA"`
	WallDirectionB     string   `gorm:"type:varchar(10);not null" json:"wallDirectionB"`
	SharedWallLengthFt *float64 `json:"sharedWallLengthFt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Adjacency) TableName() string { return "adjacencies" }
