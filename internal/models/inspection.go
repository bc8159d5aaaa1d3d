package models

import (
	"time"

	"gorm.io/datatypes"
)

// Inspection is one field visit for one claim. It owns every room,
// opening, adjacency and annotation captured on site.
type Inspection struct {
	ID           string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ClaimNumber  string         `gorm:"type:varchar(64);not null;index" json:"claimNumber"`
	PolicyNumber string         `gorm:"type:varchar(64)" json:"policyNumber,omitempty"`
	InsuredName  string         `gorm:"type:varchar(200)" json:"insuredName,omitempty"`
	Address      string         `gorm:"type:varchar(300)" json:"address,omitempty"`
	Status       string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ExportedAt   *time.Time     `json:"exportedAt,omitempty"` // set once pushed to the claims system
	Metadata     datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Inspection) TableName() string { return "inspections" }

// Inspection statuses
const (
	InspectionDraft      = "draft"
	InspectionInProgress = "in_progress"
	InspectionComplete   = "complete"
)
