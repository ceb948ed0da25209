package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContentType is the kind of an uploaded artifact.
type ContentType string

const (
	ContentTypePDF   ContentType = "pdf"
	ContentTypeVideo ContentType = "video"
)

// ContentStatus tracks processing of an upload.
type ContentStatus string

const (
	ContentStatusProcessing ContentStatus = "processing"
	ContentStatusComplete   ContentStatus = "complete"
	ContentStatusFailed     ContentStatus = "failed"
)

// Content is an uploaded artifact owned by a user.
type Content struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"userId"`
	Filename  string         `gorm:"not null" json:"filename"`
	Type      ContentType    `gorm:"size:10;not null" json:"type"`
	Path      string         `gorm:"not null" json:"path"`
	URL       string         `json:"url"`
	Size      int64          `gorm:"not null" json:"size"`
	Summary   *string        `gorm:"type:text" json:"summary"`
	Status    ContentStatus  `gorm:"size:15;not null;default:processing" json:"status"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
