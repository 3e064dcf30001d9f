package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScreenTimeEntry is one self-reported usage log row. Entries are immutable
// once created and are filtered by user plus exact calendar date.
type ScreenTimeEntry struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"type:uuid;index;not null" json:"user_id"`
	AppName         string    `gorm:"size:128;not null" json:"app_name"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Date            string    `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	CreatedAt       time.Time `json:"created_at"`
}

// BeforeCreate assigns an ID when not provided.
func (e *ScreenTimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}
