package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reward is a redeemable catalog item. The catalog is seeded or administered
// externally; the application only reads it.
type Reward struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Description    string    `gorm:"size:512" json:"description"`
	PointsRequired int       `gorm:"not null" json:"points_required"`
	Category       string    `gorm:"size:64" json:"category"`
	Available      bool      `gorm:"default:true" json:"available"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns an ID when not provided.
func (r *Reward) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}
