package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RedemptionStatusCompleted is the only status written today; the column
// stays free-form for future refund or pending flows.
const RedemptionStatusCompleted = "completed"

// Redemption is one ledger row per successful redeem operation. Rows are
// append-only.
type Redemption struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	RewardID  string    `gorm:"type:uuid;index;not null" json:"reward_id"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns an ID when not provided.
func (r *Redemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}
