package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a tracked profile. Points is the spendable balance; no
// floor is enforced at the column level, callers pre-check before deducting.
type User struct {
	ID               string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string         `gorm:"size:255;uniqueIndex" json:"email"`
	FullName         string         `gorm:"size:128;not null" json:"full_name"`
	PasswordHash     string         `gorm:"size:255" json:"-"`
	Points           int            `gorm:"default:0" json:"points"`
	Streak           int            `gorm:"default:0" json:"streak"`
	DailyGoalMinutes int            `gorm:"default:120" json:"daily_goal"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an ID and timestamps when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
