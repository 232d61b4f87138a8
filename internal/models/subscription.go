package models

import "time"

// UserPlan binds one user to one plan for a time window. Unique per
// (user, plan); re-subscribing to the same plan resets the counters and
// the window. Usage counters only grow within the window.
type UserPlan struct {
	BaseModel
	UserID    string     `gorm:"not null;index;uniqueIndex:idx_user_plan"`
	PlanID    string     `gorm:"not null;index;uniqueIndex:idx_user_plan"`
	StartedAt time.Time  `gorm:"not null"`
	ExpiresAt *time.Time // nil = never expires
	IsActive  bool       `gorm:"default:true"`

	LettersUsed      int64 `gorm:"default:0"`
	AudioMinutesUsed int   `gorm:"default:0"`

	// PaymentRef records the external payment reference that last activated
	// this row; activation is idempotent on it.
	PaymentRef string `gorm:"index"`

	// Relations
	Plan Plan `gorm:"foreignKey:PlanID"`
}

// Expired reports whether the window has closed. A past ExpiresAt makes the
// row ineligible as "active" regardless of the stored flag.
func (s *UserPlan) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
