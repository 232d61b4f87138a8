package models

// Plan is a subscription tier. A nil ceiling means unlimited. Name is the
// immutable identity; admins may edit ceilings and activation state.
type Plan struct {
	BaseModel
	Name         string  `gorm:"uniqueIndex;not null"`
	Price        float64 `gorm:"not null"`
	Currency     string  `gorm:"type:varchar(3);default:'USD'"`
	DurationDays int     `gorm:"not null"`

	MaxDreams          *int
	MaxInterpretations *int
	LetterQuota        *int64
	AudioMinuteQuota   *int

	IsActive bool `gorm:"default:true"`

	// Trial plans are granted automatically at dreamer registration with
	// TrialDays as the window, independent of DurationDays.
	IsTrial   bool `gorm:"default:false"`
	TrialDays int  `gorm:"default:0"`
}
