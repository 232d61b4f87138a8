package models

// Profile is the public identity layered on a User. Role is mutable only
// by super_admin. CurrentPlanID tracks the most recently activated plan.
type Profile struct {
	BaseModel
	UserID        string      `gorm:"uniqueIndex;not null"`
	Role          ProfileRole `gorm:"type:varchar(20);not null"`
	FullName      string      `gorm:"not null"`
	Bio           string
	AvatarURL     string
	CurrentPlanID *string `gorm:"index"`

	// Relations
	CurrentPlan *Plan `gorm:"foreignKey:CurrentPlanID"`
}
