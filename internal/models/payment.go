package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment is an immutable record of a monetary transaction. Reference is
// the provider's external ID; webhook reprocessing is idempotent on it.
type Payment struct {
	BaseModel
	UserID string  `gorm:"not null;index"`
	PlanID *string `gorm:"index"`

	Amount   float64       `gorm:"not null"`
	Currency string        `gorm:"type:varchar(3);default:'USD'"`
	Status   PaymentStatus `gorm:"type:varchar(20);default:'pending'"`
	Provider string        `gorm:"type:varchar(30);default:'stripe'"`

	Reference string         `gorm:"uniqueIndex;not null"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	PaidAt    *time.Time

	// Relations
	Plan *Plan `gorm:"foreignKey:PlanID"`
}
