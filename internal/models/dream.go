package models

import (
	"time"

	"gorm.io/datatypes"
)

// Dream is a dreamer's submission. Status and interpretation mutations are
// gated by role and assignment in the service layer.
type Dream struct {
	BaseModel
	DreamerID     string  `gorm:"not null;index"`
	InterpreterID *string `gorm:"index"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	DreamDate   *time.Time
	Mood        string
	Tags        datatypes.JSON `gorm:"type:jsonb"`

	Status         DreamStatus `gorm:"type:varchar(30);default:'new'"`
	Interpretation string      `gorm:"type:text"`
	Notes          string      `gorm:"type:text"`

	AudioURL     string
	AudioMinutes int `gorm:"default:0"`

	// Relations
	Dreamer     User  `gorm:"foreignKey:DreamerID;constraint:OnDelete:CASCADE"`
	Interpreter *User `gorm:"foreignKey:InterpreterID"`
}
