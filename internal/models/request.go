package models

// Request is a dreamer-initiated work item tied to a Dream, with its own
// lifecycle independent of the dream's status.
type Request struct {
	BaseModel
	DreamID       string  `gorm:"not null;index"`
	DreamerID     string  `gorm:"not null;index"`
	InterpreterID *string `gorm:"index"`

	Status RequestStatus `gorm:"type:varchar(20);default:'open'"`
	Budget *float64
	Note   string `gorm:"type:text"`

	// Relations
	Dream       Dream `gorm:"foreignKey:DreamID;constraint:OnDelete:CASCADE"`
	Dreamer     User  `gorm:"foreignKey:DreamerID;constraint:OnDelete:CASCADE"`
	Interpreter *User `gorm:"foreignKey:InterpreterID"`
}
