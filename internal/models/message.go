package models

// Message is an append-only item scoped to a Dream. Deletion is restricted
// to the original sender.
type Message struct {
	BaseModel
	DreamID  string `gorm:"not null;index"`
	SenderID string `gorm:"not null;index"`
	Body     string `gorm:"type:text;not null"`

	// Relations
	Dream  Dream `gorm:"foreignKey:DreamID;constraint:OnDelete:CASCADE"`
	Sender User  `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
}

// ChatMessage is an append-only item scoped to a Request.
type ChatMessage struct {
	BaseModel
	RequestID string `gorm:"not null;index"`
	SenderID  string `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`

	// Relations
	Request Request `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Sender  User    `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
}

// Comment is an append-only item scoped to a Dream; read access is not
// restricted by participation.
type Comment struct {
	BaseModel
	DreamID  string `gorm:"not null;index"`
	AuthorID string `gorm:"not null;index"`
	Body     string `gorm:"type:text;not null"`

	// Relations
	Dream  Dream `gorm:"foreignKey:DreamID;constraint:OnDelete:CASCADE"`
	Author User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
