package models

// User is the authentication identity. Deleting a user cascades to the
// profile and all owned content via the declared foreign keys.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Relations
	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
