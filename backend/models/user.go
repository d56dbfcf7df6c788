package models

import "gorm.io/gorm"

// User holds one account. Local accounts carry a bcrypt hash, Google
// accounts carry the provider subject id; a row always has at least one
// of the two.
type User struct {
	gorm.Model
	Email        string  `gorm:"unique;not null" json:"email"`
	Name         string  `gorm:"not null" json:"name"`
	PasswordHash *string `json:"-"`
	GoogleID     *string `json:"-"`
}
