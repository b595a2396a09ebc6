package model

import "gorm.io/gorm"

// User is a registered account allowed to read stored events. Records are
// created at signup and never updated or deleted by this system.
type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255"`
	Password     string `json:"-"`
	PasswordSalt string `json:"-"`
}
