package models

import "time"

// User & auth related models. The shop runs on a single shared account
// bootstrapped from the environment at startup; there are no roles.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"unique;not null;index"`
	Password  string `gorm:"not null"` // bcrypt hash
	CreatedAt time.Time
	UpdatedAt time.Time
}
