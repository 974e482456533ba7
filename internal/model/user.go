package model

import "time"

// User represents a registered author. Users are provisioned administratively
// (see cmd/seed); the API only ever reads them. Passwords are stored as
// bcrypt hashes only.
type User struct {
	Email        string    `json:"email" gorm:"primaryKey;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
