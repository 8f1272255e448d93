package models

import "time"

// User roles.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User is the login identity. Every user owns exactly one Doctor or
// Patient profile depending on Role; deleting a user cascades to the
// profile and everything hanging off it.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Doctor  *Doctor  `json:"doctor,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Patient *Patient `json:"patient,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
