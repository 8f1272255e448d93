package models

import "time"

// Patient defines the profile for patient users.
type Patient struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	Name           string     `json:"name" gorm:"not null"`
	DateOfBirth    *time.Time `json:"dob"`
	Gender         *string    `json:"gender"`
	Phone          *string    `json:"phone"`
	Address        *string    `json:"address"`
	City           *string    `json:"city"`
	State          *string    `json:"state"`
	ZipCode        *string    `json:"zip_code"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	MedicalHistory *string    `json:"medical_history"`
	Allergies      *string    `json:"allergies"`

	Appointments  []Appointment  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SymptomChecks []SymptomCheck `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
