package models

// Doctor defines the profile for doctor users.
type Doctor struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	UserID         uint     `json:"user_id" gorm:"not null;index"`
	Name           string   `json:"name" gorm:"not null"`
	Specialization string   `json:"specialization" gorm:"not null;index"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	ZipCode        *string  `json:"zip_code"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Bio            *string  `json:"bio"`

	Appointments []Appointment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
