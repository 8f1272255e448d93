package models

import "time"

// Appointment statuses. An appointment starts out pending and only ever
// moves through the transitions enforced by the appointment service.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment links one doctor and one patient for a date and time slot.
type Appointment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DoctorID  uint      `json:"doctor_id" gorm:"not null;index"`
	PatientID uint      `json:"patient_id" gorm:"not null;index"`
	Date      time.Time `json:"date" gorm:"not null"`
	Time      string    `json:"time" gorm:"not null"` // "15:04"
	Status    string    `json:"status" gorm:"not null;default:pending;index"`
	Reason    *string   `json:"reason"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
