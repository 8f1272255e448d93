package models

import "time"

// Notification types emitted by the appointment workflow.
const (
	NotifyAppointmentRequest   = "appointment_request"
	NotifyAppointmentPending   = "appointment_pending"
	NotifyAppointmentApproved  = "appointment_approved"
	NotifyAppointmentRejected  = "appointment_rejected"
	NotifyAppointmentCompleted = "appointment_completed"
	NotifyAppointmentCancelled = "appointment_cancelled"
)

// Notification rows are append-only; only IsRead ever changes.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	AppointmentID *uint     `json:"appointment_id" gorm:"index"`
	Message       string    `json:"message" gorm:"not null"`
	Type          string    `json:"type" gorm:"not null"`
	IsRead        bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at"`
}
