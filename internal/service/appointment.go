package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/models"
)

// Display formats used in notification messages.
const (
	notifyDateFormat = "Monday, January 02, 2006"
	notifyTimeFormat = "03:04 PM"
	timeSlotFormat   = "15:04"
	dateFormat       = "2006-01-02"
)

// AppointmentService owns the booking flow and the status state machine
// with its notification fan-out. All multi-row writes run in one
// transaction; a failed insert rolls everything back.
type AppointmentService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewAppointmentService(db *gorm.DB, logger *logrus.Logger) *AppointmentService {
	return &AppointmentService{db: db, logger: logger}
}

// BookRequest carries one booking submission.
type BookRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason"`
}

// Book creates a pending appointment and the two booking notifications
// (doctor and patient) in one transaction.
func (s *AppointmentService) Book(principal auth.Principal, req BookRequest) (*models.Appointment, error) {
	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", ErrValidation)
	}
	slot, err := time.Parse(timeSlotFormat, req.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid time format: %w", ErrValidation)
	}

	var appointment models.Appointment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		patient, err := patientForUser(tx, principal.UserID)
		if err != nil {
			return err
		}

		var doctor models.Doctor
		if err := tx.First(&doctor, req.DoctorID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("doctor %d: %w", req.DoctorID, ErrNotFound)
			}
			return err
		}

		appointment = models.Appointment{
			DoctorID:  doctor.ID,
			PatientID: patient.ID,
			Date:      date,
			Time:      slot.Format(timeSlotFormat),
			Status:    models.StatusPending,
		}
		if req.Reason != "" {
			appointment.Reason = &req.Reason
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		formattedDate := date.Format(notifyDateFormat)
		formattedTime := slot.Format(notifyTimeFormat)

		doctorNote := models.Notification{
			UserID:        doctor.UserID,
			AppointmentID: &appointment.ID,
			Message:       fmt.Sprintf("New appointment request from %s for %s at %s.", patient.Name, formattedDate, formattedTime),
			Type:          models.NotifyAppointmentRequest,
		}
		if err := tx.Create(&doctorNote).Error; err != nil {
			return err
		}

		patientNote := models.Notification{
			UserID:        patient.UserID,
			AppointmentID: &appointment.ID,
			Message:       fmt.Sprintf("Your appointment request with Dr. %s for %s at %s has been sent and is pending approval.", doctor.Name, formattedDate, formattedTime),
			Type:          models.NotifyAppointmentPending,
		}
		return tx.Create(&patientNote).Error
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"function": "Book",
			"userId":   principal.UserID,
			"doctorId": req.DoctorID,
			"error":    err,
		}).Error("Appointment booking failed")
		return nil, err
	}
	return &appointment, nil
}

// recognizedStatuses are the transition targets the update route accepts.
var recognizedStatuses = map[string]bool{
	models.StatusApproved:  true,
	models.StatusRejected:  true,
	models.StatusScheduled: true,
	models.StatusCompleted: true,
	models.StatusCancelled: true,
}

// UpdateStatus moves an appointment through the status state machine.
//
// Doctor transitions: pending→approved, pending→rejected,
// scheduled→completed. Patient transitions: {pending,scheduled,approved}
// →cancelled. Anything else is rejected before any write. Non-empty
// notes are persisted whenever the transition itself is allowed.
//
// The `scheduled` value stays in the recognized set because the patient
// cancellation path accepts it, but no route currently assigns it from
// `approved`; whether that hop is wanted is a stakeholder question.
func (s *AppointmentService) UpdateStatus(principal auth.Principal, appointmentID uint, newStatus, notes string) error {
	if !recognizedStatuses[newStatus] {
		return fmt.Errorf("invalid status %q: %w", newStatus, ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the row so two concurrent transitions serialize instead
		// of silently overwriting each other. SQLite (tests) locks the
		// whole database per transaction and rejects FOR UPDATE.
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var appointment models.Appointment
		if err := query.First(&appointment, appointmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("appointment %d: %w", appointmentID, ErrNotFound)
			}
			return err
		}

		var doctor models.Doctor
		if err := tx.First(&doctor, appointment.DoctorID).Error; err != nil {
			return err
		}
		var patient models.Patient
		if err := tx.First(&patient, appointment.PatientID).Error; err != nil {
			return err
		}

		formattedDate := appointment.Date.Format(notifyDateFormat)
		formattedTime := formatSlot(appointment.Time)

		var notification models.Notification
		switch principal.Role {
		case models.RoleDoctor:
			if doctor.UserID != principal.UserID {
				return fmt.Errorf("appointment %d does not belong to doctor: %w", appointmentID, ErrNotAuthorized)
			}
			switch {
			case newStatus == models.StatusApproved && appointment.Status == models.StatusPending:
				notification = models.Notification{
					UserID:  patient.UserID,
					Message: fmt.Sprintf("Dr. %s has approved your appointment for %s at %s.", doctor.Name, formattedDate, formattedTime),
					Type:    models.NotifyAppointmentApproved,
				}
			case newStatus == models.StatusRejected && appointment.Status == models.StatusPending:
				notification = models.Notification{
					UserID:  patient.UserID,
					Message: fmt.Sprintf("Dr. %s has declined your appointment request for %s at %s. Reason: %s", doctor.Name, formattedDate, formattedTime, notes),
					Type:    models.NotifyAppointmentRejected,
				}
			case newStatus == models.StatusCompleted && appointment.Status == models.StatusScheduled:
				notification = models.Notification{
					UserID:  patient.UserID,
					Message: fmt.Sprintf("Your appointment with Dr. %s on %s at %s has been marked as completed.", doctor.Name, formattedDate, formattedTime),
					Type:    models.NotifyAppointmentCompleted,
				}
			default:
				return fmt.Errorf("doctor cannot move appointment from %s to %s: %w", appointment.Status, newStatus, ErrNotAuthorized)
			}
		case models.RolePatient:
			if patient.UserID != principal.UserID {
				return fmt.Errorf("appointment %d does not belong to patient: %w", appointmentID, ErrNotAuthorized)
			}
			cancellable := appointment.Status == models.StatusPending ||
				appointment.Status == models.StatusScheduled ||
				appointment.Status == models.StatusApproved
			if newStatus != models.StatusCancelled || !cancellable {
				return fmt.Errorf("patient cannot move appointment from %s to %s: %w", appointment.Status, newStatus, ErrNotAuthorized)
			}
			notification = models.Notification{
				UserID:  doctor.UserID,
				Message: fmt.Sprintf("%s has cancelled their appointment for %s at %s. Reason: %s", patient.Name, formattedDate, formattedTime, notes),
				Type:    models.NotifyAppointmentCancelled,
			}
		default:
			return fmt.Errorf("unknown role %q: %w", principal.Role, ErrNotAuthorized)
		}

		appointment.Status = newStatus
		if notes != "" {
			appointment.Notes = &notes
		}
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		notification.AppointmentID = &appointment.ID
		return tx.Create(&notification).Error
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"function":      "UpdateStatus",
			"appointmentId": appointmentID,
			"newStatus":     newStatus,
			"error":         err,
		}).Warn("Appointment status update rejected")
	}
	return err
}

// ListForUser returns the caller's appointments, newest first.
func (s *AppointmentService) ListForUser(principal auth.Principal) ([]models.Appointment, error) {
	var appointments []models.Appointment
	switch principal.Role {
	case models.RoleDoctor:
		doctor, err := doctorForUser(s.db, principal.UserID)
		if err != nil {
			return nil, err
		}
		err = s.db.Where("doctor_id = ?", doctor.ID).
			Order("date desc, time desc").Find(&appointments).Error
		return appointments, err
	case models.RolePatient:
		patient, err := patientForUser(s.db, principal.UserID)
		if err != nil {
			return nil, err
		}
		err = s.db.Where("patient_id = ?", patient.ID).
			Order("date desc, time desc").Find(&appointments).Error
		return appointments, err
	}
	return nil, fmt.Errorf("unknown role %q: %w", principal.Role, ErrNotAuthorized)
}

// formatSlot renders a stored "15:04" slot for notification text.
func formatSlot(slot string) string {
	t, err := time.Parse(timeSlotFormat, slot)
	if err != nil {
		return slot
	}
	return t.Format(notifyTimeFormat)
}

func doctorForUser(db *gorm.DB, userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := db.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("doctor profile: %w", ErrNotFound)
		}
		return nil, err
	}
	return &doctor, nil
}

func patientForUser(db *gorm.DB, userID uint) (*models.Patient, error) {
	var patient models.Patient
	if err := db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("patient profile: %w", ErrNotFound)
		}
		return nil, err
	}
	return &patient, nil
}
