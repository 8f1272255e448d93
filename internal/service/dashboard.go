package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/models"
)

// Statuses that count as upcoming on the dashboard.
var upcomingStatuses = []string{
	models.StatusPending,
	models.StatusApproved,
	models.StatusScheduled,
}

// DashboardService assembles the role-specific landing projection.
type DashboardService struct {
	db            *gorm.DB
	notifications *NotificationService
	symptoms      *SymptomService
	logger        *logrus.Logger
}

func NewDashboardService(db *gorm.DB, notifications *NotificationService, symptoms *SymptomService, logger *logrus.Logger) *DashboardService {
	return &DashboardService{db: db, notifications: notifications, symptoms: symptoms, logger: logger}
}

// Dashboard is the landing-page projection for either role.
type Dashboard struct {
	UserType            string                `json:"user_type"`
	Doctor              *models.Doctor        `json:"doctor,omitempty"`
	Patient             *models.Patient       `json:"patient,omitempty"`
	Appointments        []models.Appointment  `json:"appointments"`
	NotificationCount   int64                 `json:"notification_count"`
	RecentNotifications []models.Notification `json:"recent_notifications"`
	PendingRequests     *int64                `json:"pending_requests,omitempty"`
	SymptomChecks       []models.SymptomCheck `json:"symptom_checks,omitempty"`
}

// Load builds the dashboard for the caller: the next five upcoming
// appointments, the unread count and five most recent notifications,
// plus pending-request count for doctors and the three latest symptom
// checks for patients.
func (s *DashboardService) Load(principal auth.Principal) (*Dashboard, error) {
	count, err := s.notifications.UnreadCount(principal)
	if err != nil {
		return nil, err
	}
	recent, err := s.notifications.RecentForUser(principal.UserID, 5)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		UserType:            principal.Role,
		NotificationCount:   count,
		RecentNotifications: recent,
	}

	today := time.Now().Truncate(24 * time.Hour)

	switch principal.Role {
	case models.RoleDoctor:
		doctor, err := doctorForUser(s.db, principal.UserID)
		if err != nil {
			return nil, err
		}
		dashboard.Doctor = doctor

		err = s.db.Where("doctor_id = ? AND status IN ? AND date >= ?", doctor.ID, upcomingStatuses, today).
			Order("date, time").Limit(5).Find(&dashboard.Appointments).Error
		if err != nil {
			return nil, err
		}

		var pending int64
		err = s.db.Model(&models.Appointment{}).
			Where("doctor_id = ? AND status = ?", doctor.ID, models.StatusPending).
			Count(&pending).Error
		if err != nil {
			return nil, err
		}
		dashboard.PendingRequests = &pending
	case models.RolePatient:
		patient, err := patientForUser(s.db, principal.UserID)
		if err != nil {
			return nil, err
		}
		dashboard.Patient = patient

		err = s.db.Where("patient_id = ? AND status IN ? AND date >= ?", patient.ID, upcomingStatuses, today).
			Order("date, time").Limit(5).Find(&dashboard.Appointments).Error
		if err != nil {
			return nil, err
		}

		checks, err := s.symptoms.RecentForPatient(patient.ID, 3)
		if err != nil {
			return nil, err
		}
		dashboard.SymptomChecks = checks
	default:
		return nil, fmt.Errorf("unknown role %q: %w", principal.Role, ErrNotAuthorized)
	}

	if dashboard.Appointments == nil {
		dashboard.Appointments = []models.Appointment{}
	}

	s.logger.WithFields(logrus.Fields{
		"function": "Load",
		"userId":   principal.UserID,
		"role":     principal.Role,
	}).Debug("Dashboard loaded")
	return dashboard, nil
}
