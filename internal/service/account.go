package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/models"
)

// AccountService handles registration, login and profile management.
type AccountService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewAccountService(db *gorm.DB, logger *logrus.Logger) *AccountService {
	return &AccountService{db: db, logger: logger}
}

// RegisterRequest carries one registration submission. Specialization is
// required for doctors only.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	UserType        string `json:"user_type" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Specialization  string `json:"specialization"`
}

// Register creates the user and its role profile in one transaction.
func (s *AccountService) Register(req RegisterRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match: %w", ErrValidation)
	}
	if req.UserType != models.RoleDoctor && req.UserType != models.RolePatient {
		return nil, fmt.Errorf("invalid user type %q: %w", req.UserType, ErrValidation)
	}
	if req.UserType == models.RoleDoctor && strings.TrimSpace(req.Specialization) == "" {
		return nil, fmt.Errorf("specialization is required for doctors: %w", ErrValidation)
	}

	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrValidation)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.UserType,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if req.UserType == models.RoleDoctor {
			doctor := models.Doctor{
				UserID:         user.ID,
				Name:           req.Name,
				Specialization: req.Specialization,
			}
			return tx.Create(&doctor).Error
		}
		patient := models.Patient{
			UserID: user.ID,
			Name:   req.Name,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"function": "Register",
			"email":    req.Email,
			"error":    err,
		}).Error("Registration failed")
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and returns the user on success.
func (s *AccountService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid email or password: %w", ErrNotAuthorized)
		}
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password: %w", ErrNotAuthorized)
	}
	return &user, nil
}

// Profile is the role-specific profile projection.
type Profile struct {
	UserType string          `json:"user_type"`
	Doctor   *models.Doctor  `json:"doctor,omitempty"`
	Patient  *models.Patient `json:"patient,omitempty"`
}

// GetProfile loads the caller's role profile.
func (s *AccountService) GetProfile(principal auth.Principal) (*Profile, error) {
	switch principal.Role {
	case models.RoleDoctor:
		doctor, err := doctorForUser(s.db, principal.UserID)
		if err != nil {
			return nil, err
		}
		return &Profile{UserType: models.RoleDoctor, Doctor: doctor}, nil
	case models.RolePatient:
		patient, err := patientForUser(s.db, principal.UserID)
		if err != nil {
			return nil, err
		}
		return &Profile{UserType: models.RolePatient, Patient: patient}, nil
	}
	return nil, fmt.Errorf("unknown role %q: %w", principal.Role, ErrNotAuthorized)
}

// UpdateProfileRequest carries the optional field subset per role. Nil
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	Specialization *string  `json:"specialization"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	ZipCode        *string  `json:"zip_code"`
	Bio            *string  `json:"bio"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	DateOfBirth    *string  `json:"dob"`
	Gender         *string  `json:"gender"`
	MedicalHistory *string  `json:"medical_history"`
	Allergies      *string  `json:"allergies"`

	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

// UpdateProfile applies the provided fields to the caller's profile. A
// password change requires the current password to verify first.
func (s *AccountService) UpdateProfile(principal auth.Principal, req UpdateProfileRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, principal.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("user %d: %w", principal.UserID, ErrNotFound)
			}
			return err
		}

		switch principal.Role {
		case models.RoleDoctor:
			doctor, err := doctorForUser(tx, principal.UserID)
			if err != nil {
				return err
			}
			if req.Name != nil {
				doctor.Name = *req.Name
			}
			if req.Specialization != nil {
				doctor.Specialization = *req.Specialization
			}
			applyString(&doctor.Phone, req.Phone)
			applyString(&doctor.Address, req.Address)
			applyString(&doctor.City, req.City)
			applyString(&doctor.State, req.State)
			applyString(&doctor.ZipCode, req.ZipCode)
			applyString(&doctor.Bio, req.Bio)
			if req.Latitude != nil && req.Longitude != nil {
				doctor.Latitude = req.Latitude
				doctor.Longitude = req.Longitude
			}
			if err := tx.Save(doctor).Error; err != nil {
				return err
			}
		case models.RolePatient:
			patient, err := patientForUser(tx, principal.UserID)
			if err != nil {
				return err
			}
			if req.Name != nil {
				patient.Name = *req.Name
			}
			applyString(&patient.Phone, req.Phone)
			applyString(&patient.Address, req.Address)
			applyString(&patient.City, req.City)
			applyString(&patient.State, req.State)
			applyString(&patient.ZipCode, req.ZipCode)
			applyString(&patient.MedicalHistory, req.MedicalHistory)
			applyString(&patient.Allergies, req.Allergies)
			applyString(&patient.Gender, req.Gender)
			if req.DateOfBirth != nil {
				// A malformed date is skipped, not rejected; the rest of
				// the update still applies.
				if dob, err := time.Parse(dateFormat, *req.DateOfBirth); err == nil {
					patient.DateOfBirth = &dob
				}
			}
			if req.Latitude != nil && req.Longitude != nil {
				patient.Latitude = req.Latitude
				patient.Longitude = req.Longitude
			}
			if err := tx.Save(patient).Error; err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown role %q: %w", principal.Role, ErrNotAuthorized)
		}

		if req.NewPassword != nil && req.CurrentPassword != nil {
			if !auth.CheckPassword(*req.CurrentPassword, user.PasswordHash) {
				return fmt.Errorf("current password is incorrect: %w", ErrValidation)
			}
			hash, err := auth.HashPassword(*req.NewPassword)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListDoctors returns all doctors, optionally filtered by a
// case-insensitive specialization substring.
func (s *AccountService) ListDoctors(specialization string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	query := s.db
	if specialization != "" {
		query = query.Where("LOWER(specialization) LIKE ?", "%"+strings.ToLower(specialization)+"%")
	}
	err := query.Find(&doctors).Error
	return doctors, err
}

func applyString(dst **string, value *string) {
	if value != nil {
		*dst = value
	}
}
