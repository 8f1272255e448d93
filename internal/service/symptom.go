package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"healthcare-backend/internal/ai"
	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/models"
)

var dataURLPrefix = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,`)

// SymptomService runs the symptom-checker flow: persist a draft check,
// call the text model, normalize the result, optionally run the vision
// model over an attached image, and commit everything atomically.
type SymptomService struct {
	db        *gorm.DB
	analyzer  ai.Analyzer
	segmenter ai.Segmenter
	logger    *logrus.Logger
}

func NewSymptomService(db *gorm.DB, analyzer ai.Analyzer, segmenter ai.Segmenter, logger *logrus.Logger) *SymptomService {
	return &SymptomService{db: db, analyzer: analyzer, segmenter: segmenter, logger: logger}
}

// SymptomCheckRequest is one symptom-checker submission.
type SymptomCheckRequest struct {
	Symptoms       string `json:"symptoms" binding:"required"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Duration       string `json:"duration"`
	Severity       string `json:"severity"`
	MedicalHistory string `json:"medical_history"`
	ImageData      string `json:"image_data"` // data-URL-prefixed base64
}

// SymptomCheckResult is what the handler returns to the client.
type SymptomCheckResult struct {
	CheckID       uint
	Analysis      string
	HasImage      bool
	ImageAnalysis *string
}

// Run executes one symptom check for the calling patient.
//
// The text analysis is mandatory: if the model call fails or returns
// empty, the whole transaction rolls back and the check is not
// persisted. The image analysis is best-effort: a failure there is
// logged and swallowed so the core result still goes through.
func (s *SymptomService) Run(ctx context.Context, principal auth.Principal, req SymptomCheckRequest) (*SymptomCheckResult, error) {
	if strings.TrimSpace(req.Symptoms) == "" {
		return nil, fmt.Errorf("symptoms are required: %w", ErrValidation)
	}

	mimeType, imageB64, hasImage := extractImagePayload(req.ImageData)

	input := ai.SymptomInput{
		Symptoms:       req.Symptoms,
		Age:            req.Age,
		Gender:         req.Gender,
		Duration:       req.Duration,
		Severity:       req.Severity,
		MedicalHistory: req.MedicalHistory,
	}

	var result SymptomCheckResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		patient, err := patientForUser(tx, principal.UserID)
		if err != nil {
			return err
		}

		check := models.SymptomCheck{
			PatientID: patient.ID,
			Symptoms:  req.Symptoms,
		}
		if age, err := strconv.Atoi(req.Age); err == nil {
			check.Age = &age
		}
		setIfNonEmpty(&check.Gender, req.Gender)
		setIfNonEmpty(&check.Duration, req.Duration)
		setIfNonEmpty(&check.Severity, req.Severity)
		setIfNonEmpty(&check.MedicalHistory, req.MedicalHistory)
		if hasImage {
			check.ImageData = &imageB64
		}

		// Create first so the check has an ID for the section rows.
		if err := tx.Create(&check).Error; err != nil {
			return err
		}

		analysis, err := s.analyzer.AnalyzeSymptoms(ctx, input)
		if err != nil {
			return fmt.Errorf("symptom analysis: %v: %w", err, ErrUnavailable)
		}
		formatted := s.segmenter.FormatAnalysis(analysis)
		check.AIAnalysis = &formatted

		if hasImage {
			imageAnalysis, err := s.analyzer.AnalyzeImage(ctx, mimeType, imageB64, input)
			if err != nil {
				// Degrade rather than fail: the text analysis is the
				// core result, the image analysis is supplementary.
				s.logger.WithFields(logrus.Fields{
					"function":  "Run",
					"patientId": patient.ID,
					"checkId":   check.ID,
					"error":     err,
				}).Error("Image analysis failed, continuing without it")
			} else {
				check.ImageAnalysis = &imageAnalysis
				for _, section := range s.segmenter.SplitImageAnalysis(imageAnalysis) {
					row := models.ImageAnalysisSection{
						SymptomCheckID: check.ID,
						SectionTitle:   section.Title,
						SectionContent: section.Content,
						SectionOrder:   section.Order,
					}
					if err := tx.Create(&row).Error; err != nil {
						return err
					}
				}
			}
		}

		if err := tx.Save(&check).Error; err != nil {
			return err
		}

		result = SymptomCheckResult{
			CheckID:       check.ID,
			Analysis:      formatted,
			HasImage:      hasImage,
			ImageAnalysis: check.ImageAnalysis,
		}
		return nil
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"function": "Run",
			"userId":   principal.UserID,
			"error":    err,
		}).Error("Symptom check failed")
		return nil, err
	}
	return &result, nil
}

// Get returns one symptom check with its image sections, owner-only.
func (s *SymptomService) Get(principal auth.Principal, checkID uint) (*models.SymptomCheck, error) {
	patient, err := patientForUser(s.db, principal.UserID)
	if err != nil {
		return nil, err
	}

	var check models.SymptomCheck
	err = s.db.Preload("ImageSections", func(db *gorm.DB) *gorm.DB {
		return db.Order("section_order")
	}).First(&check, checkID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("symptom check %d: %w", checkID, ErrNotFound)
		}
		return nil, err
	}
	if check.PatientID != patient.ID {
		return nil, fmt.Errorf("symptom check %d does not belong to patient: %w", checkID, ErrNotAuthorized)
	}
	return &check, nil
}

// RecentForPatient returns the patient's latest checks for the dashboard.
func (s *SymptomService) RecentForPatient(patientID uint, limit int) ([]models.SymptomCheck, error) {
	var checks []models.SymptomCheck
	err := s.db.Where("patient_id = ?", patientID).
		Order("created_at desc").Limit(limit).Find(&checks).Error
	return checks, err
}

// extractImagePayload validates the data-URL prefix and strips it,
// returning the mime type and raw base64 payload.
func extractImagePayload(imageData string) (mimeType, payload string, ok bool) {
	match := dataURLPrefix.FindStringSubmatch(imageData)
	if match == nil {
		return "", "", false
	}
	return match[1], imageData[len(match[0]):], true
}

func setIfNonEmpty(dst **string, value string) {
	if value != "" {
		*dst = &value
	}
}
