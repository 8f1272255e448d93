package models

import "time"

// SymptomCheck captures one symptom-checker submission together with the
// AI analysis attached during the same request. Rows are never mutated
// afterwards.
type SymptomCheck struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PatientID      uint      `json:"patient_id" gorm:"not null;index"`
	Symptoms       string    `json:"symptoms" gorm:"not null"`
	Age            *int      `json:"age"`
	Gender         *string   `json:"gender"`
	Duration       *string   `json:"duration"`
	Severity       *string   `json:"severity"`
	MedicalHistory *string   `json:"medical_history"`
	AIAnalysis     *string   `json:"ai_analysis"`
	ImageData      *string   `json:"-"` // base64 payload, stripped of the data-URL prefix
	ImageAnalysis  *string   `json:"image_analysis"`
	CreatedAt      time.Time `json:"created_at"`

	ImageSections []ImageAnalysisSection `json:"image_sections,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// ImageAnalysisSection is one (title, ordered content) pair extracted
// from the AI image-analysis text.
type ImageAnalysisSection struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SymptomCheckID uint      `json:"symptom_check_id" gorm:"not null;index"`
	SectionTitle   string    `json:"section_title" gorm:"not null"`
	SectionContent string    `json:"section_content" gorm:"not null"`
	SectionOrder   int       `json:"section_order" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
}
