package analyses

import (
	"strings"
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// HealthyLabel is the class name the model reports for a leaf without disease.
const HealthyLabel = "Healthy"

// Aggregate Root: Analysis — one persisted leaf inspection result.
type Analysis struct {
	ID                 AnalysisID `json:"id"`
	OwnerID            string     `json:"owner_id"`
	ImagePath          string     `json:"image_path"`
	Prediction         string     `json:"prediction"`
	Confidence         string     `json:"confidence"`
	SeverityPercentage float64    `json:"severity_percentage"`
	SeverityLabel      string     `json:"severity_label,omitempty"`
	MaskImage          string     `json:"sam_mask_image,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Input carries the caller-supplied fields of a new record; id and
// created_at are assigned at persistence time.
type Input struct {
	OwnerID            string
	ImagePath          string
	Prediction         string
	Confidence         string
	SeverityPercentage float64
	SeverityLabel      string
	MaskImage          string
}

// DisplayName renders the class label for humans ("Common_Rust" → "Common Rust").
func (a *Analysis) DisplayName() string {
	return strings.ReplaceAll(a.Prediction, "_", " ")
}

// Healthy reports whether the model found no disease.
func (a *Analysis) Healthy() bool {
	return a.Prediction == HealthyLabel
}
