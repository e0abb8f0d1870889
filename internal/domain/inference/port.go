package inference

import "context"

// Result is the fixed shape returned by the prediction endpoint.
type Result struct {
	Prediction         string  `json:"prediction"`
	Confidence         string  `json:"confidence"`
	SeverityPercentage float64 `json:"severity_percentage"`
	SeverityLabel      string  `json:"severity_label,omitempty"`
	// MaskImage is a base64-encoded PNG of the detected region, when the
	// backend produces one.
	MaskImage string `json:"sam_mask_image,omitempty"`
}

// Client sends one image to the model backend and parses its verdict.
type Client interface {
	Predict(ctx context.Context, filename string, image []byte) (*Result, error)
}
