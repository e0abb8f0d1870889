package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ssd-1524/crop-disease-detection/internal/domain/inference"
)

const defaultTimeout = 60 * time.Second

// Client talks to the model backend: one multipart POST per image against
// {baseURL}/predict. The base URL always comes from configuration.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// predictResponse mirrors the backend contract. Confidence arrives as either
// a string ("92.00%") or a bare number, so it is decoded raw.
type predictResponse struct {
	Prediction         string          `json:"prediction"`
	Confidence         json.RawMessage `json:"confidence"`
	SeverityPercentage float64         `json:"severity_percentage"`
	SeverityLabel      string          `json:"severity_label"`
	MaskImage          string          `json:"sam_mask_image"`
	Error              string          `json:"error"`
}

// Predict implements inference.Client. Every failure mode — transport error,
// non-200 status, undecodable body, explicit error field — collapses into
// ErrInferenceFailed; the workflow does not distinguish sub-kinds.
func (c *Client) Predict(ctx context.Context, filename string, image []byte) (*inference.Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inference.ErrInferenceFailed, err)
	}
	if _, err := fw.Write(image); err != nil {
		return nil, fmt.Errorf("%w: %v", inference.ErrInferenceFailed, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", inference.ErrInferenceFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inference.ErrInferenceFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inference.ErrInferenceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", inference.ErrInferenceFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", inference.ErrInferenceFailed, err)
	}
	if pr.Error != "" {
		return nil, fmt.Errorf("%w: %s", inference.ErrInferenceFailed, pr.Error)
	}

	return &inference.Result{
		Prediction:         pr.Prediction,
		Confidence:         confidenceText(pr.Confidence),
		SeverityPercentage: pr.SeverityPercentage,
		SeverityLabel:      pr.SeverityLabel,
		MaskImage:          pr.MaskImage,
	}, nil
}

// confidenceText keeps the backend's confidence value opaque: strings pass
// through, numbers keep their literal form.
func confidenceText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
