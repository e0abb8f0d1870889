package submissions

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/inference"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/sessions"
)

// Stage names the workflow step a submission was in when it failed.
type Stage string

const (
	StageUploading  Stage = "uploading"
	StageInferring  Stage = "inferring"
	StagePersisting Stage = "persisting"
)

// StageError is the absorbing failure state of a submission: which stage
// broke and why. Result is non-nil when inference completed before the
// failure (persist failures), so callers can still render the verdict.
type StageError struct {
	Stage  Stage
	Err    error
	Result *inference.Result
}

func (e *StageError) Error() string {
	return fmt.Sprintf("submission %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Service implements the submission use-case: upload → predict → persist.
// Stages run strictly in sequence; no stage is retried and no stage is
// rolled back when a later one fails.
type Service struct {
	Repo      analyses.Repository
	Images    analyses.ImageStore
	Inference inference.Client
}

// SubmitCommand carries one user-selected image.
type SubmitCommand struct {
	OwnerID  string
	Filename string
	Image    []byte
}

type SubmitResult struct {
	Result    *inference.Result  `json:"result"`
	Record    *analyses.Analysis `json:"record,omitempty"`
	ImagePath string             `json:"image_path,omitempty"`
}

// Submit runs one image through the pipeline. On a persist failure the
// returned SubmitResult still carries the inference result alongside the
// error: durability degrades, the current session's verdict does not.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (SubmitResult, error) {
	if strings.TrimSpace(cmd.OwnerID) == "" {
		// abort before any network call
		return SubmitResult{}, &StageError{Stage: StageUploading, Err: sessions.ErrUnauthenticated}
	}
	if len(cmd.Image) == 0 {
		return SubmitResult{}, &StageError{
			Stage: StageUploading,
			Err:   fmt.Errorf("%w: empty image", analyses.ErrUploadFailed),
		}
	}

	path, err := s.Images.Put(ctx, cmd.OwnerID, cmd.Filename, int64(len(cmd.Image)), bytes.NewReader(cmd.Image))
	if err != nil {
		return SubmitResult{}, &StageError{
			Stage: StageUploading,
			Err:   fmt.Errorf("%w: %v", analyses.ErrUploadFailed, err),
		}
	}

	res, err := s.Inference.Predict(ctx, cmd.Filename, cmd.Image)
	if err != nil {
		// the stored object stays behind; an orphan image is accepted
		return SubmitResult{ImagePath: path}, &StageError{Stage: StageInferring, Err: err}
	}

	rec, err := s.Repo.Insert(ctx, &analyses.Input{
		OwnerID:            cmd.OwnerID,
		ImagePath:          path,
		Prediction:         res.Prediction,
		Confidence:         res.Confidence,
		SeverityPercentage: res.SeverityPercentage,
		SeverityLabel:      res.SeverityLabel,
		MaskImage:          res.MaskImage,
	})
	if err != nil {
		return SubmitResult{Result: res, ImagePath: path}, &StageError{
			Stage:  StagePersisting,
			Err:    fmt.Errorf("%w: %v", analyses.ErrPersistFailed, err),
			Result: res,
		}
	}

	return SubmitResult{Result: res, Record: rec, ImagePath: path}, nil
}
