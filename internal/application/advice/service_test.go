package advice

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
)

type stubClient struct {
	lastPrediction string
	lastLabel      string
	lastPct        float64
}

func (s *stubClient) Advise(ctx context.Context, prediction, severityLabel string, severityPct float64) (string, error) {
	s.lastPrediction = prediction
	s.lastLabel = severityLabel
	s.lastPct = severityPct
	return fmt.Sprintf("advice for %s", prediction), nil
}

type oneRecordRepo struct {
	rec *analyses.Analysis
}

func (r *oneRecordRepo) Insert(ctx context.Context, in *analyses.Input) (*analyses.Analysis, error) {
	panic("not used")
}

func (r *oneRecordRepo) ListByOwner(ctx context.Context, owner string) ([]*analyses.Analysis, error) {
	panic("not used")
}

func (r *oneRecordRepo) Get(ctx context.Context, owner string, id analyses.AnalysisID) (*analyses.Analysis, error) {
	if r.rec != nil && r.rec.OwnerID == owner && r.rec.ID == id {
		return r.rec, nil
	}
	return nil, analyses.ErrNotFound
}

func TestForAnalysis(t *testing.T) {
	client := &stubClient{}
	repo := &oneRecordRepo{rec: &analyses.Analysis{
		ID:                 "a1",
		OwnerID:            "U1",
		Prediction:         "Common_Rust",
		SeverityLabel:      "Moderate",
		SeverityPercentage: 35,
	}}
	svc := NewService(client, repo)

	text, err := svc.ForAnalysis(context.Background(), "U1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "advice for Common_Rust", text)
	assert.Equal(t, "Moderate", client.lastLabel)
	assert.Equal(t, float64(35), client.lastPct)
}

func TestForAnalysisOwnership(t *testing.T) {
	client := &stubClient{}
	repo := &oneRecordRepo{rec: &analyses.Analysis{ID: "a1", OwnerID: "U1", Prediction: "Blight"}}
	svc := NewService(client, repo)

	_, err := svc.ForAnalysis(context.Background(), "U2", "a1")
	assert.ErrorIs(t, err, analyses.ErrNotFound)
	assert.Empty(t, client.lastPrediction, "the advisor is never called for a foreign record")
}
