package advice

import (
	"context"

	domadvice "github.com/ssd-1524/crop-disease-detection/internal/domain/advice"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
)

type Service struct {
	client domadvice.Client
	repo   analyses.Repository
}

func NewService(client domadvice.Client, repo analyses.Repository) *Service {
	return &Service{client: client, repo: repo}
}

// ForAnalysis generates treatment guidance for one of the owner's records.
func (s *Service) ForAnalysis(ctx context.Context, owner string, id analyses.AnalysisID) (string, error) {
	rec, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return "", err
	}
	return s.client.Advise(ctx, rec.Prediction, rec.SeverityLabel, rec.SeverityPercentage)
}
