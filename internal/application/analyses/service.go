package analyses

import (
	"context"
	"log"
	"time"

	domain "github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
)

// DefaultSignTTL is the signed-URL lifetime used by all current read paths.
const DefaultSignTTL = time.Hour

// Service implements the read side: history and detail views over the
// owner's persisted analyses, decorated with time-limited image URLs.
type Service struct {
	Repo    domain.Repository
	Images  domain.ImageStore
	SignTTL time.Duration
}

// View is an Analysis plus a freshly signed display URL. ImageURL is empty
// when signing failed or the record has no stored image; the view itself
// never fails for that reason.
type View struct {
	*domain.Analysis
	ImageURL    string `json:"image_url,omitempty"`
	DisplayName string `json:"display_name"`
}

func (s *Service) ttl() time.Duration {
	if s.SignTTL > 0 {
		return s.SignTTL
	}
	return DefaultSignTTL
}

// History lists the owner's analyses newest-first, signing each image once
// per call. A signing failure degrades that item to no-image instead of
// failing the whole view.
func (s *Service) History(ctx context.Context, owner string) ([]*View, error) {
	recs, err := s.Repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]*View, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.decorate(ctx, rec))
	}
	return out, nil
}

// Detail fetches one analysis scoped to its owner; a guessed id belonging to
// another owner surfaces as ErrNotFound.
func (s *Service) Detail(ctx context.Context, owner string, id domain.AnalysisID) (*View, error) {
	rec, err := s.Repo.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, rec), nil
}

func (s *Service) decorate(ctx context.Context, rec *domain.Analysis) *View {
	v := &View{Analysis: rec, DisplayName: rec.DisplayName()}
	if rec.ImagePath == "" {
		return v
	}
	url, err := s.Images.SignedURL(ctx, rec.ImagePath, s.ttl())
	if err != nil {
		log.Printf("sign url failed for %s: %v", rec.ImagePath, err)
		return v
	}
	v.ImageURL = url
	return v
}
