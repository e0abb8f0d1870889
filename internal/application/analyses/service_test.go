package analyses

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
)

type memRepo struct {
	records []*domain.Analysis
}

func (m *memRepo) Insert(ctx context.Context, in *domain.Input) (*domain.Analysis, error) {
	panic("not used")
}

func (m *memRepo) ListByOwner(ctx context.Context, owner string) ([]*domain.Analysis, error) {
	out := []*domain.Analysis{}
	for _, rec := range m.records {
		if rec.OwnerID == owner {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) Get(ctx context.Context, owner string, id domain.AnalysisID) (*domain.Analysis, error) {
	for _, rec := range m.records {
		if rec.ID == id && rec.OwnerID == owner {
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

type signStore struct {
	failFor map[string]bool
	signed  int
}

func (s *signStore) Put(ctx context.Context, owner, filename string, size int64, r io.Reader) (string, error) {
	panic("not used")
}

func (s *signStore) SignedURL(ctx context.Context, imagePath string, ttl time.Duration) (string, error) {
	s.signed++
	if s.failFor[imagePath] {
		return "", errors.New("object gone")
	}
	return "https://signed.example/" + imagePath, nil
}

func seedRepo(base time.Time) *memRepo {
	return &memRepo{records: []*domain.Analysis{
		{ID: "a1", OwnerID: "U1", ImagePath: "U1/1_a.jpg", Prediction: "Healthy", CreatedAt: base},
		{ID: "a2", OwnerID: "U1", ImagePath: "U1/2_b.jpg", Prediction: "Common_Rust", CreatedAt: base.Add(time.Minute)},
		{ID: "b1", OwnerID: "U2", ImagePath: "U2/3_c.jpg", Prediction: "Blight", CreatedAt: base.Add(2 * time.Minute)},
	}}
}

func TestHistoryScopedAndNewestFirst(t *testing.T) {
	repo := seedRepo(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	store := &signStore{}
	svc := &Service{Repo: repo, Images: store}

	views, err := svc.History(context.Background(), "U1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, domain.AnalysisID("a2"), views[0].ID)
	assert.Equal(t, domain.AnalysisID("a1"), views[1].ID)
	for _, v := range views {
		assert.Equal(t, "U1", v.OwnerID)
	}
	assert.Equal(t, "https://signed.example/U1/2_b.jpg", views[0].ImageURL)
	assert.Equal(t, "Common Rust", views[0].DisplayName)
}

func TestHistorySignFailureDegradesItemOnly(t *testing.T) {
	repo := seedRepo(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	store := &signStore{failFor: map[string]bool{"U1/2_b.jpg": true}}
	svc := &Service{Repo: repo, Images: store}

	views, err := svc.History(context.Background(), "U1")
	require.NoError(t, err, "a signing failure must not fail the whole view")
	require.Len(t, views, 2)

	assert.Empty(t, views[0].ImageURL, "failed item degrades to no image")
	assert.NotEmpty(t, views[1].ImageURL)
}

func TestHistoryEmptyOwner(t *testing.T) {
	repo := seedRepo(time.Now())
	svc := &Service{Repo: repo, Images: &signStore{}}

	views, err := svc.History(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDetailEnforcesOwnership(t *testing.T) {
	repo := seedRepo(time.Now())
	svc := &Service{Repo: repo, Images: &signStore{}}

	// owner fetches own record
	v, err := svc.Detail(context.Background(), "U1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Healthy", v.Prediction)
	assert.True(t, v.Healthy())

	// guessing another owner's id surfaces as not-found
	_, err = svc.Detail(context.Background(), "U1", "b1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
