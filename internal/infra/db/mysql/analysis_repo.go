package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	domain "github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Insert persists one completed analysis. Rows are append-only: no update
// path exists, id and created_at are assigned here.
func (r *AnalysisRepository) Insert(ctx context.Context, in *domain.Input) (*domain.Analysis, error) {
	const q = `
INSERT INTO analyses
  (id, user_id, image_path, prediction, confidence, severity_percentage, severity_label, sam_mask_image, created_at)
VALUES (?,?,?,?,?,?,?,?,?);
`
	a := &domain.Analysis{
		ID:                 domain.AnalysisID(uuid.NewString()),
		OwnerID:            stringOrDash(in.OwnerID),
		ImagePath:          in.ImagePath,
		Prediction:         in.Prediction,
		Confidence:         in.Confidence,
		SeverityPercentage: in.SeverityPercentage,
		SeverityLabel:      in.SeverityLabel,
		MaskImage:          in.MaskImage,
		CreatedAt:          time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.OwnerID, a.ImagePath, a.Prediction, a.Confidence,
		a.SeverityPercentage, a.SeverityLabel, a.MaskImage, a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Get by ID, scoped to the owner so a guessed id never leaks another
// owner's record.
func (r *AnalysisRepository) Get(ctx context.Context, owner string, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, user_id, image_path, prediction, confidence, severity_percentage, severity_label, sam_mask_image, created_at
FROM analyses
WHERE user_id=? AND id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, owner, id)

	var a domain.Analysis
	if err := row.Scan(
		&a.ID, &a.OwnerID, &a.ImagePath, &a.Prediction, &a.Confidence,
		&a.SeverityPercentage, &a.SeverityLabel, &a.MaskImage, &a.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByOwner returns the owner's analyses newest-first; an owner with no
// history gets an empty slice, not an error.
func (r *AnalysisRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Analysis, error) {
	const q = `
SELECT id, user_id, image_path, prediction, confidence, severity_percentage, severity_label, sam_mask_image, created_at
FROM analyses
WHERE user_id=? ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Analysis{}
	for rows.Next() {
		var a domain.Analysis
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.ImagePath, &a.Prediction, &a.Confidence,
			&a.SeverityPercentage, &a.SeverityLabel, &a.MaskImage, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
