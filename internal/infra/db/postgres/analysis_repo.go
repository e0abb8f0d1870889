package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	domain "github.com/ssd-1524/crop-disease-detection/internal/domain/analyses"
)

// AnalysisRepository is the Postgres flavor of the analyses store, kept in
// step with the MySQL one.
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Insert(ctx context.Context, in *domain.Input) (*domain.Analysis, error) {
	const q = `
INSERT INTO analyses
  (id, user_id, image_path, prediction, confidence, severity_percentage, severity_label, sam_mask_image, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);
`
	a := &domain.Analysis{
		ID:                 domain.AnalysisID(uuid.NewString()),
		OwnerID:            in.OwnerID,
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

func (r *AnalysisRepository) Get(ctx context.Context, owner string, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, user_id, image_path, prediction, confidence, severity_percentage, severity_label, sam_mask_image, created_at
FROM analyses
WHERE user_id=$1 AND id=$2 LIMIT 1;
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

func (r *AnalysisRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Analysis, error) {
	const q = `
SELECT id, user_id, image_path, prediction, confidence, severity_percentage, severity_label, sam_mask_image, created_at
FROM analyses
WHERE user_id=$1 ORDER BY created_at DESC, id DESC;
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
