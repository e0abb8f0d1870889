package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/ssd-1524/crop-disease-detection/internal/domain/sessions"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	const q = `
INSERT INTO sessions (token, user_id, created_at, expires_at)
VALUES (?,?,?,?);
`
	_, err := r.db.ExecContext(ctx, q, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *SessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	const q = `
SELECT token, user_id, created_at, expires_at
FROM sessions
WHERE token=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, token)

	var s domain.Session
	if err := row.Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return &s, nil
}

// Extend slides the expiry forward; the refresh side effect of every
// authenticated request.
func (r *SessionRepository) Extend(ctx context.Context, token string, until time.Time) error {
	const q = `UPDATE sessions SET expires_at=? WHERE token=?;`
	_, err := r.db.ExecContext(ctx, q, until, token)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token=?;`
	_, err := r.db.ExecContext(ctx, q, token)
	return err
}
