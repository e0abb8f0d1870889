package sessions

import (
	"context"
	"errors"
	"time"
)

// ErrUnauthenticated indicates no valid session backs the request.
var ErrUnauthenticated = errors.New("unauthenticated")

// Repository port for session persistence
type Repository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Extend(ctx context.Context, token string, until time.Time) error
	Delete(ctx context.Context, token string) error
}
