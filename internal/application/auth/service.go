package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ssd-1524/crop-disease-detection/internal/application"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/sessions"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/users"
)

// DefaultSessionTTL is how long a session lives without activity; each
// authenticated request slides the expiry forward by this much.
const DefaultSessionTTL = 24 * time.Hour

// Service implements sign-up, login, logout and per-request session
// resolution over the user and session repositories.
type Service struct {
	Users    users.Repository
	Sessions sessions.Repository
	Clock    application.Clock
	TTL      time.Duration
}

func (s *Service) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// SignUp registers a new account with a bcrypt-hashed password.
func (s *Service) SignUp(ctx context.Context, email, password string) (*users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	u := &users.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: s.Clock.Now(),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LogIn checks credentials and creates a fresh session.
func (s *Service) LogIn(ctx context.Context, email, password string) (*sessions.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, sessions.ErrUnauthenticated
	}
	if !u.CheckPassword(password) {
		return nil, sessions.ErrUnauthenticated
	}
	now := s.Clock.Now()
	sess := &sessions.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// LogOut destroys the session; an unknown token is not an error.
func (s *Service) LogOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, token)
}

// Resolve validates the session token and slides its expiry so downstream
// reads observe a consistent, non-expired identity. Returns the owner id.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", sessions.ErrUnauthenticated
	}
	sess, err := s.Sessions.Get(ctx, token)
	if err != nil {
		return "", sessions.ErrUnauthenticated
	}
	now := s.Clock.Now()
	if sess.Expired(now) {
		_ = s.Sessions.Delete(ctx, token)
		return "", sessions.ErrUnauthenticated
	}
	if err := s.Sessions.Extend(ctx, token, now.Add(s.ttl())); err != nil {
		// refresh is best effort; the session itself is still valid
		return sess.UserID, nil
	}
	return sess.UserID, nil
}
