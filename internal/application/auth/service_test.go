package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssd-1524/crop-disease-detection/internal/domain/sessions"
	"github.com/ssd-1524/crop-disease-detection/internal/domain/users"
)

type memUsers struct {
	byEmail map[string]*users.User
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*users.User{}} }

func (m *memUsers) Create(ctx context.Context, u *users.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return users.ErrDuplicateEmail
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

type memSessions struct {
	byToken map[string]*sessions.Session
}

func newMemSessions() *memSessions { return &memSessions{byToken: map[string]*sessions.Session{}} }

func (m *memSessions) Create(ctx context.Context, s *sessions.Session) error {
	cp := *s
	m.byToken[s.Token] = &cp
	return nil
}

func (m *memSessions) Get(ctx context.Context, token string) (*sessions.Session, error) {
	s, ok := m.byToken[token]
	if !ok {
		return nil, sessions.ErrUnauthenticated
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Extend(ctx context.Context, token string, until time.Time) error {
	if s, ok := m.byToken[token]; ok {
		s.ExpiresAt = until
	}
	return nil
}

func (m *memSessions) Delete(ctx context.Context, token string) error {
	delete(m.byToken, token)
	return nil
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func newTestService(clock *fixedClock) (*Service, *memUsers, *memSessions) {
	u := newMemUsers()
	s := newMemSessions()
	return &Service{Users: u, Sessions: s, Clock: clock}, u, s
}

func TestSignUpAndLogIn(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, _, _ := newTestService(clock)
	ctx := context.Background()

	u, err := svc.SignUp(ctx, "Farmer@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "farmer@example.com", u.Email)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)

	sess, err := svc.LogIn(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.UserID)
	assert.Equal(t, clock.t.Add(DefaultSessionTTL), sess.ExpiresAt)
}

func TestLogInWrongPassword(t *testing.T) {
	clock := &fixedClock{t: time.Now()}
	svc, _, _ := newTestService(clock)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.LogIn(ctx, "farmer@example.com", "wrong")
	assert.ErrorIs(t, err, sessions.ErrUnauthenticated)

	_, err = svc.LogIn(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, sessions.ErrUnauthenticated)
}

func TestResolveSlidesExpiry(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, _, store := newTestService(clock)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)
	sess, err := svc.LogIn(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)

	// an hour later the session is refreshed, not expired
	clock.t = clock.t.Add(time.Hour)
	owner, err := svc.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, owner)
	assert.Equal(t, clock.t.Add(DefaultSessionTTL), store.byToken[sess.Token].ExpiresAt)
}

func TestResolveExpiredSessionDestroyed(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, _, store := newTestService(clock)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)
	sess, err := svc.LogIn(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)

	clock.t = clock.t.Add(DefaultSessionTTL + time.Second)
	_, err = svc.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, sessions.ErrUnauthenticated)
	assert.NotContains(t, store.byToken, sess.Token, "expired sessions are removed")
}

func TestLogOut(t *testing.T) {
	clock := &fixedClock{t: time.Now()}
	svc, _, store := newTestService(clock)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)
	sess, err := svc.LogIn(ctx, "farmer@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.LogOut(ctx, sess.Token))
	assert.NotContains(t, store.byToken, sess.Token)

	_, err = svc.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, sessions.ErrUnauthenticated)

	// logging out twice is harmless
	assert.NoError(t, svc.LogOut(ctx, sess.Token))
}
