// Package session keeps the console's signed-in principal: the platform
// token, the owner or admin identity and the login time. One Store is created
// at start-up, loaded with Init and cleared on logout or when the platform
// answers 401.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ownerconsole/internal/model"
)

const DefaultTTL = 3 * time.Hour

type Session struct {
	Token     string
	Role      string
	Identity  model.Identity
	LoginTime time.Time
}

type Store struct {
	db      *sql.DB
	profile string
	ttl     time.Duration
	now     func() time.Time

	mu  sync.RWMutex
	cur *Session
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

func NewStore(db *sql.DB, profile string, opts ...Option) *Store {
	s := &Store{db: db, profile: profile, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads a persisted session, dropping it when it has already expired.
func (s *Store) Init(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx,
		`SELECT token, role, identity, login_time FROM console_sessions WHERE profile = $1`, s.profile)

	var (
		sess     Session
		identity string
		login    int64
	)
	if err := row.Scan(&sess.Token, &sess.Role, &identity, &login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal([]byte(identity), &sess.Identity); err != nil {
		return fmt.Errorf("decode identity: %w", err)
	}
	sess.LoginTime = time.UnixMilli(login)

	s.mu.Lock()
	s.cur = &sess
	s.mu.Unlock()

	if !s.IsAuthenticated(ctx) {
		slog.Info("persisted session expired", "profile", s.profile)
	}
	return nil
}

// Save records a successful login for role and persists it.
func (s *Store) Save(ctx context.Context, role string, auth *model.AuthResponse) error {
	identity, err := json.Marshal(auth.UserData)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	sess := &Session{Token: auth.Token, Role: role, Identity: auth.UserData, LoginTime: s.now()}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO console_sessions (profile, token, role, identity, login_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile) DO UPDATE SET
			token = excluded.token,
			role = excluded.role,
			identity = excluded.identity,
			login_time = excluded.login_time
	`, s.profile, sess.Token, role, string(identity), sess.LoginTime.UnixMilli())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
	return nil
}

// Clear is logout: it forgets the session in memory and in storage.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM console_sessions WHERE profile = $1`, s.profile); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a live session exists. A session dies
// ttl after login or when the token's exp claim has passed, whichever is
// first; a dead session is cleared.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	s.mu.RLock()
	sess := s.cur
	s.mu.RUnlock()

	if sess == nil || sess.Token == "" {
		return false
	}

	now := s.now()
	if now.Sub(sess.LoginTime) <= s.ttl && !tokenExpired(sess.Token, now) {
		return true
	}

	if err := s.Clear(ctx); err != nil {
		slog.Error("failed to clear expired session", "error", err)
	}
	return false
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

func (s *Store) CurrentUser() (model.Identity, bool) {
	return s.identity(model.RoleOwner)
}

func (s *Store) CurrentAdmin() (model.Identity, bool) {
	return s.identity(model.RoleAdmin)
}

func (s *Store) identity(role string) (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil || s.cur.Role != role {
		return model.Identity{}, false
	}
	return s.cur.Identity, true
}

// tokenExpired reads exp without verifying the signature; the console does
// not hold the platform's key. Opaque tokens never expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
