// Package session holds the signed-in user's credentials for the lifetime
// of the process and persists them across invocations. The store is created
// once at startup, written at successful sign-in or email verification, and
// cleared at sign-out. It is injected into the API client rather than read
// from ambient globals.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the user credential issued by the auth backend.
type Session struct {
	AccessToken string `yaml:"access_token"`
	UserID      string `yaml:"user_id"`
	Email       string `yaml:"email"`
}

// Backend persists a session between process runs.
type Backend interface {
	Load() (*Session, error)
	Save(Session) error
	Delete() error
}

// Store is the process-wide session cell.
type Store struct {
	mu      sync.RWMutex
	current *Session
	backend Backend
}

// NewStore creates a store backed by the given persistence backend and
// loads any previously saved session. A load failure is not fatal: the
// store starts empty and the user signs in again.
func NewStore(backend Backend) *Store {
	s := &Store{backend: backend}
	if backend != nil {
		if sess, err := backend.Load(); err == nil && sess != nil {
			s.current = sess
		}
	}
	return s
}

// Set replaces the current session and persists it.
func (s *Store) Set(sess Session) error {
	if sess.AccessToken == "" {
		return fmt.Errorf("refusing to store session without access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &sess
	if s.backend != nil {
		if err := s.backend.Save(sess); err != nil {
			return fmt.Errorf("could not persist session: %w", err)
		}
	}
	return nil
}

// Clear removes the current session and its persisted copy.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if s.backend != nil {
		if err := s.backend.Delete(); err != nil {
			return fmt.Errorf("could not remove persisted session: %w", err)
		}
	}
	return nil
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token returns the active access token, or "" when signed out or the
// token is past its expiry claim.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	if expired(s.current.AccessToken) {
		return ""
	}
	return s.current.AccessToken
}

// Expired reports whether the stored token carries an exp claim in the
// past. A missing session counts as expired; an opaque token does not.
func (s *Store) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return true
	}
	return expired(s.current.AccessToken)
}

// expired inspects the exp claim without verifying the signature. The
// client has no signing key; verification is the backend's job, this is
// only a local staleness hint.
func expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) tokens are passed through as-is.
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
