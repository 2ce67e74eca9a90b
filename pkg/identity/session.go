// FILE: identity/session.go

// Package identity tracks the signed-in user. Authentication itself is
// delegated to an external identity provider; this package only holds
// session state and broadcasts changes.
package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/illmade-knight/place-map/pkg/events"
)

// User identifies a signed-in user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider is the external identity provider contract.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (User, error)
	SignUp(ctx context.Context, email, password string) (User, error)
	SignOut(ctx context.Context) error
}

// Session holds the current user and emits a session-changed event with
// the new user (or nil on sign-out). The application subscribes exactly
// once at startup.
type Session struct {
	provider Provider
	logger   zerolog.Logger

	mu      sync.RWMutex
	current *User

	changes *events.Emitter[*User]
}

// NewSession creates a session bound to a provider.
func NewSession(provider Provider, logger zerolog.Logger) *Session {
	return &Session{
		provider: provider,
		logger:   logger.With().Str("component", "session").Logger(),
		changes:  events.NewEmitter[*User](),
	}
}

// SignIn authenticates against the provider and publishes the new session.
func (s *Session) SignIn(ctx context.Context, email, password string) (User, error) {
	user, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return User{}, fmt.Errorf("sign in: %w", err)
	}
	s.setCurrent(&user)
	s.logger.Info().Str("user_id", user.ID).Msg("signed in")
	return user, nil
}

// SignUp registers a new account and starts its session.
func (s *Session) SignUp(ctx context.Context, email, password string) (User, error) {
	user, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return User{}, fmt.Errorf("sign up: %w", err)
	}
	s.setCurrent(&user)
	s.logger.Info().Str("user_id", user.ID).Msg("account created")
	return user, nil
}

// SignOut ends the session and publishes a nil user.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.setCurrent(nil)
	s.logger.Info().Msg("signed out")
	return nil
}

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Changes emits the user on every session change, nil on sign-out.
func (s *Session) Changes() *events.Emitter[*User] {
	return s.changes
}

func (s *Session) setCurrent(u *User) {
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	s.changes.Publish(u)
}
