// Package session holds the active credential of the client. It is the
// single place that reads, writes and expires the bearer token; everything
// else asks it for the token through [Session.Token].
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/store"
	"github.com/MKhiriev/loopp-client/internal/utils"
	"github.com/MKhiriev/loopp-client/models"
)

// ErrEmptyToken is returned by [Session.Set] for a blank token.
var ErrEmptyToken = errors.New("empty token")

// Session is safe for concurrent use.
type Session struct {
	store store.CredentialStore
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time

	mu     sync.Mutex
	cached *models.Credential
}

// New returns a Session persisting through s. Fresh credentials live for
// ttl unless the token itself expires sooner.
func New(s store.CredentialStore, ttl time.Duration, log *logger.Logger) *Session {
	return &Session{
		store: s,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// Get returns the active credential. An expired credential is deleted and
// reported as absent. Storage failures are logged and also reported as
// absent, so reads degrade to the unauthenticated path.
func (s *Session) Get(ctx context.Context) (models.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	credential, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCredentialNotFound) {
			s.log.Err(err).Str("func", "Session.Get").Msg("failed to read stored credential")
		}
		return models.Credential{}, false
	}

	if credential.Expired(s.now()) {
		s.log.Info().Str("func", "Session.Get").Time("expired_at", credential.ExpiresAt).Msg("credential expired")
		s.cached = nil
		if err := s.store.DeleteCredential(ctx); err != nil {
			s.log.Err(err).Str("func", "Session.Get").Msg("failed to delete expired credential")
		}
		return models.Credential{}, false
	}

	return credential, true
}

func (s *Session) load(ctx context.Context) (models.Credential, error) {
	if s.cached != nil {
		return *s.cached, nil
	}

	credential, err := s.store.GetCredential(ctx)
	if err != nil {
		return models.Credential{}, err
	}

	s.cached = &credential
	return credential, nil
}

// Set stores token as the active credential, replacing any previous one.
func (s *Session) Set(ctx context.Context, token string) (models.Credential, error) {
	if token == "" {
		return models.Credential{}, ErrEmptyToken
	}

	now := s.now()
	credential := models.Credential{
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	if exp, err := utils.TokenExpiry(token); err == nil && exp.Before(credential.ExpiresAt) {
		credential.ExpiresAt = exp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetCredential(ctx, credential); err != nil {
		return models.Credential{}, fmt.Errorf("error saving credential: %w", err)
	}
	s.cached = &credential

	s.log.Debug().Str("func", "Session.Set").Time("expires_at", credential.ExpiresAt).Msg("credential stored")
	return credential, nil
}

// Clear removes the credential. Clearing an empty session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	if err := s.store.DeleteCredential(ctx); err != nil {
		return fmt.Errorf("error deleting credential: %w", err)
	}

	return nil
}

// Token returns the bearer token, or "" when unauthenticated.
func (s *Session) Token(ctx context.Context) string {
	credential, ok := s.Get(ctx)
	if !ok {
		return ""
	}
	return credential.Token
}
