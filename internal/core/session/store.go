// Package session holds the client-side authenticated-identity store: a
// per-client holder hydrated once from a durable cache and replaced wholesale
// on login/logout. It is deliberately not a package singleton; each Store is
// constructed with its own Cache so callers (and tests) own independent state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// ErrNotFound is returned by Cache implementations when no session is stored.
var ErrNotFound = errors.New("session: not found")

// Cache is the durable client-local key-value store behind a Store. Each cache
// instance is already namespaced to one client under a single fixed key; the
// payload is the serialized session, stored without encryption or integrity
// checks.
type Cache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
	Remove(ctx context.Context) error
}

// Store holds the current authenticated session for one client. It starts in
// the loading state; Hydrate performs the one-shot read of any persisted
// session, trusting it without re-validation. Login and Logout are
// last-writer-wins.
type Store struct {
	cache Cache
	log   zerolog.Logger

	mu        sync.RWMutex
	current   *domain.Session
	isLoading bool
	hydrate   sync.Once
}

func NewStore(cache Cache, log zerolog.Logger) *Store {
	return &Store{cache: cache, log: log, isLoading: true}
}

// IsLoading reports whether the initial hydration has not completed yet.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Current returns the active session, if any.
func (s *Store) Current() (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	clone := *s.current
	return &clone, true
}

// Hydrate reads any persisted session from the cache and drives isLoading to
// false. It runs at most once per Store; later calls are no-ops. A cache read
// failure still ends the loading phase, leaving the client logged out.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrate.Do(func() {
		defer func() {
			s.mu.Lock()
			s.isLoading = false
			s.mu.Unlock()
		}()

		data, err := s.cache.Get(ctx)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.Warn().Err(err).Msg("session hydration failed")
			}
			return
		}

		var sess domain.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			s.log.Warn().Err(err).Msg("discarding unreadable persisted session")
			_ = s.cache.Remove(ctx)
			return
		}

		s.mu.Lock()
		s.current = &sess
		s.mu.Unlock()
	})
}

// Login replaces the current session and persists it. A second login simply
// overwrites the first; there are no merge semantics.
func (s *Store) Login(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &sess
	s.isLoading = false
	s.mu.Unlock()
	return nil
}

// Logout clears the session and removes the persisted copy.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.cache.Remove(ctx); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.isLoading = false
	s.mu.Unlock()
	return nil
}
