package revocation

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID    string
	expiresAt time.Time
}

// InMemoryStore is a thread-safe in-memory implementation of Store.
// Entries expire lazily on access. Used for tests and single-process
// deployments without Redis.
type InMemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	nowFunc func() time.Time
}

type InMemoryOption func(*InMemoryStore)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) InMemoryOption {
	return func(s *InMemoryStore) {
		s.nowFunc = now
	}
}

func NewInMemoryStore(options ...InMemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		entries: make(map[string]entry),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || s.expired(e) {
		delete(s.entries, sessionID)
		return "", ErrNotFound
	}
	return e.userID, nil
}

func (s *InMemoryStore) SetWithTTL(_ context.Context, sessionID, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = entry{
		userID:    userID,
		expiresAt: s.nowFunc().Add(ttl),
	}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// CheckAndDelete removes and returns the entry under a single lock, so
// concurrent rotations of the same session cannot both observe it.
func (s *InMemoryStore) CheckAndDelete(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || s.expired(e) {
		delete(s.entries, sessionID)
		return "", ErrNotFound
	}
	delete(s.entries, sessionID)
	return e.userID, nil
}

func (s *InMemoryStore) expired(e entry) bool {
	return !e.expiresAt.After(s.nowFunc())
}
