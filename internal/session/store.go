// Package session keeps login sessions on the server.  A session maps an
// opaque id to a user id and expires after a fixed TTL.  Logging out
// deletes the id, which invalidates every cookie that carried it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for an unknown, expired or deleted session id.
var ErrNotFound = errors.New("session not found")

// Store is the server-side session storage.
type Store interface {
	Create(ctx context.Context, userID uint64) (string, error)
	Get(ctx context.Context, sid string) (uint64, error)
	Delete(ctx context.Context, sid string) error
}

func newID() string { return uuid.NewString() }

type memEntry struct {
	userID  uint64
	expires time.Time
}

// MemoryStore keeps sessions in process memory.  It is used when Redis is
// unavailable; sessions do not survive a restart.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]memEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, data: make(map[string]memEntry)}
}

func (s *MemoryStore) Create(_ context.Context, userID uint64) (string, error) {
	sid := newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sid] = memEntry{userID: userID, expires: s.now().Add(s.ttl)}
	return sid, nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[sid]
	if !ok {
		return 0, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.data, sid)
		return 0, ErrNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sid)
	return nil
}
