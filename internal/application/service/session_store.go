package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/billing"
	"github.com/sangkips/billing-api/pkg/apperror"
)

// SessionStore keeps one billing session per terminal in memory. Each session
// has its own lock so two requests never mutate the same cart at once.
type SessionStore struct {
	sessions    map[uuid.UUID]*sessionEntry
	mu          sync.Mutex
	ttl         time.Duration
	cleanupTick time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *billing.Session
	lastSeen time.Time
}

// NewSessionStore creates a store that evicts sessions idle for longer than
// ttl. A non-positive ttl keeps sessions until they are deleted.
func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		sessions: make(map[uuid.UUID]*sessionEntry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		s.cleanupTick = ttl / 4
		if s.cleanupTick < time.Second {
			s.cleanupTick = time.Second
		}
		go s.cleanupLoop()
	}
	return s
}

// Create starts a new empty session
func (s *SessionStore) Create() *billing.Session {
	sess := billing.NewSession()
	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{session: sess, lastSeen: time.Now()}
	s.mu.Unlock()
	return sess
}

// With runs fn on the session while holding its lock
func (s *SessionStore) With(id uuid.UUID, fn func(*billing.Session) error) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok {
		entry.lastSeen = time.Now()
	}
	s.mu.Unlock()

	if !ok {
		return apperror.NewNotFoundError("Session")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Delete drops a session. It reports whether the session existed.
func (s *SessionStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the cleanup goroutine
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictIdle(time.Now())
		case <-s.stop:
			return
		}
	}
}

func (s *SessionStore) evictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
