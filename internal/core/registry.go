package core

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/ArtworkTable/internal/metrics"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// DefaultSessionTTL is how long an idle session is kept when no TTL is given.
const DefaultSessionTTL = 30 * time.Minute

// Session pairs one browser with its table and pending notices.
type Session struct {
	ID        string
	Table     *Table
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	notices  []Notice
}

// Push queues a notice for the next render.
func (s *Session) Push(n Notice) {
	if n.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

// TakeNotices returns and clears the queued notices.
func (s *Session) TakeNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Sessions is the in-memory registry of table sessions.
type Sessions struct {
	newTable func(id string) *Table
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions creates a registry. newTable builds the table for a new
// session ID. ttl <= 0 uses DefaultSessionTTL.
func NewSessions(newTable func(id string) *Table, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		newTable: newTable,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session with a fresh UUID.
func (s *Sessions) Create() *Session {
	id := uuid.NewString()
	now := s.now()
	sess := &Session{
		ID:        id,
		Table:     s.newTable(id),
		CreatedAt: now,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return sess
}

// Get returns the session for id and marks it as used.
// Returns ErrSessionNotFound if id is unknown.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch(s.now())
	return sess, nil
}

// GetOrCreate returns the session for id, or a new session when id is empty
// or unknown. created reports whether a new session was made.
func (s *Sessions) GetOrCreate(id string) (sess *Session, created bool) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}
	return s.Create(), true
}

// Len returns the number of registered sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// IDs returns all session IDs, sorted for consistent ordering.
func (s *Sessions) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return removed
}
