package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/parkspot/booking-front/internal/model"
)

// Store is the in-memory session registry.  Sessions expire after not
// being seen for the configured idle TTL; Sweep drops expired entries
// and is scheduled from main via cron.
type Store struct {
	mu   sync.RWMutex
	ttl  time.Duration
	byID map[string]*Session
	now  func() time.Time
}

// NewStore builds a store whose sessions idle out after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:  ttl,
		byID: make(map[string]*Session),
		now:  time.Now,
	}
}

// Create registers a new session for the user and returns it.
func (st *Store) Create(user model.User, upstreamToken string) *Session {
	s := newSession(uuid.NewString(), user, upstreamToken, st.now())
	st.mu.Lock()
	st.byID[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the live session with the given id, refreshing its idle
// timer.  Expired sessions are treated as absent and removed.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.byID[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := st.now()
	if now.Sub(s.seen()) > st.ttl {
		st.Delete(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Delete removes a session; missing ids are ignored.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.byID, id)
	st.mu.Unlock()
}

// Sweep drops every expired session and returns how many were removed.
func (st *Store) Sweep() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.byID {
		if now.Sub(s.seen()) > st.ttl {
			delete(st.byID, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live (possibly expired but unswept) sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}
