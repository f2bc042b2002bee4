// Package session holds the per-login state of the booking front: the
// authenticated user, the upstream access token, one flow controller and
// the most recently derived seat layout.  The HTTP server is concurrent,
// so each session serialises access to its flow state with a mutex; the
// flow controller itself stays lock-free.
package session

import (
	"sync"
	"time"

	"github.com/parkspot/booking-front/internal/flow"
	"github.com/parkspot/booking-front/internal/layout"
	"github.com/parkspot/booking-front/internal/model"
)

// Session is one authenticated user's gateway state.
type Session struct {
	ID            string
	User          model.User
	UpstreamToken string
	CreatedAt     time.Time

	mu       sync.Mutex
	lastSeen time.Time
	flow     *flow.Controller

	// layoutGen/layoutKey implement the stale-fetch guard: every spaces
	// fetch bumps the generation, and only the response whose generation
	// and inputs still match at resolution time may store its layout.
	layoutGen    uint64
	layoutKey    string
	layoutSeats  []layout.Seat
	layoutFloors []string
}

func newSession(id string, user model.User, token string, now time.Time) *Session {
	return &Session{
		ID:            id,
		User:          user,
		UpstreamToken: token,
		CreatedAt:     now,
		lastSeen:      now,
		flow:          flow.New(),
	}
}

// WithFlow runs fn with exclusive access to the session's flow
// controller.  Handlers capture whatever state they need inside fn.
func (s *Session) WithFlow(fn func(*flow.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.flow)
}

// Draft returns a copy of the current booking draft.
func (s *Session) Draft() flow.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.Draft()
}

// BeginLayoutFetch registers a new spaces fetch for the given input key
// (lot id + window) and returns its generation.  Any fetch still in
// flight for an older generation is thereby superseded.
func (s *Session) BeginLayoutFetch(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layoutGen++
	s.layoutKey = key
	return s.layoutGen
}

// StoreLayout records a derived layout if, and only if, the fetch that
// produced it is still the latest and its inputs still match.  Returns
// whether the layout was stored; stale results are silently dropped.
func (s *Session) StoreLayout(gen uint64, key string, seats []layout.Seat, floors []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.layoutGen || key != s.layoutKey {
		return false
	}
	s.layoutSeats = seats
	s.layoutFloors = floors
	return true
}

// Layout returns the last stored seat layout, or empty slices when none
// has been stored yet.
func (s *Session) Layout() ([]layout.Seat, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layoutSeats, s.layoutFloors
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
