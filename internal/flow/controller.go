// Package flow implements the booking-flow state machine: which screen is
// current, the date/time overlay, and the booking draft being assembled.
// The controller is deliberately unable to fail — navigation that is not
// allowed and operations whose preconditions do not hold degrade to
// no-ops so that a misbehaving caller can never corrupt the draft.
package flow

import (
	"time"

	"github.com/parkspot/booking-front/internal/model"
)

// Controller owns one session's flow state.  All methods are synchronous
// and must be externally serialised per session (the session layer holds
// the lock); the controller itself performs no locking.
type Controller struct {
	current Screen
	// pending is the navigation target the date/time overlay was opened
	// for.  Empty means the overlay is closed.  Folding both into one
	// field makes "overlay open without a target" unrepresentable.
	pending Screen
	draft   Draft
	now     func() time.Time
}

// New returns a controller on the home screen with an empty draft.
func New() *Controller {
	return &Controller{current: ScreenHome, now: time.Now}
}

// Current returns the screen the session is on.
func (c *Controller) Current() Screen { return c.current }

// OverlayOpen reports whether the date/time overlay is showing.
func (c *Controller) OverlayOpen() bool { return c.pending != "" }

// Draft returns a copy of the booking draft.  The lot pointer is shared
// but lots are immutable once decoded, so callers may read it freely.
func (c *Controller) Draft() Draft { return c.draft }

// RequestNavigate handles a navigation-menu intent.  Region search is
// gated behind the date/time overlay: the target is remembered and the
// overlay opened instead of switching immediately.  Home and my-page
// switch right away.  Screens that are not menu-reachable are ignored.
func (c *Controller) RequestNavigate(target Screen) {
	if target == ScreenRegionSearch {
		c.pending = target
		return
	}
	if target.menuReachable() {
		c.current = target
	}
}

// ConfirmDateTime closes the overlay, writes the chosen window into the
// draft and switches to the pending target.  The lot and seat already in
// the draft are preserved: a returning user re-picking a window must not
// lose an in-progress lot selection.  Without a pending target (no prior
// RequestNavigate to region search) this is a no-op.
func (c *Controller) ConfirmDateTime(date time.Time, startTime, endTime string) {
	if c.pending == "" {
		return
	}
	c.draft.Date = date
	c.draft.StartTime = startTime
	c.draft.EndTime = endTime
	c.current = c.pending
	c.pending = ""
}

// CancelDateTime closes the overlay without touching the draft or the
// current screen.
func (c *Controller) CancelDateTime() {
	c.pending = ""
}

// SelectParkingLot stores the chosen lot and moves to seat selection.
// The time window is defaulted only when unset — a user arriving from
// region search has already picked one, a user coming from my-page
// "reserve again" has not.  An already-selected seat is carried over
// and will be overwritten at ConfirmSeat.
func (c *Controller) SelectParkingLot(lot model.ParkingLot) {
	c.draft.Lot = &lot
	if c.draft.Date.IsZero() {
		c.draft.Date = c.now()
	}
	if c.draft.StartTime == "" {
		c.draft.StartTime = "00:00"
	}
	if c.draft.EndTime == "" {
		c.draft.EndTime = "00:00"
	}
	c.current = ScreenSeatSelection
}

// ConfirmSeat records the chosen space code and moves to payment.  Seat
// selection is only reachable after SelectParkingLot, so a draft without
// a lot is a caller contract violation; it is ignored rather than
// crashing, and the current screen is retained.
func (c *Controller) ConfirmSeat(code string) {
	if c.draft.Lot == nil {
		return
	}
	c.draft.Seat = code
	c.current = ScreenPayment
}

// CompletePayment discards the draft and returns home.  Called after the
// upstream reservation has been settled.
func (c *Controller) CompletePayment() {
	c.draft = Draft{}
	c.current = ScreenHome
}

// Reset clears everything: draft, overlay and screen.  Invoked on logout
// so a login/logout cycle can never leak a prior session's draft.
func (c *Controller) Reset() {
	c.draft = Draft{}
	c.pending = ""
	c.current = ScreenHome
}
