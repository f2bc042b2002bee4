package flow

import (
	"strconv"
	"strings"
	"time"

	"github.com/parkspot/booking-front/internal/model"
)

// Draft is the in-progress booking threaded through the flow.  Fields are
// filled in as the user advances: date and time window first (or defaulted
// when a lot is picked straight from my-page), then the lot, then the
// seat.  A nil Lot means no lot has been chosen yet; empty strings and a
// zero Date mean unset.
type Draft struct {
	Lot       *model.ParkingLot
	Date      time.Time
	StartTime string // "HH:MM", 24h
	EndTime   string
	Seat      string // space code, empty until ConfirmSeat
}

// TimeWindowSet reports whether the date and both times have been chosen.
func (d Draft) TimeWindowSet() bool {
	return !d.Date.IsZero() && d.StartTime != "" && d.EndTime != ""
}

// Complete reports whether the draft carries everything the payment
// screen needs: lot, time window and seat.
func (d Draft) Complete() bool {
	return d.Lot != nil && d.TimeWindowSet() && d.Seat != ""
}

// TotalPrice is the amount charged for the drafted window: the lot's base
// price per started hour.  A window of zero or negative length falls back
// to the bare base price.  Returns 0 when no lot is selected.
func (d Draft) TotalPrice() int {
	if d.Lot == nil {
		return 0
	}
	diff := minutesOf(d.EndTime) - minutesOf(d.StartTime)
	if diff <= 0 {
		return d.Lot.BasePrice
	}
	hours := (diff + 59) / 60
	return d.Lot.BasePrice * hours
}

// minutesOf converts "HH:MM" to minutes since midnight.  Unparsable
// parts count as zero, mirroring how the time window is displayed.
func minutesOf(t string) int {
	hh, mm := 0, 0
	if i := strings.IndexByte(t, ':'); i >= 0 {
		hh, _ = strconv.Atoi(t[:i])
		mm, _ = strconv.Atoi(t[i+1:])
	} else if t != "" {
		hh, _ = strconv.Atoi(t)
	}
	return hh*60 + mm
}
