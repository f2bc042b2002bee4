package model

import "time"

// Reservation statuses as shown on the my-page screen.  Completed is
// derived client-side (usage window already over); cancelled comes from
// the upstream record itself.
const (
	ReservationUpcoming  = "upcoming"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// Reservation is one past or upcoming booking as listed by the upstream
// per-user reservations endpoint.  The lot is embedded with whatever
// fields the upstream happened to include; region and location are
// usually absent on this endpoint.
//
// Fields:
//  ID         – upstream reservation identifier, normalised to a string.
//  Lot        – the parking lot the reservation is for.
//  ReservedAt – when the reservation was placed.
//  UsageDate  – calendar date of use (start of the window).
//  StartTime  – "HH:MM" start of the usage window.
//  EndTime    – "HH:MM" end of the usage window.
//  SeatCode   – the reserved space code (e.g. "B2-A4").
//  Status     – one of the Reservation* constants above.
type Reservation struct {
	ID         string     `json:"id"`
	Lot        ParkingLot `json:"parking_lot"`
	ReservedAt time.Time  `json:"reserved_at"`
	UsageDate  time.Time  `json:"usage_date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	SeatCode   string     `json:"seat_code"`
	Status     string     `json:"status"`
}
