// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when the payment step completes
// and the upstream backend accepts the reservation.  It carries enough
// information for downstream consumers to mirror, log or notify without
// calling the backend again.
type ReservationConfirmedEvent struct {
	UserID        string `json:"user_id"`
	ParkingLotID  string `json:"parking_lot_id"`
	LotName       string `json:"lot_name"`
	LotAddress    string `json:"lot_address"`
	SeatCode      string `json:"seat_code"`
	StartDateTime string `json:"start_datetime"`
	EndDateTime   string `json:"end_datetime"`
	Amount        int    `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	VehicleID     int64  `json:"vehicle_id"`
	ConfirmedAt   string `json:"confirmed_at"`
}
