package model

// Vehicle is a car registered by the user on the upstream backend.  A
// vehicle must be attached to every reservation.
type Vehicle struct {
	ID          int64  `json:"id"`
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model,omitempty"`
}
