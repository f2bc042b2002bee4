package model

// User holds the identity fields returned by the upstream login endpoint.
// The gateway keeps them on the session so screens can pre-fill the
// reservation and payment forms without another backend round trip.  The
// ID is normalised to a string because the backend reports it either as
// a number or a string depending on the endpoint.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
