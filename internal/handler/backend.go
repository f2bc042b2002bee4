package handler

import (
	"context"
	"time"

	"github.com/parkspot/booking-front/internal/layout"
	"github.com/parkspot/booking-front/internal/model"
	"github.com/parkspot/booking-front/internal/upstream"
)

// Backend is the slice of the parking backend the handlers depend on.
// *upstream.Client satisfies it; tests substitute a stub.
type Backend interface {
	Login(ctx context.Context, email, password string) (upstream.LoginResult, error)
	SearchLots(ctx context.Context, q upstream.LotQuery) ([]model.ParkingLot, error)
	Spaces(ctx context.Context, lotID string, start, end time.Time) ([]layout.Space, error)
	Reservations(ctx context.Context, userID string) ([]model.Reservation, error)
	Vehicles(ctx context.Context, userID string) ([]model.Vehicle, error)
	AddVehicle(ctx context.Context, userID, plateNumber, modelName string) (model.Vehicle, error)
	CreateReservation(ctx context.Context, token string, req upstream.ReservationRequest) error
}
