package repository

import (
	"context"
	"database/sql"
	"time"
)

// ConfirmedBooking is the persistence model for one mirrored reservation
// confirmation.  Upstream identifiers are kept as strings because the
// backend has been observed to emit both numeric and string ids.
type ConfirmedBooking struct {
	ID            int64     // primary key of the confirmed_bookings row
	UserID        string    // upstream user id
	ParkingLotID  string    // upstream parking lot id
	LotName       string    // lot display name at confirmation time
	LotAddress    string    // lot address at confirmation time
	SeatCode      string    // reserved space code, e.g. "B2-A4"
	StartDateTime string    // ISO start of the usage window
	EndDateTime   string    // ISO end of the usage window
	Amount        int       // amount charged
	PaymentMethod string    // CARD, MOBILE or ACCOUNT
	VehicleID     int64     // vehicle the reservation was made for
	ConfirmedAt   time.Time // when the confirmation event was produced
}

// HistoryRepo provides data access to the confirmed_bookings table, the
// gateway's local mirror of reservations it confirmed.  The mirror is
// write-once: the queue consumer inserts, the my-page confirmations
// endpoint reads.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo returns a HistoryRepo bound to the provided database.
func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// EnsureSchema creates the confirmed_bookings table when it does not
// exist yet.  Called once at startup so a fresh database works without
// a separate migration step.
func (r *HistoryRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS confirmed_bookings (
            id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
            user_id         VARCHAR(64)  NOT NULL,
            parking_lot_id  VARCHAR(64)  NOT NULL,
            lot_name        VARCHAR(255) NOT NULL,
            lot_address     VARCHAR(255) NOT NULL,
            seat_code       VARCHAR(32)  NOT NULL,
            start_datetime  VARCHAR(32)  NOT NULL,
            end_datetime    VARCHAR(32)  NOT NULL,
            amount          INT          NOT NULL,
            payment_method  VARCHAR(16)  NOT NULL,
            vehicle_id      BIGINT       NOT NULL,
            confirmed_at    DATETIME     NOT NULL,
            PRIMARY KEY (id),
            KEY idx_confirmed_user (user_id, confirmed_at)
        ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`)
	return err
}

// Insert records one confirmed reservation.
func (r *HistoryRepo) Insert(ctx context.Context, b ConfirmedBooking) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO confirmed_bookings
            (user_id, parking_lot_id, lot_name, lot_address, seat_code,
             start_datetime, end_datetime, amount, payment_method, vehicle_id, confirmed_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.ParkingLotID, b.LotName, b.LotAddress, b.SeatCode,
		b.StartDateTime, b.EndDateTime, b.Amount, b.PaymentMethod, b.VehicleID,
		b.ConfirmedAt.UTC(),
	)
	return err
}

// ListByUser returns the newest confirmations for one user, capped at
// limit rows.
func (r *HistoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]ConfirmedBooking, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, parking_lot_id, lot_name, lot_address, seat_code,
               start_datetime, end_datetime, amount, payment_method, vehicle_id, confirmed_at
        FROM confirmed_bookings
        WHERE user_id = ?
        ORDER BY confirmed_at DESC, id DESC
        LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ConfirmedBooking, 0, limit)
	for rows.Next() {
		var b ConfirmedBooking
		if err := rows.Scan(&b.ID, &b.UserID, &b.ParkingLotID, &b.LotName, &b.LotAddress,
			&b.SeatCode, &b.StartDateTime, &b.EndDateTime, &b.Amount, &b.PaymentMethod,
			&b.VehicleID, &b.ConfirmedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
