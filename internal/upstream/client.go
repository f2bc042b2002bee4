// Package upstream is the HTTP client for the remote parking backend.
// The backend owns all business logic — availability, pricing, seat
// locking, settlement — and the gateway only ever talks to it through
// the JSON endpoints wrapped here.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/parkspot/booking-front/internal/layout"
	"github.com/parkspot/booking-front/internal/model"
)

// ErrUnauthorized is returned when the backend rejects the credentials
// or the forwarded access token.
var ErrUnauthorized = errors.New("upstream rejected credentials")

// Client wraps the backend base URL with a timeout-bounded http.Client.
type Client struct {
	base string
	http *http.Client
}

// New builds a client for the given base URL (scheme://host[:port],
// no trailing slash required).
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// LoginResult carries what the gateway needs from a successful login.
type LoginResult struct {
	AccessToken string
	User        model.User
}

// Login exchanges credentials for the backend's access token and the
// user's identity fields.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	body, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, payload, "")
	if err != nil {
		return LoginResult{}, err
	}
	var envelope struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}
	user, err := decodeUserPayload(body)
	if err != nil {
		return LoginResult{}, fmt.Errorf("decode login user: %w", err)
	}
	if user.Email == "" {
		user.Email = email
	}
	return LoginResult{AccessToken: envelope.AccessToken, User: user}, nil
}

// LotQuery selects the lot search parameters.  Empty region fields are
// omitted; when any region field is set the region endpoint is used
// instead of the keyword search endpoint.
type LotQuery struct {
	Start    time.Time
	End      time.Time
	Keyword  string
	Province string
	City     string
	District string
	Dong     string
}

func (q LotQuery) hasRegionFilter() bool {
	return q.Province != "" || q.City != "" || q.District != "" || q.Dong != ""
}

// SearchLots queries the backend for parking lots matching q.
func (c *Client) SearchLots(ctx context.Context, q LotQuery) ([]model.ParkingLot, error) {
	params := url.Values{}
	params.Set("start", q.Start.Format("2006-01-02T15:04:05"))
	params.Set("end", q.End.Format("2006-01-02T15:04:05"))
	for k, v := range map[string]string{
		"province": q.Province,
		"city":     q.City,
		"district": q.District,
		"dong":     q.Dong,
		"q":        strings.TrimSpace(q.Keyword),
	} {
		if v != "" {
			params.Set(k, v)
		}
	}
	endpoint := "/api/parkinglots/search"
	if q.hasRegionFilter() {
		endpoint = "/api/parkinglots/region"
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, params, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawLot
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("decode lot list: %w", err)
	}
	lots := make([]model.ParkingLot, 0, len(raws))
	for i, r := range raws {
		lots = append(lots, r.toLot(i))
	}
	return lots, nil
}

// Spaces fetches the raw space records of one lot for a usage window.
func (c *Client) Spaces(ctx context.Context, lotID string, start, end time.Time) ([]layout.Space, error) {
	params := url.Values{}
	params.Set("start", start.Format("2006-01-02T15:04:05"))
	params.Set("end", end.Format("2006-01-02T15:04:05"))

	body, err := c.do(ctx, http.MethodGet, "/api/parkinglots/"+url.PathEscape(lotID)+"/spaces", params, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawSpace
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("decode space list: %w", err)
	}
	spaces := make([]layout.Space, 0, len(raws))
	for _, r := range raws {
		spaces = append(spaces, r.toSpace())
	}
	return spaces, nil
}

// Reservations lists the user's reservations, normalised and classified
// against the current time.
func (c *Client) Reservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/reservations", nil, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawReservation
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("decode reservation list: %w", err)
	}
	now := time.Now()
	out := make([]model.Reservation, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.toReservation(now))
	}
	return out, nil
}

// Vehicles lists the user's registered vehicles.
func (c *Client) Vehicles(ctx context.Context, userID string) ([]model.Vehicle, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/vehicals", nil, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawVehicle
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("decode vehicle list: %w", err)
	}
	out := make([]model.Vehicle, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.toVehicle())
	}
	return out, nil
}

// AddVehicle registers a vehicle for the user and returns the created
// record.
func (c *Client) AddVehicle(ctx context.Context, userID, plateNumber, modelName string) (model.Vehicle, error) {
	payload := map[string]string{"carNumber": plateNumber}
	if modelName != "" {
		payload["model"] = modelName
	}
	body, err := c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/vehicals", nil, payload, "")
	if err != nil {
		return model.Vehicle{}, err
	}
	var raw rawVehicle
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.Vehicle{}, fmt.Errorf("decode created vehicle: %w", err)
	}
	v := raw.toVehicle()
	if v.PlateNumber == "" {
		v.PlateNumber = plateNumber
	}
	return v, nil
}

// ReservationRequest is the creation payload for POST /api/reservations.
// Field names are fixed by the backend contract.
type ReservationRequest struct {
	UserID        int64  `json:"userId"`
	ParkingLotID  int64  `json:"parkingLotId"`
	SeatCode      string `json:"seatCode"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
	PaymentAmount int    `json:"paymentAmount"`
	PaymentMethod string `json:"paymentMethod"` // CARD | MOBILE | ACCOUNT
	VehicleID     int64  `json:"vehicalId"`     // backend spells it this way
}

// CreateReservation settles the booking on the backend.  token is the
// upstream access token obtained at login.
func (c *Client) CreateReservation(ctx context.Context, token string, req ReservationRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/api/reservations", nil, req, token)
	return err
}

// IsoDateTime combines a calendar date with an "HH:MM" clock time into
// the backend's timestamp format.  Unparsable time parts count as zero.
func IsoDateTime(date time.Time, hhmm string) string {
	hh, mm := 0, 0
	if i := strings.IndexByte(hhmm, ':'); i >= 0 {
		hh, _ = strconv.Atoi(hhmm[:i])
		mm, _ = strconv.Atoi(hhmm[i+1:])
	}
	combined := time.Date(date.Year(), date.Month(), date.Day(), hh, mm, 0, 0, date.Location())
	return combined.Format("2006-01-02T15:04:05")
}

// do performs one request and returns the response body.  Non-2xx
// statuses become errors; 401/403 map to ErrUnauthorized so handlers can
// distinguish credential problems from backend outages.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload any, token string) ([]byte, error) {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}
	return body, nil
}
