package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parkspot/booking-front/internal/config"
	"github.com/parkspot/booking-front/internal/flow"
	"github.com/parkspot/booking-front/internal/middleware"
	"github.com/parkspot/booking-front/internal/model"
	"github.com/parkspot/booking-front/internal/queue"
	queue_publisher "github.com/parkspot/booking-front/internal/service"
	"github.com/parkspot/booking-front/internal/upstream"
)

// BookingHandler drives the per-session booking flow: navigation, the
// date/time overlay, lot and seat selection, and payment.  All state
// lives in the session; the handler only translates HTTP to controller
// calls and reports the resulting flow state back.
type BookingHandler struct {
	Cfg      config.Config
	Upstream Backend
}

func NewBookingHandler(cfg config.Config, b Backend) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Upstream: b}
}

// ----- DTOs -----

type navigateReq struct {
	Target string `json:"target" validate:"required"`
}

type dateTimeReq struct {
	Date      string `json:"date" validate:"required"`       // "2006-01-02"
	StartTime string `json:"start_time" validate:"required"` // "HH:MM"
	EndTime   string `json:"end_time" validate:"required"`
}

type selectLotReq struct {
	ID             string         `json:"id" validate:"required"`
	Name           string         `json:"name" validate:"required"`
	Address        string         `json:"address"`
	AvailableSpots int            `json:"available_spots"`
	BasePrice      int            `json:"base_price"`
	Region         model.Region   `json:"region"`
	Location       model.Location `json:"location"`
}

type confirmSeatReq struct {
	Code string `json:"code" validate:"required"`
}

type paymentReq struct {
	PaymentMethod string `json:"payment_method" validate:"required"` // card | phone | transfer
	VehicleID     int64  `json:"vehicle_id" validate:"required"`
}

type draftView struct {
	Lot        *model.ParkingLot `json:"lot,omitempty"`
	Date       string            `json:"date,omitempty"`
	StartTime  string            `json:"start_time,omitempty"`
	EndTime    string            `json:"end_time,omitempty"`
	Seat       string            `json:"seat,omitempty"`
	TotalPrice int               `json:"total_price"`
	Complete   bool              `json:"complete"`
}

type flowStateResp struct {
	Screen      string    `json:"screen"`
	OverlayOpen bool      `json:"overlay_open"`
	Draft       draftView `json:"draft"`
}

func stateOf(f *flow.Controller) flowStateResp {
	d := f.Draft()
	dv := draftView{
		Lot:        d.Lot,
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		Seat:       d.Seat,
		TotalPrice: d.TotalPrice(),
		Complete:   d.Complete(),
	}
	if !d.Date.IsZero() {
		dv.Date = d.Date.Format("2006-01-02")
	}
	return flowStateResp{
		Screen:      string(f.Current()),
		OverlayOpen: f.OverlayOpen(),
		Draft:       dv,
	}
}

// State returns the session's current flow state.
func (h *BookingHandler) State(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) { resp = stateOf(f) })
	return c.JSON(http.StatusOK, resp)
}

// Navigate handles a navigation-menu intent.  Region search opens the
// date/time overlay instead of switching; screens not reachable from the
// menu leave the state untouched.  The resulting state is returned
// either way so the client can render without a second round trip.
func (h *BookingHandler) Navigate(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req navigateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	target, known := flow.ParseScreen(req.Target)
	if !known {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown screen"})
	}
	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) {
		f.RequestNavigate(target)
		resp = stateOf(f)
	})
	return c.JSON(http.StatusOK, resp)
}

// ConfirmDateTime submits the overlay.  With no overlay open the
// controller ignores the call and the unchanged state is returned.
func (h *BookingHandler) ConfirmDateTime(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req dateTimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	if !wholeHour(req.StartTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}
	if !wholeHour(req.EndTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time"})
	}
	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) {
		f.ConfirmDateTime(date, req.StartTime, req.EndTime)
		resp = stateOf(f)
	})
	return c.JSON(http.StatusOK, resp)
}

// CancelDateTime closes the overlay without touching the draft.
func (h *BookingHandler) CancelDateTime(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) {
		f.CancelDateTime()
		resp = stateOf(f)
	})
	return c.JSON(http.StatusOK, resp)
}

// SelectParkingLot stores the chosen lot in the draft and moves the
// session to seat selection.  The client posts back the lot exactly as
// it appeared in the search results.
func (h *BookingHandler) SelectParkingLot(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req selectLotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	lot := model.ParkingLot{
		ID:             req.ID,
		Name:           req.Name,
		Address:        req.Address,
		AvailableSpots: req.AvailableSpots,
		BasePrice:      req.BasePrice,
		Region:         req.Region,
		Location:       req.Location,
	}
	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) {
		f.SelectParkingLot(lot)
		resp = stateOf(f)
	})
	return c.JSON(http.StatusOK, resp)
}

// ConfirmSeat records the chosen space code.  Without a selected lot the
// controller ignores the call.
func (h *BookingHandler) ConfirmSeat(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req confirmSeatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) {
		f.ConfirmSeat(req.Code)
		resp = stateOf(f)
	})
	return c.JSON(http.StatusOK, resp)
}

// CompletePayment settles the drafted booking upstream, publishes the
// confirmation event and clears the draft.  An incomplete draft is a 409
// because the payment screen should never have been reachable.
func (h *BookingHandler) CompletePayment(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	method, ok := paymentMethodOf(req.PaymentMethod)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment method"})
	}

	draft := s.Draft()
	if !draft.Complete() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking draft incomplete"})
	}

	amount := draft.TotalPrice()
	start := upstream.IsoDateTime(draft.Date, draft.StartTime)
	end := upstream.IsoDateTime(draft.Date, draft.EndTime)

	// The settlement endpoint takes numeric ids; a non-numeric id must
	// never be sent as 0 and book against lot or user zero.
	lotID, err := strconv.ParseInt(draft.Lot.ID, 10, 64)
	if err != nil {
		log.Printf("booking: non-numeric lot id %q in draft", draft.Lot.ID)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "lot id not settleable"})
	}
	userID, err := strconv.ParseInt(s.User.ID, 10, 64)
	if err != nil {
		log.Printf("booking: non-numeric user id %q in session", s.User.ID)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "user id not settleable"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	err = h.Upstream.CreateReservation(ctx, s.UpstreamToken, upstream.ReservationRequest{
		UserID:        userID,
		ParkingLotID:  lotID,
		SeatCode:      draft.Seat,
		StartDateTime: start,
		EndDateTime:   end,
		PaymentAmount: amount,
		PaymentMethod: method,
		VehicleID:     req.VehicleID,
	})
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired upstream"})
		}
		log.Printf("booking: create reservation failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "reservation failed"})
	}

	ev := queue.ReservationConfirmedEvent{
		UserID:        s.User.ID,
		ParkingLotID:  draft.Lot.ID,
		LotName:       draft.Lot.Name,
		LotAddress:    draft.Lot.Address,
		SeatCode:      draft.Seat,
		StartDateTime: start,
		EndDateTime:   end,
		Amount:        amount,
		PaymentMethod: method,
		VehicleID:     req.VehicleID,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	// Fire and forget; a broker outage must not fail the confirmation.
	go func() { _ = queue_publisher.PublishReservationConfirmed(context.Background(), ev) }()

	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) {
		f.CompletePayment()
		resp = stateOf(f)
	})
	return c.JSON(http.StatusOK, echo.Map{
		"amount": amount,
		"state":  resp,
	})
}

// Reset discards the draft and overlay and returns the session home.
func (h *BookingHandler) Reset(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var resp flowStateResp
	s.WithFlow(func(f *flow.Controller) {
		f.Reset()
		resp = stateOf(f)
	})
	return c.JSON(http.StatusOK, resp)
}

// wholeHour reports whether t is a valid "HH:00" clock value.  The
// overlay offers whole hours only.
func wholeHour(t string) bool {
	parsed, err := time.Parse("15:04", t)
	return err == nil && parsed.Minute() == 0
}

// paymentMethodOf maps the client's method names onto the backend's
// enum.  Already-normalised values pass through.
func paymentMethodOf(m string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case "card":
		return "CARD", true
	case "phone", "mobile":
		return "MOBILE", true
	case "transfer", "account":
		return "ACCOUNT", true
	}
	return "", false
}
