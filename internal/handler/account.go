package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parkspot/booking-front/internal/config"
	"github.com/parkspot/booking-front/internal/middleware"
	"github.com/parkspot/booking-front/internal/repository"
	"github.com/parkspot/booking-front/internal/upstream"
)

// AccountHandler serves the my-page screen: reservations and vehicles
// proxied from the backend, plus the gateway's own confirmation mirror.
type AccountHandler struct {
	Cfg      config.Config
	Upstream Backend
	History  *repository.HistoryRepo // nil when the mirror is not configured
}

func NewAccountHandler(cfg config.Config, b Backend, hist *repository.HistoryRepo) *AccountHandler {
	return &AccountHandler{Cfg: cfg, Upstream: b, History: hist}
}

type addVehicleReq struct {
	PlateNumber string `json:"plate_number" validate:"required"`
	Model       string `json:"model"`
}

// Reservations lists the user's bookings, newest first, with the status
// already classified against the current time.
func (h *AccountHandler) Reservations(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	list, err := h.Upstream.Reservations(ctx, s.User.ID)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired upstream"})
		}
		log.Printf("account: reservations fetch failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "reservation fetch failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// Vehicles lists the user's registered vehicles.
func (h *AccountHandler) Vehicles(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	list, err := h.Upstream.Vehicles(ctx, s.User.ID)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired upstream"})
		}
		log.Printf("account: vehicles fetch failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "vehicle fetch failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": list})
}

// AddVehicle registers a new vehicle upstream and returns the created
// record.
func (h *AccountHandler) AddVehicle(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PlateNumber = strings.TrimSpace(req.PlateNumber)
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	v, err := h.Upstream.AddVehicle(ctx, s.User.ID, req.PlateNumber, req.Model)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired upstream"})
		}
		log.Printf("account: add vehicle failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "vehicle registration failed"})
	}
	return c.JSON(http.StatusCreated, v)
}

// Confirmations lists reservations this gateway confirmed, served from
// the local mirror.  Without a configured mirror the endpoint reports
// 503 rather than pretending the history is empty.
func (h *AccountHandler) Confirmations(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.History == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "confirmation history not configured"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.History.ListByUser(ctx, s.User.ID, 50)
	if err != nil {
		log.Printf("account: confirmation query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirmation query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"confirmations": list})
}
