package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parkspot/booking-front/internal/flow"
	"github.com/parkspot/booking-front/internal/layout"
	"github.com/parkspot/booking-front/internal/middleware"
	"github.com/parkspot/booking-front/internal/model"
	"github.com/parkspot/booking-front/internal/upstream"
)

// Search lists parking lots for the region-search screen.  Region and
// keyword filters come from the query string; the availability window
// comes from the session's draft, defaulting to the next hour when the
// overlay was skipped (direct API use).
func (h *BookingHandler) Search(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	start, end := searchWindow(s.Draft(), time.Now())
	q := upstream.LotQuery{
		Start:    start,
		End:      end,
		Keyword:  c.QueryParam("q"),
		Province: c.QueryParam("province"),
		City:     c.QueryParam("city"),
		District: c.QueryParam("district"),
		Dong:     c.QueryParam("dong"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	lots, err := h.Upstream.SearchLots(ctx, q)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired upstream"})
		}
		log.Printf("lots: search failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "lot search failed"})
	}

	sortLots(lots, c.QueryParam("sort"))
	return c.JSON(http.StatusOK, echo.Map{"parking_lots": lots})
}

// Spaces fetches one lot's spaces for the drafted window and derives the
// seat layout.  Every call supersedes any fetch still in flight for this
// session; a response that lost the race is answered with 409 so the
// client discards it.
func (h *BookingHandler) Spaces(c echo.Context) error {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lotID := c.Param("id")
	if lotID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lot id required"})
	}

	start, end := searchWindow(s.Draft(), time.Now())
	key := lotID + "|" + start.Format("2006-01-02T15:04:05") + "|" + end.Format("2006-01-02T15:04:05")
	gen := s.BeginLayoutFetch(key)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.UpstreamTimeout)
	defer cancel()

	spaces, err := h.Upstream.Spaces(ctx, lotID, start, end)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired upstream"})
		}
		log.Printf("lots: spaces fetch failed for %s: %v", lotID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "space fetch failed"})
	}

	seats, floors := layout.Derive(spaces)
	if !s.StoreLayout(gen, key, seats, floors) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "superseded by a newer fetch"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seats":  seats,
		"floors": floors,
	})
}

// searchWindow resolves the availability window for upstream queries.
// An unset draft window falls back to the coming hour.
func searchWindow(d flow.Draft, now time.Time) (time.Time, time.Time) {
	if !d.TimeWindowSet() {
		return now, now.Add(time.Hour)
	}
	start := atClock(d.Date, d.StartTime)
	end := atClock(d.Date, d.EndTime)
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end
}

func atClock(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// sortLots orders search results in place.  Unknown keys leave the
// upstream order untouched.
func sortLots(lots []model.ParkingLot, key string) {
	switch key {
	case "name":
		sort.SliceStable(lots, func(i, j int) bool { return lots[i].Name < lots[j].Name })
	case "price":
		sort.SliceStable(lots, func(i, j int) bool { return lots[i].BasePrice < lots[j].BasePrice })
	case "spots":
		sort.SliceStable(lots, func(i, j int) bool { return lots[i].AvailableSpots > lots[j].AvailableSpots })
	}
}
