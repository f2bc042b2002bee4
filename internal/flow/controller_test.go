package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/booking-front/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

func newTestController() *Controller {
	c := New()
	c.now = fixedNow
	return c
}

var testLot = model.ParkingLot{ID: "11", Name: "Station Lot", BasePrice: 1500}

func TestNavigateRegionSearchOpensOverlay(t *testing.T) {
	c := newTestController()
	c.RequestNavigate(ScreenRegionSearch)

	assert.Equal(t, ScreenHome, c.Current(), "screen must not switch before the window is confirmed")
	assert.True(t, c.OverlayOpen())
}

func TestConfirmDateTimeSwitchesToPendingTarget(t *testing.T) {
	c := newTestController()
	c.RequestNavigate(ScreenRegionSearch)
	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	c.ConfirmDateTime(date, "09:00", "11:00")

	assert.Equal(t, ScreenRegionSearch, c.Current())
	assert.False(t, c.OverlayOpen())
	d := c.Draft()
	assert.Equal(t, date, d.Date)
	assert.Equal(t, "09:00", d.StartTime)
	assert.Equal(t, "11:00", d.EndTime)
}

func TestConfirmDateTimeWithoutOverlayIsNoop(t *testing.T) {
	c := newTestController()
	c.ConfirmDateTime(fixedNow(), "09:00", "11:00")

	assert.Equal(t, ScreenHome, c.Current())
	assert.False(t, c.Draft().TimeWindowSet())
}

func TestCancelDateTimeKeepsDraftAndScreen(t *testing.T) {
	c := newTestController()
	c.RequestNavigate(ScreenRegionSearch)
	c.CancelDateTime()

	assert.Equal(t, ScreenHome, c.Current())
	assert.False(t, c.OverlayOpen())
	assert.False(t, c.Draft().TimeWindowSet())
}

func TestNavigateMenuScreens(t *testing.T) {
	c := newTestController()
	c.RequestNavigate(ScreenMyPage)
	assert.Equal(t, ScreenMyPage, c.Current())

	c.RequestNavigate(ScreenHome)
	assert.Equal(t, ScreenHome, c.Current())
}

func TestNavigateToFlowInternalScreensIgnored(t *testing.T) {
	c := newTestController()
	c.RequestNavigate(ScreenSeatSelection)
	assert.Equal(t, ScreenHome, c.Current())

	c.RequestNavigate(ScreenPayment)
	assert.Equal(t, ScreenHome, c.Current())
}

func TestSelectParkingLotDefaultsWindowOnlyWhenUnset(t *testing.T) {
	c := newTestController()
	c.SelectParkingLot(testLot)

	d := c.Draft()
	require.NotNil(t, d.Lot)
	assert.Equal(t, fixedNow(), d.Date)
	assert.Equal(t, "00:00", d.StartTime)
	assert.Equal(t, "00:00", d.EndTime)
	assert.Equal(t, ScreenSeatSelection, c.Current())
}

func TestSelectParkingLotPreservesConfirmedWindow(t *testing.T) {
	c := newTestController()
	c.RequestNavigate(ScreenRegionSearch)
	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	c.ConfirmDateTime(date, "09:00", "11:00")
	c.SelectParkingLot(testLot)

	d := c.Draft()
	assert.Equal(t, date, d.Date)
	assert.Equal(t, "09:00", d.StartTime)
	assert.Equal(t, "11:00", d.EndTime)
}

func TestConfirmDateTimePreservesLotAndSeat(t *testing.T) {
	c := newTestController()
	c.SelectParkingLot(testLot)
	c.ConfirmSeat("B1-A2")

	c.RequestNavigate(ScreenRegionSearch)
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	c.ConfirmDateTime(date, "13:00", "15:00")

	d := c.Draft()
	require.NotNil(t, d.Lot)
	assert.Equal(t, "11", d.Lot.ID, "re-picking a window merges into the draft, it does not replace it")
	assert.Equal(t, "B1-A2", d.Seat)
	assert.Equal(t, date, d.Date)
	assert.Equal(t, "13:00", d.StartTime)
	assert.Equal(t, "15:00", d.EndTime)
}

func TestSelectParkingLotCarriesPriorSeat(t *testing.T) {
	c := newTestController()
	c.SelectParkingLot(testLot)
	c.ConfirmSeat("B1-A2")
	c.SelectParkingLot(model.ParkingLot{ID: "12", Name: "Other Lot"})

	d := c.Draft()
	assert.Equal(t, "B1-A2", d.Seat, "re-selecting a lot merges into the draft, it does not replace it")
	assert.Equal(t, "12", d.Lot.ID)
}

func TestConfirmSeatWithoutLotIgnored(t *testing.T) {
	c := newTestController()
	c.ConfirmSeat("B1-A2")

	assert.Equal(t, ScreenHome, c.Current())
	assert.Empty(t, c.Draft().Seat)
}

func TestCompletePaymentClearsDraftAndGoesHome(t *testing.T) {
	c := newTestController()
	c.SelectParkingLot(testLot)
	c.ConfirmSeat("B1-A2")
	c.CompletePayment()

	assert.Equal(t, ScreenHome, c.Current())
	d := c.Draft()
	assert.Nil(t, d.Lot)
	assert.Empty(t, d.Seat)
	assert.True(t, d.Date.IsZero())
}

func TestResetClearsOverlayDraftAndScreen(t *testing.T) {
	c := newTestController()
	c.RequestNavigate(ScreenMyPage)
	c.SelectParkingLot(testLot)
	c.RequestNavigate(ScreenRegionSearch)
	c.Reset()

	assert.Equal(t, ScreenHome, c.Current())
	assert.False(t, c.OverlayOpen())
	assert.Nil(t, c.Draft().Lot)
}

func TestTotalPriceChargesPerStartedHour(t *testing.T) {
	d := Draft{Lot: &testLot, Date: fixedNow(), StartTime: "09:00", EndTime: "10:30"}
	assert.Equal(t, 3000, d.TotalPrice(), "90 minutes round up to two hours")

	d.EndTime = "10:00"
	assert.Equal(t, 1500, d.TotalPrice())
}

func TestTotalPriceFallsBackOnEmptyWindow(t *testing.T) {
	d := Draft{Lot: &testLot, StartTime: "00:00", EndTime: "00:00"}
	assert.Equal(t, 1500, d.TotalPrice())

	d.StartTime, d.EndTime = "11:00", "09:00"
	assert.Equal(t, 1500, d.TotalPrice(), "inverted windows charge the bare base price")
}

func TestTotalPriceWithoutLot(t *testing.T) {
	var d Draft
	assert.Zero(t, d.TotalPrice())
}

func TestParseScreen(t *testing.T) {
	for _, name := range []string{"home", "region-search", "seat-selection", "payment", "my-page"} {
		s, ok := ParseScreen(name)
		assert.True(t, ok, name)
		assert.Equal(t, Screen(name), s)
	}
	_, ok := ParseScreen("checkout")
	assert.False(t, ok)
}
