package flow

// Screen enumerates the pages of the booking front.  Exactly one screen
// is current per session; seat-selection and payment are never entered
// through the navigation menu, only through SelectParkingLot and
// ConfirmSeat.
type Screen string

const (
	ScreenHome          Screen = "home"
	ScreenRegionSearch  Screen = "region-search"
	ScreenSeatSelection Screen = "seat-selection"
	ScreenPayment       Screen = "payment"
	ScreenMyPage        Screen = "my-page"
)

// ParseScreen maps a wire value onto a Screen.  Unknown values return
// false so handlers can reject them before touching the controller.
func ParseScreen(s string) (Screen, bool) {
	switch Screen(s) {
	case ScreenHome, ScreenRegionSearch, ScreenSeatSelection, ScreenPayment, ScreenMyPage:
		return Screen(s), true
	}
	return "", false
}

// menuReachable reports whether the screen may be switched to directly
// from the navigation menu.
func (s Screen) menuReachable() bool {
	return s == ScreenHome || s == ScreenMyPage
}
