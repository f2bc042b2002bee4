// Package layout turns the flat space records returned by the upstream
// spaces endpoint into a grid-renderable seat list.  It is a best-effort
// view transform, not a validating parser: malformed records get the
// documented defaults and never abort the whole derivation.
package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Status classifies one space for rendering.
type Status string

const (
	StatusAvailable  Status = "AVAILABLE"  // reservable and free for the window
	StatusReserved   Status = "RESERVED"   // reservable but already taken
	StatusOnsite     Status = "ONSITE"     // only bookable by arriving in person
	StatusAccessible Status = "ACCESSIBLE" // restricted to accessible-permit holders
)

// Space is one raw record from the upstream spaces endpoint, already
// decoded.  Available is only meaningful when CanReserve is true.
type Space struct {
	Code       string
	Floor      int
	Type       string
	CanReserve bool
	Available  bool
}

// Seat is one derived, renderable parking space.  Row and Column are
// zero-based grid coordinates; Floor is the display label ("B2", "1F").
// Seats carry no identity beyond their code and are recomputed fresh on
// every fetch.
type Seat struct {
	Code   string `json:"code"`
	Status Status `json:"status"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Floor  string `json:"floor"`
}

// Derive maps the raw records onto seats plus the distinct floor labels
// present in the input, ordered from highest numeric floor to lowest
// ("3F", "1F", "B1", "B2").  The caller treats the first label as the
// default active floor.  Empty input yields empty output.
func Derive(spaces []Space) ([]Seat, []string) {
	seats := make([]Seat, 0, len(spaces))
	present := make(map[int]struct{})
	for i, sp := range spaces {
		code := sp.Code
		if code == "" {
			code = fmt.Sprintf("S-%d", i+1)
		}
		row, col := parseRowColumn(code)
		seats = append(seats, Seat{
			Code:   code,
			Status: statusOf(sp),
			Row:    row,
			Column: col,
			Floor:  FloorLabel(sp.Floor),
		})
		present[sp.Floor] = struct{}{}
	}

	floors := make([]int, 0, len(present))
	for f := range present {
		floors = append(floors, f)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(floors)))

	labels := make([]string, 0, len(floors))
	for _, f := range floors {
		labels = append(labels, FloorLabel(f))
	}
	return seats, labels
}

// statusOf applies the classification precedence: an accessible space
// type wins over everything, then onsite-only, then availability.
func statusOf(sp Space) Status {
	switch {
	case strings.Contains(strings.ToLower(sp.Type), "disabled"):
		return StatusAccessible
	case !sp.CanReserve:
		return StatusOnsite
	case sp.Available:
		return StatusAvailable
	default:
		return StatusReserved
	}
}

// FloorLabel renders a signed floor number as a display label: negative
// floors become basement labels ("B2"), zero and positive get an "F"
// suffix ("1F").
func FloorLabel(n int) string {
	if n < 0 {
		return fmt.Sprintf("B%d", -n)
	}
	return fmt.Sprintf("%dF", n)
}

// parseRowColumn derives zero-based grid coordinates from a space code
// such as "B2-A4": the last "-"-separated segment is the seat token, its
// leading letter A–Z selects the row, the rest is a 1-based seat number.
// Bare codes like "A4" work the same way.  Anything unparsable defaults
// to row or column 0.
func parseRowColumn(code string) (row, col int) {
	token := code
	if i := strings.LastIndex(code, "-"); i >= 0 {
		token = code[i+1:]
	}
	if token == "" {
		return 0, 0
	}
	if c := token[0]; c >= 'A' && c <= 'Z' {
		row = int(c - 'A')
	}
	n, err := strconv.Atoi(token[1:])
	if err != nil {
		return row, 0
	}
	col = n - 1
	if col < 0 {
		col = 0
	}
	return row, col
}
