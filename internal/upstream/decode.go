package upstream

// decode.go holds the tolerant JSON types and raw payload shapes used to
// absorb the upstream backend's field-name variance.  Every logical field
// may arrive under several aliases and as either a string or a number, so
// raw structs use pointers (presence matters — an explicit 0 must win
// over a later alias) and coalescing helpers pick the first present one.

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// flexString decodes a JSON string or number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt decodes a JSON number or numeric string into an int.
// Unparsable values decode as 0 rather than failing the whole payload.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexInt(int(n))
	}
	return nil
}

// flexFloat decodes a JSON number or numeric string into a float64.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexFloat(n)
	}
	return nil
}

// flexBool decodes JSON truthiness: booleans, numbers (non-zero is true)
// and the strings "true"/"1".
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	switch s {
	case "true", "1":
		*f = true
	case "false", "0", "", "null":
		*f = false
	default:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			*f = n != 0
		}
	}
	return nil
}

func firstString(ptrs ...*flexString) string {
	for _, p := range ptrs {
		if p != nil {
			return string(*p)
		}
	}
	return ""
}

func firstPlain(ptrs ...*string) string {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return ""
}

func firstInt(ptrs ...*flexInt) int {
	for _, p := range ptrs {
		if p != nil {
			return int(*p)
		}
	}
	return 0
}

func firstFloat(ptrs ...*flexFloat) float64 {
	for _, p := range ptrs {
		if p != nil {
			return float64(*p)
		}
	}
	return 0
}

func boolOf(ptrs ...*flexBool) bool {
	for _, p := range ptrs {
		if p != nil {
			return bool(*p)
		}
	}
	return false
}

// parseRegionFromAddress splits an address into up to four
// whitespace-separated words: province, city, district, dong.  Used when
// the upstream omits explicit region fields.
func parseRegionFromAddress(address string) (province, city, district, dong string) {
	parts := strings.Fields(address)
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return get(0), get(1), get(2), get(3)
}

// timeLayouts are tried in order when parsing upstream timestamps.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseUpstreamTime parses a timestamp in any of the formats the backend
// has been seen to emit.  Returns the zero time when nothing matches.
func parseUpstreamTime(s string) time.Time {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
