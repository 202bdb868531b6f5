package series

import (
	"errors"
	"strconv"
	"strings"
)

// MaxValue bounds a cell in either direction. Values past it saturate so
// they stay exact as float64 on the wire and the axis math cannot overflow.
const MaxValue = 1 << 53

// ParseValue reads the leading integer of raw the way a browser number
// field hands it over: "12abc" -> 12, "3.9" -> 3, "-40" -> -40.
// Anything without leading digits is 0; huge numbers saturate at ±MaxValue.
func ParseValue(raw string) int {
	v, ok := leadingInt(raw)
	if !ok {
		return 0
	}
	return min(max(v, -MaxValue), MaxValue)
}

// ParseYearCount parses a year-count field; non-numeric input is 1.
func ParseYearCount(raw string) int {
	v, ok := leadingInt(raw)
	if !ok || v == 0 {
		return MinYears
	}
	return ClampYears(v)
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}
