// utils/timeutil.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseISODate parses the leading YYYY-MM-DD of an ISO 8601 string.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(layoutDate) {
		s = s[:len(layoutDate)]
	}
	return time.Parse(layoutDate, s)
}

// NightsBetween returns max(1, end-start) in whole days. Missing or
// malformed dates degrade to a single night rather than failing.
func NightsBetween(start, end string) int {
	if start == "" || end == "" {
		return 1
	}
	d0, err0 := ParseISODate(start)
	d1, err1 := ParseISODate(end)
	if err0 != nil || err1 != nil {
		return 1
	}
	n := int(d1.Sub(d0).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// MinutesToClock renders minutes-since-midnight as "HH:MM" for logs and
// display fields.
func MinutesToClock(min int) string {
	if min < 0 {
		min = 0
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ClockToMinutes parses "HH:MM" into minutes since midnight.
func ClockToMinutes(s string) (int, bool) {
	var hh, mm int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hh, &mm); err != nil {
		return 0, false
	}
	if hh < 0 || hh > 24 || mm < 0 || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}
