package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date read from an upstream ShortDate (MM/DD/YYYY).
// Year keeps the upstream spelling so that String round-trips it untouched.
type Date struct {
	Year  int
	Month int
	Day   int

	yearText string
}

// String renders the date as YYYY-MM-DD. Month and day are zero padded,
// the year is written as the upstream sent it.
func (d Date) String() string {
	y := d.yearText
	if y == "" {
		y = strconv.Itoa(d.Year)
	}
	return fmt.Sprintf("%s-%02d-%02d", y, d.Month, d.Day)
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// NormalizeDate parses a MM/DD/YYYY string. It reports false when a component
// is missing or not a number, or when month is outside 1..12 or day outside
// 1..31. Month lengths and leap years are not checked.
func NormalizeDate(input string) (Date, bool) {
	m, d, y, ok := splitShortDate(input)
	if !ok {
		return Date{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return Date{}, false
	}
	parts := strings.Split(input, "/")
	return Date{Year: y, Month: m, Day: d, yearText: strings.TrimSpace(parts[2])}, true
}

// parseShortDate turns a ShortDate into a UTC midnight instant. Out of range
// components roll over the way time.Date does (02/30 becomes 03/01).
func parseShortDate(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	m, d, y, ok := splitShortDate(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

func splitShortDate(s string) (month, day, year int, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var vals [3]int
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return 0, 0, 0, false
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], true
}
