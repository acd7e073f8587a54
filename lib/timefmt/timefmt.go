// Package timefmt formats dates for display in templates.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for input not shaped MM/DD/YYYY.
var ErrInvalidDate = errors.New("timefmt: invalid date")

// Date formats t as MM/DD/YYYY.
func Date(t time.Time) string {
	return t.Format("01/02/2006")
}

// ISODate formats t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ISOTime formats t as HH:MM (24 hour).
func ISOTime(t time.Time) string {
	return t.Format("15:04")
}

// ISODateTime formats t as YYYY-MM-DDTHH:MM, the value format of
// datetime-local inputs.
func ISODateTime(t time.Time) string {
	return ISODate(t) + "T" + ISOTime(t)
}

// ParseDate parses MM/DD/YYYY in loc (time.Local when nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		n[i] = v
	}
	month, day, year := n[0], n[1], n[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

type unit struct {
	singular, plural string
	size             time.Duration
}

const day = 24 * time.Hour

var units = []unit{
	{"year", "years", 360 * day},
	{"month", "months", 30 * day},
	{"week", "weeks", 7 * day},
	{"day", "days", day},
	{"hour", "hours", time.Hour},
	{"minute", "minutes", time.Minute},
	{"second", "seconds", time.Second},
}

// Ago describes t relative to now in words: "3 days ago", "1 hour from
// now", or "just now" within a second.
func Ago(t, now time.Time) string {
	diff := t.Sub(now)
	suffix := "ago"
	if diff > 0 {
		suffix = "from now"
	}
	if diff < 0 {
		diff = -diff
	}

	for _, u := range units {
		if diff > u.size {
			n := int64(diff / u.size)
			name := u.plural
			if n == 1 {
				name = u.singular
			}
			return fmt.Sprintf("%d %s %s", n, name, suffix)
		}
	}
	return "just now"
}
