package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a time of day in minutes since midnight.
//
// The zero value is midnight; ClockNone marks "no time set" so optional
// windows (extended hours, preferred delivery time) can be told apart
// from 00:00.
type ClockTime int

// ClockNone marks an unset ClockTime.
const ClockNone ClockTime = -1

const minutesPerDay = 24 * 60

// ParseClock parses "HH:MM" (24-hour). An empty string returns ClockNone.
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClockNone, nil
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return ClockNone, fmt.Errorf("invalid clock time %q (want HH:MM)", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return ClockNone, fmt.Errorf("invalid clock time %q: hour out of range", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return ClockNone, fmt.Errorf("invalid clock time %q: minute out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

// MustClock is ParseClock for tests and fixtures; it panics on bad input.
func MustClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether c is a real time of day (not ClockNone, not out
// of range).
func (c ClockTime) Valid() bool { return c >= 0 && c < minutesPerDay }

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	if !c.Valid() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Clamp forces c into [lo, hi]. Invalid inputs are returned unchanged.
func (c ClockTime) Clamp(lo, hi ClockTime) ClockTime {
	if !c.Valid() || !lo.Valid() || !hi.Valid() {
		return c
	}
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}

// At places c on the calendar day of t, in t's location.
func (c ClockTime) At(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, t.Location())
}
