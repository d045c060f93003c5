package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	cal "github.com/rickar/cal/v2"
)

// dateKey is an internal comparable key for holiday lookups. Times are
// reduced to their calendar date; the engine never reasons below day
// granularity except for clock windows.
type dateKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{year: y, month: m, day: d}
}

// midnight truncates t to the start of its calendar day, keeping the
// location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SnapshotInput carries everything a Snapshot is built from. The
// caller (normally Engine) reads holidays, hours and rules once and
// hands them over; the resulting Snapshot never touches the sources
// again.
type SnapshotInput struct {
	Country  string
	Hours    []DayHours
	Holidays []Holiday
	Rules    DeliveryRules
	Scope    Scope
}

// Snapshot is an immutable calendar view. All evaluation methods hang
// off it; none of them mutate it, so a Snapshot is safe for concurrent
// use and deterministic for identical inputs.
type Snapshot struct {
	Rules DeliveryRules
	Scope Scope

	hours    [7]DayHours // indexed by time.Weekday
	hasHours [7]bool

	company map[dateKey][]Holiday
	federal *cal.BusinessCalendar

	warnings []string
}

// NewSnapshot builds a Snapshot, validating the hours table and
// indexing observed, in-scope holidays.
//
// Configuration problems never fail the build: a missing or invalid
// weekday entry is treated as closed (fail closed) and reported via
// Warnings.
func NewSnapshot(in SnapshotInput) *Snapshot {
	s := &Snapshot{
		Rules:   in.Rules,
		Scope:   in.Scope,
		company: make(map[dateKey][]Holiday),
	}

	fed, known := FederalCalendar(in.Country)
	s.federal = fed
	if !known {
		s.warn(fmt.Sprintf("unknown country %q: no jurisdiction holidays loaded", in.Country))
	}

	seen := [7]bool{}
	for _, dh := range in.Hours {
		wd := dh.Weekday
		if wd < time.Sunday || wd > time.Saturday {
			s.warn(fmt.Sprintf("business hours entry with invalid weekday %d dropped", int(wd)))
			continue
		}
		if seen[wd] {
			s.warn(fmt.Sprintf("duplicate business hours entry for %s dropped", strings.ToLower(wd.String())))
			continue
		}
		if err := dh.valid(); err != nil {
			s.warn("business hours entry invalid, weekday treated as closed: " + err.Error())
			dh.Open = false
		}
		seen[wd] = true
		s.hours[wd] = dh
		s.hasHours[wd] = true
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if !seen[wd] {
			s.warn(fmt.Sprintf("business hours table has no entry for %s, treated as closed", strings.ToLower(wd.String())))
		}
	}

	for _, h := range in.Holidays {
		if !h.Observed || h.Date.IsZero() {
			continue
		}
		if !h.appliesTo(in.Scope) {
			continue
		}
		h.Date = midnight(h.Date)
		k := keyOf(h.Date)
		s.company[k] = append(s.company[k], h)
	}

	return s
}

func (s *Snapshot) warn(msg string) { s.warnings = append(s.warnings, msg) }

// Warnings lists configuration problems found at build time.
func (s *Snapshot) Warnings() []string { return s.warnings }

// dayHours returns the table entry for the date's weekday.
func (s *Snapshot) dayHours(t time.Time) (DayHours, bool) {
	wd := t.Weekday()
	if !s.hasHours[wd] {
		return DayHours{}, false
	}
	return s.hours[wd], true
}

// companyHolidays returns the observed, in-scope holidays on the date.
func (s *Snapshot) companyHolidays(t time.Time) []Holiday {
	return s.company[keyOf(t)]
}

// HolidaysInRange lists all holidays (jurisdiction + organization) in
// [start, end] inclusive, sorted by date then name.
func (s *Snapshot) HolidaysInRange(start, end time.Time) []Holiday {
	if end.Before(start) {
		return nil
	}
	start = midnight(start)
	end = midnight(end)

	out := s.FederalHolidaysInRange(start, end)
	for _, hs := range s.company {
		for _, h := range hs {
			if h.Date.Before(start) || h.Date.After(end) {
				continue
			}
			out = append(out, h)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
