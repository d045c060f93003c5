package calendar

import (
	"fmt"
	"strings"
	"time"
)

// HolidayType classifies a holiday record.
type HolidayType string

const (
	TypeFederal    HolidayType = "federal"
	TypeCompany    HolidayType = "company"
	TypeDepartment HolidayType = "department"
	TypeRegional   HolidayType = "regional"
	TypeFloating   HolidayType = "floating"
	TypeObservance HolidayType = "observance"
)

// ParseHolidayType validates a holiday type string.
func ParseHolidayType(s string) (HolidayType, error) {
	t := HolidayType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeFederal, TypeCompany, TypeDepartment, TypeRegional, TypeFloating, TypeObservance:
		return t, nil
	}
	return "", fmt.Errorf("unknown holiday type %q", s)
}

// Holiday is a single observed day on the organization calendar.
//
// Date carries a calendar day only (midnight, no meaningful time
// component). A record with Observed=false is ignored by all
// evaluation; clearing Observed is the logical delete.
type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Type        HolidayType
	Description string

	Observed        bool
	AffectsDelivery bool

	// Departments/Regions scope the holiday. Empty means org-wide.
	Departments []string
	Regions     []string

	CreatedAt time.Time
}

// appliesTo reports whether the holiday is in effect for the given
// caller scope. An unscoped holiday applies to everyone; a scoped one
// applies when the caller's department or region is listed.
func (h Holiday) appliesTo(sc Scope) bool {
	if len(h.Departments) == 0 && len(h.Regions) == 0 {
		return true
	}
	for _, d := range h.Departments {
		if strings.EqualFold(d, sc.Department) {
			return true
		}
	}
	for _, r := range h.Regions {
		if strings.EqualFold(r, sc.Region) {
			return true
		}
	}
	return false
}

// Scope identifies the caller for scoped holiday matching.
// The zero value means "org-wide" (only unscoped holidays match).
type Scope struct {
	Department string
	Region     string
}

// DayHours is one weekday's entry in the business hours table.
//
// Extended hours, when both ends are valid, must contain the normal
// window; NewSnapshot enforces that and fails closed otherwise.
type DayHours struct {
	Weekday time.Weekday
	Open    bool

	Start ClockTime
	End   ClockTime

	ExtendedStart ClockTime
	ExtendedEnd   ClockTime
}

// HasExtended reports whether the weekday has an extended-hours window.
func (d DayHours) HasExtended() bool {
	return d.ExtendedStart.Valid() && d.ExtendedEnd.Valid()
}

// valid checks the table invariants for an open day.
func (d DayHours) valid() error {
	if !d.Open {
		return nil
	}
	if !d.Start.Valid() || !d.End.Valid() {
		return fmt.Errorf("%s: open day needs start and end times", strings.ToLower(d.Weekday.String()))
	}
	if d.Start >= d.End {
		return fmt.Errorf("%s: start %s must be before end %s", strings.ToLower(d.Weekday.String()), d.Start, d.End)
	}
	if d.ExtendedStart.Valid() != d.ExtendedEnd.Valid() {
		return fmt.Errorf("%s: extended window needs both ends", strings.ToLower(d.Weekday.String()))
	}
	if d.HasExtended() {
		if d.ExtendedStart > d.Start || d.ExtendedEnd < d.End {
			return fmt.Errorf("%s: extended window must contain %s-%s", strings.ToLower(d.Weekday.String()), d.Start, d.End)
		}
	}
	return nil
}

// DeliveryRules is the process-wide delivery policy configuration.
type DeliveryRules struct {
	AllowWeekend      bool
	AllowHoliday      bool
	EmergencyOverride bool
	Policy            Policy

	// MaxWindowDays bounds every forward business-day search.
	// Zero means the default of 30.
	MaxWindowDays int
}

const defaultMaxWindowDays = 30

func (r DeliveryRules) maxWindow() int {
	if r.MaxWindowDays > 0 {
		return r.MaxWindowDays
	}
	return defaultMaxWindowDays
}

// WorkingDay is the evaluation of a single calendar date.
// It is derived, never persisted, and never cached across snapshot
// rebuilds.
type WorkingDay struct {
	Date          time.Time
	IsBusinessDay bool
	IsHoliday     bool
	HolidayNames  []string

	// Hours is the weekday's table entry, nil when the table has no
	// record for the weekday (fail closed).
	Hours *DayHours

	DeliveryAllowed        bool
	ExtendedHoursAvailable bool

	// NextBusinessDay is set when the date itself is not a business
	// day and a qualifying day exists within the search window.
	// Zero otherwise; callers must treat an absent value on a
	// non-business day as a policy failure.
	NextBusinessDay time.Time
}
