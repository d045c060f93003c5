package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestEvaluateOpenWeekday(t *testing.T) {
	t.Parallel()

	s := orgSnapshot(weekdayHours(false), nil, DeliveryRules{})
	wd := s.Evaluate(day(2025, time.July, 2)) // Wednesday

	if !wd.IsBusinessDay {
		t.Fatal("expected a business day")
	}
	if !wd.DeliveryAllowed {
		t.Error("expected delivery allowed")
	}
	if wd.IsHoliday {
		t.Error("expected no holiday")
	}
	if wd.Hours == nil || wd.Hours.Start != MustClock("08:00") || wd.Hours.End != MustClock("18:00") {
		t.Errorf("unexpected hours: %+v", wd.Hours)
	}
	if !wd.NextBusinessDay.IsZero() {
		t.Errorf("business day should not carry a next-day hint, got %v", wd.NextBusinessDay)
	}
}

func TestEvaluateWeekend(t *testing.T) {
	t.Parallel()

	sat := day(2025, time.July, 5)

	t.Run("blocked by default", func(t *testing.T) {
		t.Parallel()
		s := orgSnapshot(weekdayHours(false), nil, DeliveryRules{})
		wd := s.Evaluate(sat)
		if wd.IsBusinessDay {
			t.Error("Saturday must not be a business day")
		}
		if wd.DeliveryAllowed {
			t.Error("weekend delivery must be blocked without the allowance")
		}
		if want := day(2025, time.July, 7); !wd.NextBusinessDay.Equal(want) {
			t.Errorf("NextBusinessDay = %v, want %v", wd.NextBusinessDay, want)
		}
	})

	t.Run("allow_weekend permits delivery", func(t *testing.T) {
		t.Parallel()
		s := orgSnapshot(weekdayHours(false), nil, DeliveryRules{AllowWeekend: true})
		wd := s.Evaluate(sat)
		if wd.IsBusinessDay {
			t.Error("the allowance must not turn Saturday into a business day")
		}
		if !wd.DeliveryAllowed {
			t.Error("expected weekend delivery with the allowance")
		}
	})
}

func TestEvaluateCompanyHoliday(t *testing.T) {
	t.Parallel()

	hol := Holiday{
		ID:              "h1",
		Name:            "Founders Day",
		Date:            day(2025, time.July, 2),
		Type:            TypeCompany,
		Observed:        true,
		AffectsDelivery: true,
	}

	t.Run("blocks delivery", func(t *testing.T) {
		t.Parallel()
		s := orgSnapshot(weekdayHours(false), []Holiday{hol}, DeliveryRules{})
		wd := s.Evaluate(hol.Date)
		if wd.IsBusinessDay {
			t.Error("holiday must not be a business day")
		}
		if !wd.IsHoliday {
			t.Error("expected IsHoliday")
		}
		if wd.DeliveryAllowed {
			t.Error("expected delivery blocked")
		}
		if len(wd.HolidayNames) != 1 || wd.HolidayNames[0] != "Founders Day" {
			t.Errorf("HolidayNames = %v", wd.HolidayNames)
		}
	})

	t.Run("allow_holiday permits delivery", func(t *testing.T) {
		t.Parallel()
		s := orgSnapshot(weekdayHours(false), []Holiday{hol}, DeliveryRules{AllowHoliday: true})
		wd := s.Evaluate(hol.Date)
		if wd.IsBusinessDay {
			t.Error("the allowance must not turn a holiday into a business day")
		}
		if !wd.DeliveryAllowed {
			t.Error("expected delivery with the allowance")
		}
	})

	t.Run("unobserved record is ignored", func(t *testing.T) {
		t.Parallel()
		off := hol
		off.Observed = false
		s := orgSnapshot(weekdayHours(false), []Holiday{off}, DeliveryRules{})
		if wd := s.Evaluate(hol.Date); wd.IsHoliday || !wd.IsBusinessDay {
			t.Errorf("deactivated holiday must not affect evaluation: %+v", wd)
		}
	})
}

func TestEvaluateObservanceKeepsDelivery(t *testing.T) {
	t.Parallel()

	obs := Holiday{
		ID:       "h2",
		Name:     "Company Anniversary",
		Date:     day(2025, time.July, 2),
		Type:     TypeObservance,
		Observed: true,
		// AffectsDelivery deliberately false
	}
	s := orgSnapshot(weekdayHours(false), []Holiday{obs}, DeliveryRules{})
	wd := s.Evaluate(obs.Date)

	if !wd.IsHoliday {
		t.Error("observance still counts as a holiday")
	}
	if wd.IsBusinessDay {
		t.Error("observance still removes the business day")
	}
	if !wd.DeliveryAllowed {
		t.Error("an observance that does not affect delivery must keep delivery open")
	}
}

func TestEvaluateScopedHoliday(t *testing.T) {
	t.Parallel()

	scoped := Holiday{
		ID:              "h3",
		Name:            "Warehouse Inventory Day",
		Date:            day(2025, time.July, 2),
		Type:            TypeDepartment,
		Observed:        true,
		AffectsDelivery: true,
		Departments:     []string{"warehouse"},
	}

	cases := []struct {
		name    string
		scope   Scope
		applies bool
	}{
		{"org-wide caller", Scope{}, false},
		{"matching department", Scope{Department: "Warehouse"}, true},
		{"other department", Scope{Department: "sales"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := NewSnapshot(SnapshotInput{
				Country:  "ZZ",
				Hours:    weekdayHours(false),
				Holidays: []Holiday{scoped},
				Scope:    tc.scope,
			})
			wd := s.Evaluate(scoped.Date)
			if wd.IsHoliday != tc.applies {
				t.Errorf("IsHoliday = %v, want %v", wd.IsHoliday, tc.applies)
			}
		})
	}
}

func TestEvaluateFederalHoliday(t *testing.T) {
	t.Parallel()

	s := usSnapshot(weekdayHours(false), nil, DeliveryRules{AllowHoliday: true})
	wd := s.Evaluate(day(2025, time.July, 4)) // Friday

	if wd.IsBusinessDay {
		t.Error("Independence Day must not be a business day")
	}
	if !wd.IsHoliday {
		t.Fatal("expected a jurisdiction holiday")
	}
	found := false
	for _, n := range wd.HolidayNames {
		if strings.Contains(n, "Independence") {
			found = true
		}
	}
	if !found {
		t.Errorf("HolidayNames = %v, want Independence Day", wd.HolidayNames)
	}
	// allow_holiday covers jurisdiction holidays too
	if !wd.DeliveryAllowed {
		t.Error("expected delivery with the holiday allowance")
	}
}

func TestEvaluateObservedFederalShift(t *testing.T) {
	t.Parallel()

	// July 4 2026 falls on a Saturday; the observed holiday is Friday
	// July 3.
	s := usSnapshot(weekdayHours(false), nil, DeliveryRules{})
	wd := s.Evaluate(day(2026, time.July, 3))
	if !wd.IsHoliday {
		t.Fatal("expected the observed Friday to be a holiday")
	}
	if wd.IsBusinessDay {
		t.Error("observed holiday must not be a business day")
	}
}

func TestEvaluateMissingHoursFailClosed(t *testing.T) {
	t.Parallel()

	// Table without a Wednesday entry.
	var hours []DayHours
	for _, dh := range weekdayHours(false) {
		if dh.Weekday == time.Wednesday {
			continue
		}
		hours = append(hours, dh)
	}
	s := orgSnapshot(hours, nil, DeliveryRules{})

	wd := s.Evaluate(day(2025, time.July, 2)) // Wednesday
	if wd.IsBusinessDay {
		t.Error("a weekday without an hours entry must be treated as closed")
	}
	if wd.DeliveryAllowed {
		t.Error("fail-closed day must block delivery")
	}
	if wd.Hours != nil {
		t.Errorf("expected no hours, got %+v", wd.Hours)
	}

	warned := false
	for _, w := range s.Warnings() {
		if strings.Contains(w, "wednesday") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected a wednesday warning, got %v", s.Warnings())
	}
}

func TestEvaluateInvalidHoursFailClosed(t *testing.T) {
	t.Parallel()

	hours := weekdayHours(false)
	for i := range hours {
		if hours[i].Weekday == time.Wednesday {
			hours[i].Start = MustClock("18:00")
			hours[i].End = MustClock("08:00")
		}
	}
	s := orgSnapshot(hours, nil, DeliveryRules{})

	if wd := s.Evaluate(day(2025, time.July, 2)); wd.IsBusinessDay {
		t.Error("a weekday with an inverted window must be treated as closed")
	}
	if len(s.Warnings()) == 0 {
		t.Error("expected a configuration warning")
	}
}

func TestSnapshotDuplicateWeekdayDropped(t *testing.T) {
	t.Parallel()

	hours := append(weekdayHours(false), DayHours{
		Weekday:       time.Monday,
		Start:         ClockNone,
		End:           ClockNone,
		ExtendedStart: ClockNone,
		ExtendedEnd:   ClockNone,
	})
	s := orgSnapshot(hours, nil, DeliveryRules{})

	// The first (open) Monday entry wins.
	if wd := s.Evaluate(day(2025, time.July, 7)); !wd.IsBusinessDay {
		t.Error("duplicate entry must not override the first one")
	}
	warned := false
	for _, w := range s.Warnings() {
		if strings.Contains(w, "duplicate") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected a duplicate warning, got %v", s.Warnings())
	}
}

func TestHolidaysInRange(t *testing.T) {
	t.Parallel()

	company := Holiday{
		ID:              "h4",
		Name:            "Founders Day",
		Date:            day(2025, time.July, 14),
		Type:            TypeCompany,
		Observed:        true,
		AffectsDelivery: true,
	}
	s := usSnapshot(weekdayHours(false), []Holiday{company}, DeliveryRules{})

	got := s.HolidaysInRange(day(2025, time.July, 1), day(2025, time.July, 31))
	if len(got) != 2 {
		t.Fatalf("got %d holidays, want 2: %+v", len(got), got)
	}
	if got[0].Type != TypeFederal || !got[0].Date.Equal(day(2025, time.July, 4)) {
		t.Errorf("first should be the federal July 4: %+v", got[0])
	}
	if got[1].Name != "Founders Day" {
		t.Errorf("second should be Founders Day: %+v", got[1])
	}

	if out := s.HolidaysInRange(day(2025, time.July, 31), day(2025, time.July, 1)); out != nil {
		t.Errorf("inverted range should yield nil, got %v", out)
	}
}
