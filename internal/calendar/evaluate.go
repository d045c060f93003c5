package calendar

import "time"

// Evaluate classifies a calendar date against the snapshot.
//
// Pure function of (date, snapshot): no side effects, no I/O. When the
// date is not a business day, NextBusinessDay is filled in via the
// forward search; if the search window is exhausted it stays zero and
// the caller must treat that as a policy failure.
func (s *Snapshot) Evaluate(date time.Time) WorkingDay {
	wd := s.evaluate(date)
	if !wd.IsBusinessDay {
		if next, ok := s.NextBusinessDay(date, 0); ok {
			wd.NextBusinessDay = next
		}
	}
	return wd
}

// evaluate is Evaluate without the lookahead, used by the arithmetic
// layer so the forward scan stays linear.
func (s *Snapshot) evaluate(date time.Time) WorkingDay {
	day := midnight(date)
	wd := WorkingDay{Date: day}

	weekday := day.Weekday()
	weekend := weekday == time.Saturday || weekday == time.Sunday

	if name, ok := s.federalHoliday(day); ok {
		wd.IsHoliday = true
		if name != "" {
			wd.HolidayNames = append(wd.HolidayNames, name)
		}
	}

	// Company holidays can never relax a delivery ban, but a date whose
	// every holiday is marked "does not affect delivery" may still be
	// delivered to even without the global holiday allowance.
	holidayBlocks := wd.IsHoliday // jurisdiction holidays always affect delivery
	for _, h := range s.companyHolidays(day) {
		wd.IsHoliday = true
		wd.HolidayNames = append(wd.HolidayNames, h.Name)
		if h.AffectsDelivery {
			holidayBlocks = true
		}
	}

	if hrs, ok := s.dayHours(day); ok {
		h := hrs
		wd.Hours = &h
		wd.ExtendedHoursAvailable = h.Open && h.HasExtended()
	}

	open := wd.Hours != nil && wd.Hours.Open
	wd.IsBusinessDay = !weekend && !wd.IsHoliday && open

	switch {
	case wd.IsBusinessDay:
		wd.DeliveryAllowed = true
	default:
		allowed := true
		if weekend || !open {
			allowed = allowed && s.Rules.AllowWeekend
		}
		if wd.IsHoliday {
			allowed = allowed && (s.Rules.AllowHoliday || !holidayBlocks)
		}
		wd.DeliveryAllowed = allowed
	}

	return wd
}
