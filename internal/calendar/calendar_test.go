package calendar

import "time"

// Shared fixtures: Mon-Fri 08:00-18:00, closed weekends, optional
// 06:00-22:00 extended window on open days.

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func closedDay(wd time.Weekday) DayHours {
	return DayHours{
		Weekday:       wd,
		Start:         ClockNone,
		End:           ClockNone,
		ExtendedStart: ClockNone,
		ExtendedEnd:   ClockNone,
	}
}

func openDay(wd time.Weekday, extended bool) DayHours {
	dh := DayHours{
		Weekday:       wd,
		Open:          true,
		Start:         MustClock("08:00"),
		End:           MustClock("18:00"),
		ExtendedStart: ClockNone,
		ExtendedEnd:   ClockNone,
	}
	if extended {
		dh.ExtendedStart = MustClock("06:00")
		dh.ExtendedEnd = MustClock("22:00")
	}
	return dh
}

func weekdayHours(extended bool) []DayHours {
	hs := []DayHours{closedDay(time.Sunday)}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		hs = append(hs, openDay(wd, extended))
	}
	return append(hs, closedDay(time.Saturday))
}

// orgSnapshot builds a snapshot with no jurisdiction holidays so tests
// control the holiday table completely. "ZZ" is deliberately unknown.
func orgSnapshot(hours []DayHours, holidays []Holiday, rules DeliveryRules) *Snapshot {
	return NewSnapshot(SnapshotInput{
		Country:  "ZZ",
		Hours:    hours,
		Holidays: holidays,
		Rules:    rules,
	})
}

func usSnapshot(hours []DayHours, holidays []Holiday, rules DeliveryRules) *Snapshot {
	return NewSnapshot(SnapshotInput{
		Country:  "US",
		Hours:    hours,
		Holidays: holidays,
		Rules:    rules,
	})
}
