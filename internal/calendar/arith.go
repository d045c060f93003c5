package calendar

import "time"

// A day "qualifies" for scheduling when it is a business day and
// delivery is allowed on it. All arithmetic below counts qualifying
// days only.
func (s *Snapshot) qualifies(t time.Time) bool {
	wd := s.evaluate(t)
	return wd.IsBusinessDay && wd.DeliveryAllowed
}

// NextBusinessDay scans forward from the day after `from` and returns
// the skip-th qualifying day (skip=0 is the first one). The scan is
// bounded by the rules' delivery window; when it is exhausted the
// second return is false and the caller decides what to do. There is
// deliberately no fallback date.
func (s *Snapshot) NextBusinessDay(from time.Time, skip int) (time.Time, bool) {
	if skip < 0 {
		skip = 0
	}
	day := midnight(from)
	for i := 0; i < s.Rules.maxWindow(); i++ {
		day = day.AddDate(0, 0, 1)
		if !s.qualifies(day) {
			continue
		}
		if skip == 0 {
			return day, true
		}
		skip--
	}
	return time.Time{}, false
}

// AddBusinessDays walks forward from `from`, counting qualifying days,
// and returns the date reached after n of them. n <= 0 returns `from`
// unchanged. If any single step exhausts the search window, the date
// reached so far is returned; the result of a successful walk is always
// a qualifying day.
func (s *Snapshot) AddBusinessDays(from time.Time, n int) time.Time {
	cur := midnight(from)
	for ; n > 0; n-- {
		next, ok := s.NextBusinessDay(cur, 0)
		if !ok {
			return cur
		}
		cur = next
	}
	return cur
}

// BusinessDaysBetween counts qualifying days in (start, end]: exclusive
// of start, inclusive of end. Returns 0 when start >= end.
func (s *Snapshot) BusinessDaysBetween(start, end time.Time) int {
	startD := midnight(start)
	endD := midnight(end)
	if !startD.Before(endD) {
		return 0
	}
	n := 0
	for day := startD.AddDate(0, 0, 1); !day.After(endD); day = day.AddDate(0, 0, 1) {
		if s.qualifies(day) {
			n++
		}
	}
	return n
}
