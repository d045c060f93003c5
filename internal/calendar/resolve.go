package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Policy selects how a non-compliant target date is resolved.
//
// The set is closed: Resolve dispatches exhaustively and returns
// ErrUnknownPolicy for anything else, so a bad config value cannot be
// silently treated as one of the real policies.
type Policy int

const (
	// PolicyStrict rejects a non-deliverable date outright.
	PolicyStrict Policy = iota
	// PolicyFlexible moves to the next qualifying business day.
	PolicyFlexible
	// PolicyExtended keeps the date when extended hours exist,
	// otherwise behaves like PolicyFlexible.
	PolicyExtended
)

// ErrUnknownPolicy is returned for policy values outside the closed set.
var ErrUnknownPolicy = errors.New("unknown delivery policy")

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return PolicyStrict, nil
	case "flexible", "":
		return PolicyFlexible, nil
	case "extended":
		return PolicyExtended, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyFlexible:
		return "flexible"
	case PolicyExtended:
		return "extended"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ResolveResult is the full outcome of a scheduling decision, including
// the working-day evaluation for transparency.
type ResolveResult struct {
	OriginalDate    time.Time
	RecommendedDate time.Time
	RecommendedTime ClockTime
	Optimal         bool
	Adjustments     []string
	WorkingDay      WorkingDay
}

// Adjustment messages. Tests and downstream consumers match on these,
// so keep them stable.
const (
	adjNotAllowed      = "delivery not allowed on requested date"
	adjMovedNext       = "moved to next business day"
	adjNoQualifyingDay = "no qualifying business day within %d days"
	adjExtendedApplied = "extended hours applied"
	adjNoExtendedHours = "extended hours unavailable on requested date"
	adjTimeClamped     = "delivery time adjusted to business hours window"
)

// Resolve recommends an execution date/time for the target date under
// the given policy. preferred may be ClockNone when the caller has no
// time preference.
//
// Resolve never fails for a date it cannot improve: under PolicyStrict
// the result simply carries Optimal=false and the caller decides what
// "non-optimal" means operationally. The only error is an unknown
// policy value.
func (s *Snapshot) Resolve(target time.Time, preferred ClockTime, policy Policy) (ResolveResult, error) {
	day := midnight(target)
	res := ResolveResult{
		OriginalDate:    day,
		RecommendedDate: day,
		RecommendedTime: preferred,
		WorkingDay:      s.Evaluate(day),
	}

	if res.WorkingDay.DeliveryAllowed {
		res.Optimal = true
		s.clampTime(&res, policy)
		return res, nil
	}

	switch policy {
	case PolicyStrict:
		s.resolveStrict(&res)
	case PolicyFlexible:
		s.resolveFlexible(&res)
	case PolicyExtended:
		s.resolveExtended(&res)
	default:
		return ResolveResult{}, fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
	}

	if res.Optimal {
		s.clampTime(&res, policy)
	}
	return res, nil
}

// resolveStrict rejects: the date stays put and Optimal stays false.
func (s *Snapshot) resolveStrict(res *ResolveResult) {
	res.Optimal = false
	res.Adjustments = append(res.Adjustments, adjNotAllowed)
}

// resolveFlexible defers to the next qualifying business day.
func (s *Snapshot) resolveFlexible(res *ResolveResult) {
	next, ok := s.NextBusinessDay(res.OriginalDate, 0)
	if !ok {
		res.Optimal = false
		res.Adjustments = append(res.Adjustments,
			fmt.Sprintf(adjNoQualifyingDay, s.Rules.maxWindow()))
		return
	}
	res.RecommendedDate = next
	res.Optimal = true
	res.Adjustments = append(res.Adjustments, adjMovedNext)
}

// resolveExtended keeps the date when an extended window exists,
// shifting only the time; otherwise it falls back to flexible handling.
func (s *Snapshot) resolveExtended(res *ResolveResult) {
	if res.WorkingDay.ExtendedHoursAvailable {
		res.RecommendedTime = res.WorkingDay.Hours.ExtendedStart
		res.Optimal = true
		res.Adjustments = append(res.Adjustments, adjExtendedApplied)
		return
	}
	res.Adjustments = append(res.Adjustments, adjNoExtendedHours)
	s.resolveFlexible(res)
}

// clampTime forces the recommended time into the recommended day's
// window: the normal window, or the extended one under PolicyExtended.
// Recorded as an adjustment only when it changed the value.
func (s *Snapshot) clampTime(res *ResolveResult, policy Policy) {
	if !res.RecommendedTime.Valid() {
		return
	}
	hrs, ok := s.dayHours(res.RecommendedDate)
	if !ok || !hrs.Open {
		return
	}
	lo, hi := hrs.Start, hrs.End
	if policy == PolicyExtended && hrs.HasExtended() {
		lo, hi = hrs.ExtendedStart, hrs.ExtendedEnd
	}
	clamped := res.RecommendedTime.Clamp(lo, hi)
	if clamped != res.RecommendedTime {
		res.RecommendedTime = clamped
		res.Adjustments = append(res.Adjustments, adjTimeClamped)
	}
}
