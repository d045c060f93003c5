package calendar

import (
	"strings"
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// FederalCalendar returns the jurisdiction holiday calendar for a
// country code. Unknown codes yield an empty calendar (weekend-only);
// the snapshot surfaces that as a configuration warning.
func FederalCalendar(country string) (*cal.BusinessCalendar, bool) {
	c := cal.NewBusinessCalendar()
	switch strings.ToUpper(strings.TrimSpace(country)) {
	case "US", "USA", "":
		c.AddHoliday(
			us.NewYear,
			us.MlkDay,
			us.PresidentsDay,
			us.MemorialDay,
			us.Juneteenth,
			us.IndependenceDay,
			us.LaborDay,
			us.ThanksgivingDay,
			us.ChristmasDay,
		)
		return c, true
	default:
		return c, false
	}
}

// federalHoliday reports whether the date is a jurisdiction holiday and
// returns its name. Observed dates count: when July 4 falls on a
// Saturday, the observed Friday is the holiday for scheduling purposes.
func (s *Snapshot) federalHoliday(t time.Time) (string, bool) {
	if s.federal == nil {
		return "", false
	}
	actual, observed, h := s.federal.IsHoliday(t)
	if !actual && !observed {
		return "", false
	}
	if h != nil {
		return h.Name, true
	}
	return "", true
}

// FederalHolidaysInRange lists jurisdiction holidays in [start, end]
// inclusive, as Holiday values with Type=federal.
func (s *Snapshot) FederalHolidaysInRange(start, end time.Time) []Holiday {
	if s.federal == nil || end.Before(start) {
		return nil
	}
	start = midnight(start)
	end = midnight(end)

	var out []Holiday
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range s.federal.Holidays {
			_, obs := h.Calc(year)
			if obs.IsZero() {
				continue
			}
			d := midnight(obs)
			if d.Before(start) || d.After(end) {
				continue
			}
			out = append(out, Holiday{
				Name:            h.Name,
				Date:            d,
				Type:            TypeFederal,
				Observed:        true,
				AffectsDelivery: true,
			})
		}
	}
	return out
}
