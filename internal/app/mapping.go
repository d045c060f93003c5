package app

import (
	"fmt"
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/config"
	"bizcal/internal/observability/pprofsvc"
	"bizcal/internal/services/refresher"
	"bizcal/internal/storage"
	logx "bizcal/pkg/logx"
)

func mapLogConfig(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	}
}

// mapCalendarConfig translates config clock strings and the policy name
// into engine types. Parse errors reject the config; table invariants
// (start<end, extended containment) are left to the snapshot, which
// fails closed and surfaces warnings instead.
func mapCalendarConfig(cfg *config.Config) (calendar.Config, error) {
	week := cfg.Calendar.BusinessHours
	days := []struct {
		name string
		wd   time.Weekday
		day  config.DayConfig
	}{
		{"monday", time.Monday, week.Monday},
		{"tuesday", time.Tuesday, week.Tuesday},
		{"wednesday", time.Wednesday, week.Wednesday},
		{"thursday", time.Thursday, week.Thursday},
		{"friday", time.Friday, week.Friday},
		{"saturday", time.Saturday, week.Saturday},
		{"sunday", time.Sunday, week.Sunday},
	}

	hours := make([]calendar.DayHours, 0, 7)
	for _, d := range days {
		dh := calendar.DayHours{Weekday: d.wd, Open: d.day.Open}
		var err error
		if dh.Start, err = calendar.ParseClock(d.day.Start); err != nil {
			return calendar.Config{}, fmt.Errorf("calendar.business_hours.%s.start: %w", d.name, err)
		}
		if dh.End, err = calendar.ParseClock(d.day.End); err != nil {
			return calendar.Config{}, fmt.Errorf("calendar.business_hours.%s.end: %w", d.name, err)
		}
		if dh.ExtendedStart, err = calendar.ParseClock(d.day.ExtendedStart); err != nil {
			return calendar.Config{}, fmt.Errorf("calendar.business_hours.%s.extended_start: %w", d.name, err)
		}
		if dh.ExtendedEnd, err = calendar.ParseClock(d.day.ExtendedEnd); err != nil {
			return calendar.Config{}, fmt.Errorf("calendar.business_hours.%s.extended_end: %w", d.name, err)
		}
		hours = append(hours, dh)
	}

	policy, err := calendar.ParsePolicy(cfg.Calendar.Delivery.Policy)
	if err != nil {
		return calendar.Config{}, fmt.Errorf("calendar.delivery.policy: %w", err)
	}
	if cfg.Calendar.Delivery.MaxWindowDays < 0 {
		return calendar.Config{}, fmt.Errorf("calendar.delivery.max_window_days must be >= 0")
	}

	return calendar.Config{
		Country: cfg.Calendar.Country,
		Hours:   hours,
		Rules: calendar.DeliveryRules{
			AllowWeekend:      cfg.Calendar.Delivery.AllowWeekend,
			AllowHoliday:      cfg.Calendar.Delivery.AllowHoliday,
			EmergencyOverride: cfg.Calendar.Delivery.EmergencyOverride,
			Policy:            policy,
			MaxWindowDays:     cfg.Calendar.Delivery.MaxWindowDays,
		},
	}, nil
}

// mapStorageConfig returns (config, enabled, error).
func mapStorageConfig(cfg *config.Config) (storage.Config, bool, error) {
	if cfg.Storage == nil {
		return storage.Config{}, false, nil
	}
	busy, err := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
	if err != nil {
		return storage.Config{}, false, err
	}
	sc := storage.Config{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		BusyTimeout: busy,
	}
	return sc, sc.Driver != "" && sc.Driver != "none", nil
}

func mapRefreshConfig(cfg *config.Config) (refresher.Config, error) {
	retain, err := config.ParseDurationField("refresh.retain_decisions", cfg.Refresh.RetainDecisions)
	if err != nil {
		return refresher.Config{}, err
	}
	if tz := cfg.Refresh.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return refresher.Config{}, fmt.Errorf("refresh.timezone: invalid %q: %w", tz, err)
		}
	}
	return refresher.Config{
		Enabled:  cfg.Refresh.Enabled,
		Spec:     cfg.Refresh.Spec,
		Timezone: cfg.Refresh.Timezone,
		Retain:   retain,
	}, nil
}

func mapPprofConfig(cfg *config.Config) pprofsvc.Config {
	return pprofsvc.Config{
		Enabled:       cfg.Pprof.Enabled,
		Addr:          cfg.Pprof.Addr,
		Prefix:        cfg.Pprof.Prefix,
		Token:         cfg.Pprof.Token,
		AllowInsecure: cfg.Pprof.AllowInsecure,
	}
}
