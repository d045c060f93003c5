package app

import (
	"strings"
	"testing"
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		Calendar: config.CalendarConfig{
			Country: "US",
			BusinessHours: config.WeekConfig{
				Monday:    config.DayConfig{Open: true, Start: "08:00", End: "18:00", ExtendedStart: "06:00", ExtendedEnd: "22:00"},
				Tuesday:   config.DayConfig{Open: true, Start: "08:00", End: "18:00"},
				Wednesday: config.DayConfig{Open: true, Start: "08:00", End: "18:00"},
				Thursday:  config.DayConfig{Open: true, Start: "08:00", End: "18:00"},
				Friday:    config.DayConfig{Open: true, Start: "08:00", End: "18:00"},
			},
			Delivery: config.DeliveryConfig{
				AllowWeekend:  true,
				Policy:        "extended",
				MaxWindowDays: 14,
			},
		},
	}
}

func TestMapCalendarConfig(t *testing.T) {
	t.Parallel()

	cc, err := mapCalendarConfig(baseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if cc.Country != "US" {
		t.Errorf("Country = %q", cc.Country)
	}
	if len(cc.Hours) != 7 {
		t.Fatalf("Hours entries = %d, want 7", len(cc.Hours))
	}

	var mon calendar.DayHours
	for _, dh := range cc.Hours {
		if dh.Weekday == time.Monday {
			mon = dh
		}
	}
	if !mon.Open || mon.Start != calendar.MustClock("08:00") || mon.End != calendar.MustClock("18:00") {
		t.Errorf("monday = %+v", mon)
	}
	if !mon.HasExtended() || mon.ExtendedStart != calendar.MustClock("06:00") {
		t.Errorf("monday extended = %+v", mon)
	}

	if cc.Rules.Policy != calendar.PolicyExtended || !cc.Rules.AllowWeekend || cc.Rules.MaxWindowDays != 14 {
		t.Errorf("rules = %+v", cc.Rules)
	}
}

func TestMapCalendarConfigErrors(t *testing.T) {
	t.Parallel()

	t.Run("bad clock", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Calendar.BusinessHours.Tuesday.Start = "25:00"
		_, err := mapCalendarConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), "calendar.business_hours.tuesday.start") {
			t.Errorf("want a tuesday.start error, got %v", err)
		}
	})

	t.Run("bad policy", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Calendar.Delivery.Policy = "lenient"
		if _, err := mapCalendarConfig(cfg); err == nil {
			t.Error("unknown policy must be rejected")
		}
	})

	t.Run("negative window", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Calendar.Delivery.MaxWindowDays = -1
		if _, err := mapCalendarConfig(cfg); err == nil {
			t.Error("negative window must be rejected")
		}
	})
}

func TestMapStorageConfig(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	if _, enabled, err := mapStorageConfig(cfg); err != nil || enabled {
		t.Errorf("absent section: enabled=%v err=%v", enabled, err)
	}

	cfg.Storage = &config.StorageConfig{Driver: "sqlite", Path: "x.db", BusyTimeout: "5s"}
	sc, enabled, err := mapStorageConfig(cfg)
	if err != nil || !enabled {
		t.Fatalf("enabled=%v err=%v", enabled, err)
	}
	if sc.BusyTimeout != 5*time.Second {
		t.Errorf("BusyTimeout = %v", sc.BusyTimeout)
	}

	cfg.Storage = &config.StorageConfig{Driver: "none"}
	if _, enabled, _ := mapStorageConfig(cfg); enabled {
		t.Error("driver none must not be enabled")
	}

	cfg.Storage = &config.StorageConfig{Driver: "sqlite", BusyTimeout: "later"}
	if _, _, err := mapStorageConfig(cfg); err == nil {
		t.Error("bad busy_timeout must be rejected")
	}
}

func TestMapRefreshConfig(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Refresh = config.RefreshConfig{
		Enabled:         true,
		Spec:            "0 3 * * *",
		Timezone:        "America/New_York",
		RetainDecisions: "720h",
	}
	rc, err := mapRefreshConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !rc.Enabled || rc.Retain != 720*time.Hour || rc.Timezone != "America/New_York" {
		t.Errorf("refresh = %+v", rc)
	}

	cfg.Refresh.Timezone = "Mars/Olympus"
	if _, err := mapRefreshConfig(cfg); err == nil {
		t.Error("unknown timezone must be rejected")
	}
}
