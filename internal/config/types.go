package config

import (
	"bytes"
	"encoding/json"
)

type Config struct {
	Logging LoggingConfig `json:"logging"`

	// Calendar holds the hours table and delivery rules; the holiday
	// table itself lives in storage, not in config.
	Calendar CalendarConfig `json:"calendar"`

	Storage *StorageConfig `json:"storage,omitempty"`
	Refresh RefreshConfig  `json:"refresh"`
	Pprof   PprofConfig    `json:"pprof,omitempty"`
}

type LoggingConfig struct {
	Level   string     `json:"level"`
	Console bool       `json:"console"`
	File    FileConfig `json:"file"`
}

type FileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// CalendarConfig configures the scheduling engine.
//
// All clock fields are "HH:MM" strings (24-hour).
type CalendarConfig struct {
	// Country selects the jurisdiction holiday calendar ("US" today).
	Country string `json:"country"`

	BusinessHours WeekConfig     `json:"business_hours"`
	Delivery      DeliveryConfig `json:"delivery"`
}

// WeekConfig is the seven-day business hours table. Days are named
// sections so a config cannot accidentally double-book a weekday.
type WeekConfig struct {
	Monday    DayConfig `json:"monday"`
	Tuesday   DayConfig `json:"tuesday"`
	Wednesday DayConfig `json:"wednesday"`
	Thursday  DayConfig `json:"thursday"`
	Friday    DayConfig `json:"friday"`
	Saturday  DayConfig `json:"saturday"`
	Sunday    DayConfig `json:"sunday"`
}

type DayConfig struct {
	Open  bool   `json:"open"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`

	// Extended window, optional; must contain [start, end].
	ExtendedStart string `json:"extended_start,omitempty"`
	ExtendedEnd   string `json:"extended_end,omitempty"`
}

type DeliveryConfig struct {
	AllowWeekend      bool `json:"allow_weekend"`
	AllowHoliday      bool `json:"allow_holiday"`
	EmergencyOverride bool `json:"emergency_override"`

	// Policy is strict | flexible | extended (default flexible).
	Policy string `json:"policy,omitempty"`

	// MaxWindowDays bounds forward business-day searches (default 30).
	MaxWindowDays int `json:"max_window_days,omitempty"`
}

// StorageConfig selects the holiday/audit store.
// Driver: "sqlite" | "memory" | "none".
type StorageConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path,omitempty"`

	// BusyTimeout is a Go duration string (sqlite only).
	BusyTimeout string `json:"busy_timeout,omitempty"`
}

// RefreshConfig controls the periodic view refresh and audit pruning.
type RefreshConfig struct {
	Enabled bool `json:"enabled"`

	// Spec is a cron expression (5 or 6 fields); default "0 3 * * *".
	Spec string `json:"spec,omitempty"`

	// Timezone is an IANA name for cron evaluation, e.g. "America/New_York".
	Timezone string `json:"timezone,omitempty"`

	// RetainDecisions is a Go duration string; audit entries older than
	// this are pruned on refresh. Empty keeps everything.
	RetainDecisions string `json:"retain_decisions,omitempty"`
}

type PprofConfig struct {
	Enabled       bool   `json:"enabled"`
	Addr          string `json:"addr,omitempty"`
	Prefix        string `json:"prefix,omitempty"`
	Token         string `json:"token,omitempty"`
	AllowInsecure bool   `json:"allow_insecure,omitempty"`
}

// Clone deep-copies via JSON; good enough for config-sized data.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	var out Config
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&out); err != nil {
		return nil
	}
	return &out
}
