package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures storage.
//
// Driver values:
//   - "sqlite": SQLite database file
//   - "memory": in-process store (nothing survives a restart)
//
// If Driver is empty or "none", storage is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// HolidayRecord is one organization holiday row.
// Keep it compact and schema-stable; the calendar package owns the
// richer domain type.
type HolidayRecord struct {
	ID              string
	Name            string
	Date            time.Time // calendar day, midnight
	Type            string
	Description     string
	Observed        bool
	AffectsDelivery bool
	Departments     []string
	Regions         []string
	CreatedAt       time.Time
}

// DecisionEntry records one scheduling decision for audit.
type DecisionEntry struct {
	At              time.Time
	TargetDate      time.Time
	RecommendedDate time.Time
	RecommendedTime string
	Policy          string
	Optimal         bool
	Adjustments     string
	Department      string
	Region          string
	TookMS          int64
}
