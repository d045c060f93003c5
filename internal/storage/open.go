package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	logx "bizcal/pkg/logx"
)

// Store is the minimal persistence API used by the calendar engine.
type Store interface {
	UpsertHoliday(ctx context.Context, h HolidayRecord) error
	ListHolidays(ctx context.Context) ([]HolidayRecord, error)
	DeactivateHoliday(ctx context.Context, id string) error

	AppendDecision(ctx context.Context, e DecisionEntry) error
	PruneDecisions(ctx context.Context, before time.Time) (int64, error)

	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if storage is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "memory":
		return newMemory(), nil
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}
