package calendar

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"bizcal/internal/storage"
	logx "bizcal/pkg/logx"
)

// Config is the engine's calendar configuration (hours table, delivery
// rules, jurisdiction). Holidays come from the store, not from here.
type Config struct {
	Country string
	Hours   []DayHours
	Rules   DeliveryRules
}

// Engine binds the pure calendar core to the holiday store and the
// process configuration. It keeps one current Snapshot, swapped
// atomically on reloads, so the evaluation hot path takes no locks.
type Engine struct {
	store storage.Store
	log   logx.Logger
	warn  *logx.Throttle

	mu       sync.Mutex
	cfg      Config
	holidays []Holiday // last loaded store view

	cur atomic.Pointer[Snapshot]
}

// New creates an Engine with an empty holiday view. Call Reload to pull
// the stored holidays; until then only config-level data is in effect.
func New(cfg Config, store storage.Store, log logx.Logger) *Engine {
	if log.IsZero() {
		log = logx.Nop()
	}
	e := &Engine{
		store: store,
		log:   log,
		warn:  logx.NewThrottle(0.2, 3), // config warnings at most every few seconds
		cfg:   cfg,
	}
	e.rebuildLocked()
	return e
}

// Reload re-reads the holiday table and rebuilds the current view.
// The view is untouched when the read fails.
func (e *Engine) Reload(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	recs, err := e.store.ListHolidays(ctx)
	if err != nil {
		return fmt.Errorf("reload holidays: %w", err)
	}
	hs := make([]Holiday, 0, len(recs))
	for _, r := range recs {
		hs = append(hs, fromRecord(r))
	}

	e.mu.Lock()
	e.holidays = hs
	e.rebuildLocked()
	e.mu.Unlock()

	e.log.Debug("holiday view reloaded", logx.Int("holidays", len(hs)))
	return nil
}

// Apply swaps in new calendar configuration (hot reload), keeping the
// last loaded holiday view.
func (e *Engine) Apply(cfg Config) {
	e.mu.Lock()
	e.cfg = cfg
	e.rebuildLocked()
	e.mu.Unlock()
	e.log.Info("calendar config applied",
		logx.String("country", cfg.Country),
		logx.String("policy", cfg.Rules.Policy.String()),
		logx.Int("max_window_days", cfg.Rules.maxWindow()),
	)
}

func (e *Engine) rebuildLocked() {
	snap := NewSnapshot(SnapshotInput{
		Country:  e.cfg.Country,
		Hours:    e.cfg.Hours,
		Holidays: e.holidays,
		Rules:    e.cfg.Rules,
	})
	e.cur.Store(snap)
	e.logWarnings(snap)
}

func (e *Engine) logWarnings(snap *Snapshot) {
	if len(snap.Warnings()) == 0 || !e.warn.Allow() {
		return
	}
	e.log.Warn("calendar configuration incomplete",
		logx.Strings("warnings", snap.Warnings()))
}

// Snapshot returns the current org-wide view.
func (e *Engine) Snapshot() *Snapshot { return e.cur.Load() }

// SnapshotFor reads the holiday table once and builds a fresh view for
// the caller's scope. The returned Snapshot is the value to thread
// through a whole scheduling decision.
func (e *Engine) SnapshotFor(ctx context.Context, scope Scope) (*Snapshot, error) {
	e.mu.Lock()
	cfg := e.cfg
	hs := e.holidays
	e.mu.Unlock()

	if e.store != nil {
		recs, err := e.store.ListHolidays(ctx)
		if err != nil {
			return nil, fmt.Errorf("load holidays: %w", err)
		}
		hs = make([]Holiday, 0, len(recs))
		for _, r := range recs {
			hs = append(hs, fromRecord(r))
		}
	}

	snap := NewSnapshot(SnapshotInput{
		Country:  cfg.Country,
		Hours:    cfg.Hours,
		Holidays: hs,
		Rules:    cfg.Rules,
		Scope:    scope,
	})
	e.logWarnings(snap)
	return snap, nil
}

// ---- convenience delegates on the current view ----

func (e *Engine) Evaluate(date time.Time) WorkingDay {
	return e.Snapshot().Evaluate(date)
}

func (e *Engine) NextBusinessDay(from time.Time, skip int) (time.Time, bool) {
	return e.Snapshot().NextBusinessDay(from, skip)
}

func (e *Engine) AddBusinessDays(from time.Time, n int) time.Time {
	return e.Snapshot().AddBusinessDays(from, n)
}

func (e *Engine) BusinessDaysBetween(start, end time.Time) int {
	return e.Snapshot().BusinessDaysBetween(start, end)
}

func (e *Engine) HolidaysInRange(start, end time.Time) []Holiday {
	return e.Snapshot().HolidaysInRange(start, end)
}

// Resolve runs the policy resolver on the current view and appends a
// decision audit entry. Audit failures are logged, never surfaced: an
// unreachable audit log must not block scheduling.
func (e *Engine) Resolve(ctx context.Context, target time.Time, preferred ClockTime, policy Policy) (ResolveResult, error) {
	start := time.Now()
	snap := e.Snapshot()
	res, err := snap.Resolve(target, preferred, policy)
	if err != nil {
		return ResolveResult{}, err
	}

	if e.store != nil {
		entry := storage.DecisionEntry{
			At:              start,
			TargetDate:      res.OriginalDate,
			RecommendedDate: res.RecommendedDate,
			RecommendedTime: res.RecommendedTime.String(),
			Policy:          policy.String(),
			Optimal:         res.Optimal,
			Adjustments:     strings.Join(res.Adjustments, "; "),
			Department:      snap.Scope.Department,
			Region:          snap.Scope.Region,
			TookMS:          time.Since(start).Milliseconds(),
		}
		if aerr := e.store.AppendDecision(ctx, entry); aerr != nil {
			e.log.Warn("decision audit append failed", logx.Err(aerr))
		}
	}

	e.log.Debug("delivery resolved",
		logx.Time("target", res.OriginalDate),
		logx.Time("recommended", res.RecommendedDate),
		logx.String("policy", policy.String()),
		logx.Bool("optimal", res.Optimal),
		logx.Strings("adjustments", res.Adjustments),
	)
	return res, nil
}

// CreateHoliday persists a holiday and refreshes the in-memory view.
// The view is never mutated when persistence fails.
//
// Creating the same ID twice upserts, so a holiday is never counted
// twice. A missing ID gets a generated UUID; a missing type defaults
// to company.
func (e *Engine) CreateHoliday(ctx context.Context, h Holiday) error {
	if e.store == nil {
		return storage.ErrDisabled
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("holiday name is required")
	}
	if h.Date.IsZero() {
		return fmt.Errorf("holiday date is required")
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Type == "" {
		h.Type = TypeCompany
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	// Creation always yields an observed holiday; DeactivateHoliday is
	// the way out.
	h.Observed = true
	h.Date = midnight(h.Date)

	if err := e.store.UpsertHoliday(ctx, toRecord(h)); err != nil {
		return fmt.Errorf("persist holiday: %w", err)
	}
	if err := e.Reload(ctx); err != nil {
		// Persisted but not yet visible; next reload will pick it up.
		e.log.Warn("holiday persisted but view reload failed", logx.Err(err))
	}
	e.log.Info("holiday created",
		logx.String("id", h.ID),
		logx.String("name", h.Name),
		logx.Time("date", h.Date),
		logx.Bool("affects_delivery", h.AffectsDelivery),
	)
	return nil
}

// DeactivateHoliday is the logical delete: it clears Observed so the
// holiday drops out of evaluation while historical decisions keep
// referencing it.
func (e *Engine) DeactivateHoliday(ctx context.Context, id string) error {
	if e.store == nil {
		return storage.ErrDisabled
	}
	if err := e.store.DeactivateHoliday(ctx, id); err != nil {
		return err
	}
	if err := e.Reload(ctx); err != nil {
		e.log.Warn("holiday deactivated but view reload failed", logx.Err(err))
	}
	e.log.Info("holiday deactivated", logx.String("id", id))
	return nil
}

func toRecord(h Holiday) storage.HolidayRecord {
	return storage.HolidayRecord{
		ID:              h.ID,
		Name:            h.Name,
		Date:            h.Date,
		Type:            string(h.Type),
		Description:     h.Description,
		Observed:        h.Observed,
		AffectsDelivery: h.AffectsDelivery,
		Departments:     h.Departments,
		Regions:         h.Regions,
		CreatedAt:       h.CreatedAt,
	}
}

func fromRecord(r storage.HolidayRecord) Holiday {
	t, err := ParseHolidayType(r.Type)
	if err != nil {
		t = TypeCompany
	}
	return Holiday{
		ID:              r.ID,
		Name:            r.Name,
		Date:            r.Date,
		Type:            t,
		Description:     r.Description,
		Observed:        r.Observed,
		AffectsDelivery: r.AffectsDelivery,
		Departments:     r.Departments,
		Regions:         r.Regions,
		CreatedAt:       r.CreatedAt,
	}
}
