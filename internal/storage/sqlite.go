package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	logx "bizcal/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

const dateLayout = "2006-01-02"

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db, log: log}

	// Basic pragmas.
	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) UpsertHoliday(ctx context.Context, h HolidayRecord) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("holiday id is required")
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays(id, name, date, type, description, observed, affects_delivery, departments, regions, created_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, date=excluded.date, type=excluded.type,
		   description=excluded.description, observed=excluded.observed,
		   affects_delivery=excluded.affects_delivery,
		   departments=excluded.departments, regions=excluded.regions`,
		h.ID, h.Name, h.Date.Format(dateLayout), h.Type, nullStr(h.Description),
		boolInt(h.Observed), boolInt(h.AffectsDelivery),
		nullStr(joinList(h.Departments)), nullStr(joinList(h.Regions)),
		h.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *sqliteStore) ListHolidays(ctx context.Context) ([]HolidayRecord, error) {
	if s == nil || s.db == nil {
		return nil, ErrDisabled
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, date, type, description, observed, affects_delivery, departments, regions, created_at
		 FROM holidays ORDER BY date, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HolidayRecord
	for rows.Next() {
		var (
			h                         HolidayRecord
			date, createdAt           string
			desc, departments, region sql.NullString
			observed, affects         int
		)
		if err := rows.Scan(&h.ID, &h.Name, &date, &h.Type, &desc, &observed, &affects, &departments, &region, &createdAt); err != nil {
			return nil, err
		}
		d, err := time.ParseInLocation(dateLayout, date, time.UTC)
		if err != nil {
			s.log.Warn("holiday row has bad date, skipped", logx.String("id", h.ID), logx.String("date", date))
			continue
		}
		h.Date = d
		h.Description = desc.String
		h.Observed = observed != 0
		h.AffectsDelivery = affects != 0
		h.Departments = splitList(departments.String)
		h.Regions = splitList(region.String)
		if at, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			h.CreatedAt = at
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *sqliteStore) DeactivateHoliday(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	res, err := s.db.ExecContext(ctx, `UPDATE holidays SET observed = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("holiday %q not found", id)
	}
	return nil
}

func (s *sqliteStore) AppendDecision(ctx context.Context, e DecisionEntry) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions(at, target_date, recommended_date, recommended_time, policy, optimal, adjustments, department, region, took_ms)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		e.At.Format(time.RFC3339Nano),
		e.TargetDate.Format(dateLayout), e.RecommendedDate.Format(dateLayout),
		nullStr(e.RecommendedTime), e.Policy, boolInt(e.Optimal),
		nullStr(e.Adjustments), nullStr(e.Department), nullStr(e.Region), e.TookMS,
	)
	return err
}

func (s *sqliteStore) PruneDecisions(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrDisabled
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM decisions WHERE at < ?`,
		before.Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullStr(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinList(xs []string) string { return strings.Join(xs, ",") }

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
