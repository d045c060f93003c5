package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	logx "bizcal/pkg/logx"
)

func openTestSQLite(t *testing.T) Store {
	t.Helper()
	s, err := Open(Config{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "bizcal.db"),
		BusyTimeout: time.Second,
	}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(Config{Driver: "sqlite"}, logx.Nop()); err == nil {
		t.Fatal("sqlite without a path must be rejected")
	}
}

func TestSQLiteHolidayRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	rec := HolidayRecord{
		ID:              "founders",
		Name:            "Founders Day",
		Date:            date(2025, time.July, 2),
		Type:            "company",
		Description:     "all sites closed",
		Observed:        true,
		AffectsDelivery: true,
		Departments:     []string{"warehouse", "logistics"},
		Regions:         []string{"us-east"},
		CreatedAt:       date(2025, time.January, 1),
	}
	if err := s.UpsertHoliday(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListHolidays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	h := got[0]
	if h.ID != rec.ID || h.Name != rec.Name || h.Type != rec.Type || h.Description != rec.Description {
		t.Errorf("record = %+v", h)
	}
	if !h.Date.Equal(rec.Date) {
		t.Errorf("Date = %v, want %v", h.Date, rec.Date)
	}
	if !h.Observed || !h.AffectsDelivery {
		t.Errorf("flags lost: %+v", h)
	}
	if len(h.Departments) != 2 || h.Departments[0] != "warehouse" {
		t.Errorf("Departments = %v", h.Departments)
	}
	if len(h.Regions) != 1 || h.Regions[0] != "us-east" {
		t.Errorf("Regions = %v", h.Regions)
	}

	// Upsert on the same id replaces instead of duplicating.
	rec.Name = "Founders Day v2"
	if err := s.UpsertHoliday(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, err = s.ListHolidays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Founders Day v2" {
		t.Errorf("upsert result = %+v", got)
	}
}

func TestSQLiteDeactivate(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.UpsertHoliday(ctx, HolidayRecord{
		ID: "a", Name: "Alpha Day", Date: date(2025, time.July, 2), Type: "company", Observed: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeactivateHoliday(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	got, err := s.ListHolidays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Observed {
		t.Errorf("deactivation must clear observed, got %+v", got)
	}
	if err := s.DeactivateHoliday(ctx, "missing"); err == nil {
		t.Error("unknown id must be rejected")
	}
}

func TestSQLiteDecisions(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()
	now := time.Now()

	entries := []DecisionEntry{
		{At: now.Add(-48 * time.Hour), TargetDate: date(2025, time.July, 4), RecommendedDate: date(2025, time.July, 7), Policy: "flexible", Optimal: true},
		{At: now, TargetDate: date(2025, time.July, 5), RecommendedDate: date(2025, time.July, 5), Policy: "strict"},
	}
	for _, e := range entries {
		if err := s.AppendDecision(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	pruned, err := s.PruneDecisions(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}
