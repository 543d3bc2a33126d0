package storage

import (
	"context"
	"os"
	"testing"
	"time"
)

// setupTestPostgres creates a test database connection.
// Returns nil if no PostgreSQL connection is available.
func setupTestPostgres(t *testing.T) *PostgresDB {
	t.Helper()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		user = "metartaf"
	}
	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		password = "metartaf"
	}
	database := os.Getenv("POSTGRES_DB")
	if database == "" {
		database = "metartaf_state"
	}

	ctx := context.Background()
	pg, err := OpenPostgres(ctx, PostgresConfig{
		Host:     host,
		Port:     5432,
		User:     user,
		Password: password,
		Database: database,
	})
	if err != nil {
		return nil
	}

	if err := pg.CreateSchema(ctx); err != nil {
		pg.Close()
		return nil
	}

	return pg
}

func TestUpsertMetarMergesIntoStationState(t *testing.T) {
	pg := setupTestPostgres(t)
	if pg == nil {
		t.Skip("No PostgreSQL connection available")
	}
	defer pg.Close()

	ctx := context.Background()
	station := "KTEST"
	t1 := time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	cleanup := func() {
		_, _ = pg.pool.Exec(ctx, "DELETE FROM station_state WHERE station = $1", station)
	}
	cleanup()
	defer cleanup()

	if err := pg.UpsertMetar(ctx, station, t1, "METAR KTEST 061200Z 00000KT CAVOK", map[string]string{"raw": "one"}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := pg.UpsertMetar(ctx, station, t2, "METAR KTEST 061300Z 24010KT CAVOK", map[string]string{"raw": "two"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := pg.GetStationState(ctx, station)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected state, got nil")
	}
	if got.LatestMetarRaw != "METAR KTEST 061300Z 24010KT CAVOK" {
		t.Errorf("latest_metar_raw = %q, want the newer observation", got.LatestMetarRaw)
	}
	if got.ReportCount != 2 {
		t.Errorf("report_count = %d, want 2", got.ReportCount)
	}
}

func TestUpsertMetarIgnoresOlderReport(t *testing.T) {
	pg := setupTestPostgres(t)
	if pg == nil {
		t.Skip("No PostgreSQL connection available")
	}
	defer pg.Close()

	ctx := context.Background()
	station := "KTEST2"
	newer := time.Date(2026, 8, 6, 13, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	cleanup := func() {
		_, _ = pg.pool.Exec(ctx, "DELETE FROM station_state WHERE station = $1", station)
	}
	cleanup()
	defer cleanup()

	if err := pg.UpsertMetar(ctx, station, newer, "newer", nil); err != nil {
		t.Fatalf("upsert newer failed: %v", err)
	}
	if err := pg.UpsertMetar(ctx, station, older, "older", nil); err != nil {
		t.Fatalf("upsert older failed: %v", err)
	}

	got, err := pg.GetStationState(ctx, station)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.LatestMetarRaw != "newer" {
		t.Errorf("latest_metar_raw = %q, want %q (out-of-order older report must not win)", got.LatestMetarRaw, "newer")
	}
}

func TestGetStationStateNotFound(t *testing.T) {
	pg := setupTestPostgres(t)
	if pg == nil {
		t.Skip("No PostgreSQL connection available")
	}
	defer pg.Close()

	got, err := pg.GetStationState(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown station, got %+v", got)
	}
}

func TestListStale(t *testing.T) {
	pg := setupTestPostgres(t)
	if pg == nil {
		t.Skip("No PostgreSQL connection available")
	}
	defer pg.Close()

	ctx := context.Background()
	station := "KSTALE"
	old := time.Now().Add(-48 * time.Hour)

	cleanup := func() {
		_, _ = pg.pool.Exec(ctx, "DELETE FROM station_state WHERE station = $1", station)
	}
	cleanup()
	defer cleanup()

	if err := pg.UpsertMetar(ctx, station, old, "stale", nil); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	_, _ = pg.pool.Exec(ctx, "UPDATE station_state SET last_seen = $1 WHERE station = $2", old, station)

	stale, err := pg.ListStale(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("list stale failed: %v", err)
	}
	found := false
	for _, s := range stale {
		if s == station {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q in stale list, got %v", station, stale)
	}
}
