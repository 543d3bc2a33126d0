package storage

import (
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "reports.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertAndGetByID(t *testing.T) {
	db := openTestSQLite(t)

	id, err := db.Insert(InsertParams{
		ReceivedAt: "2026-08-06T12:00:00Z",
		Station:    "KJFK",
		ReportType: "metar",
		RawText:    "METAR KJFK 061200Z 00000KT CAVOK",
		Groups:     []string{"wind", "cavok"},
		GroupCount: 2,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.GetByID(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Station != "KJFK" || got.GroupCount != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestQueryFiltersByStationAndError(t *testing.T) {
	db := openTestSQLite(t)

	_, _ = db.Insert(InsertParams{ReceivedAt: "2026-08-06T12:00:00Z", Station: "KJFK", ReportType: "metar", RawText: "ok report"})
	_, _ = db.Insert(InsertParams{ReceivedAt: "2026-08-06T13:00:00Z", Station: "KLAX", ReportType: "metar", RawText: "bad report", ParseError: "expected location"})

	rows, err := db.Query(QueryParams{Station: "KLAX"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0].Station != "KLAX" {
		t.Fatalf("rows=%+v", rows)
	}

	errRows, err := db.Query(QueryParams{HasError: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(errRows) != 1 || errRows[0].ParseError == "" {
		t.Fatalf("errRows=%+v", errRows)
	}
}

func TestSetGoldenAndAnnotation(t *testing.T) {
	db := openTestSQLite(t)

	id, _ := db.Insert(InsertParams{ReceivedAt: "2026-08-06T12:00:00Z", Station: "KJFK", ReportType: "metar", RawText: "report"})

	if err := db.SetGolden(id, true); err != nil {
		t.Fatalf("set golden: %v", err)
	}
	if err := db.SetAnnotation(id, "looks right"); err != nil {
		t.Fatalf("set annotation: %v", err)
	}

	got, err := db.GetByID(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsGolden || got.Annotation != "looks right" {
		t.Fatalf("got %+v", got)
	}
}

func TestGetStats(t *testing.T) {
	db := openTestSQLite(t)

	_, _ = db.Insert(InsertParams{ReceivedAt: "2026-08-06T12:00:00Z", Station: "KJFK", ReportType: "metar", RawText: "a"})
	_, _ = db.Insert(InsertParams{ReceivedAt: "2026-08-06T13:00:00Z", Station: "KJFK", ReportType: "taf", RawText: "b"})

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReports != 2 {
		t.Errorf("total=%d, want 2", stats.TotalReports)
	}
	if stats.ByStation["KJFK"] != 2 {
		t.Errorf("by station=%v", stats.ByStation)
	}
}
