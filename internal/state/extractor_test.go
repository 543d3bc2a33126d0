package state

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"metartaf/internal/report"
	"metartaf/internal/units"
)

func TestResolveReportTimeSameMonth(t *testing.T) {
	receivedAt := time.Date(2026, 8, 22, 19, 55, 0, 0, time.UTC)
	got := resolveReportTime(receivedAt, units.Time{HasDay: true, Day: 22, Hour: 19, Minute: 51})
	want := time.Date(2026, 8, 22, 19, 51, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveReportTimeRollsBackAtMonthBoundary(t *testing.T) {
	// Received just after midnight on the 1st, report day 31 -- must
	// resolve into the previous month, not the impossible "31st of
	// this month".
	receivedAt := time.Date(2026, 9, 1, 0, 10, 0, 0, time.UTC)
	got := resolveReportTime(receivedAt, units.Time{HasDay: true, Day: 31, Hour: 23, Minute: 55})
	want := time.Date(2026, 8, 31, 23, 55, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractMetarHappyPath(t *testing.T) {
	r := report.Parse("METAR KJFK 221951Z 24012KT 10SM FEW250 24/18 A3012 RMK AO2 SLP201")
	receivedAt := time.Date(2026, 8, 22, 19, 55, 0, 0, time.UTC)

	obs, err := Extract(receivedAt, "METAR KJFK 221951Z 24012KT 10SM FEW250 24/18 A3012 RMK AO2 SLP201", r)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if obs.Station != "KJFK" {
		t.Errorf("station = %q, want KJFK", obs.Station)
	}
	if obs.ReportType != report.ReportMetar {
		t.Errorf("report type = %v, want ReportMetar", obs.ReportType)
	}
	if !obs.Valid {
		t.Error("expected a well-formed report to be valid")
	}
	want := time.Date(2026, 8, 22, 19, 51, 0, 0, time.UTC)
	if !obs.ReportTime.Equal(want) {
		t.Errorf("report time = %v, want %v", obs.ReportTime, want)
	}
}

func TestExtractMissingLocationIsError(t *testing.T) {
	r := report.Result{ReportType: report.ReportMetar}
	if _, err := Extract(time.Now(), "", r); err == nil {
		t.Error("expected error for a result with no location group")
	}
}

func TestExtractAndUpdateRoutesTafToUpdateTaf(t *testing.T) {
	store := &fakeStore{}
	tracker := NewStationTracker(store, clockwork.NewFakeClock())

	raw := "TAF KJFK 221730Z 2218/2324 24012KT P6SM FEW250 BECMG 2300/2302 18008KT"
	r := report.Parse(raw)

	snap, err := ExtractAndUpdate(context.Background(), tracker, time.Date(2026, 8, 22, 17, 35, 0, 0, time.UTC), raw, r)
	if err != nil {
		t.Fatalf("extract and update: %v", err)
	}
	if !snap.HasTaf() || snap.HasMetar() {
		t.Errorf("expected only taf recorded, got %+v", snap)
	}
	if store.tafCalls != 1 || store.metarCalls != 0 {
		t.Errorf("tafCalls=%d metarCalls=%d", store.tafCalls, store.metarCalls)
	}
}
