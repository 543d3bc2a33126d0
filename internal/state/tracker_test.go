package state

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type fakeStore struct {
	metarCalls int
	tafCalls   int
	lastRaw    string
	stale      []string
}

func (f *fakeStore) UpsertMetar(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error {
	f.metarCalls++
	f.lastRaw = raw
	return nil
}

func (f *fakeStore) UpsertTaf(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error {
	f.tafCalls++
	f.lastRaw = raw
	return nil
}

func (f *fakeStore) ListStale(ctx context.Context, cutoff time.Time) ([]string, error) {
	return f.stale, nil
}

func TestUpdateMetarNewStationFiresCallback(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := &fakeStore{}
	tracker := NewStationTracker(store, clock)

	var notified *StationSnapshot
	tracker.OnNewStation(func(s *StationSnapshot) { notified = s })

	t1 := clock.Now()
	snap, isNew, err := tracker.UpdateMetar(context.Background(), "KJFK", t1, "METAR KJFK 061200Z 00000KT CAVOK", true, 3, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !isNew {
		t.Error("expected first update to report a new station")
	}
	if notified == nil || notified.Station != "KJFK" {
		t.Errorf("onNewStation not fired correctly, got %+v", notified)
	}
	if snap.LatestMetarRaw != "METAR KJFK 061200Z 00000KT CAVOK" {
		t.Errorf("unexpected raw: %q", snap.LatestMetarRaw)
	}
	if store.metarCalls != 1 {
		t.Errorf("metarCalls = %d, want 1", store.metarCalls)
	}
}

func TestUpdateMetarOlderReportIgnored(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := &fakeStore{}
	tracker := NewStationTracker(store, clock)

	ctx := context.Background()
	newer := clock.Now()
	older := newer.Add(-time.Hour)

	if _, _, err := tracker.UpdateMetar(ctx, "KJFK", newer, "newer", true, 1, nil); err != nil {
		t.Fatalf("update newer: %v", err)
	}
	if _, _, err := tracker.UpdateMetar(ctx, "KJFK", older, "older", true, 1, nil); err != nil {
		t.Fatalf("update older: %v", err)
	}

	snap := tracker.GetStation("KJFK")
	if snap.LatestMetarRaw != "newer" {
		t.Errorf("latest raw = %q, want %q", snap.LatestMetarRaw, "newer")
	}
	if snap.ReportCount != 2 {
		t.Errorf("report count = %d, want 2 (still bumped on stale report)", snap.ReportCount)
	}
}

func TestUpdateTafIndependentOfMetar(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewStationTracker(&fakeStore{}, clock)
	ctx := context.Background()

	_, _, _ = tracker.UpdateMetar(ctx, "KJFK", clock.Now(), "metar raw", true, 1, nil)
	_, _, _ = tracker.UpdateTaf(ctx, "KJFK", clock.Now(), "taf raw", true, 5, nil)

	snap := tracker.GetStation("KJFK")
	if !snap.HasMetar() || !snap.HasTaf() {
		t.Fatalf("expected both metar and taf recorded, got %+v", snap)
	}
	if snap.LatestTafGroupCount != 5 {
		t.Errorf("taf group count = %d, want 5", snap.LatestTafGroupCount)
	}
}

func TestListActiveAndCleanupStale(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewStationTracker(&fakeStore{}, clock)
	ctx := context.Background()

	_, _, _ = tracker.UpdateMetar(ctx, "KJFK", clock.Now(), "a", true, 1, nil)
	clock.Advance(2 * time.Hour)
	_, _, _ = tracker.UpdateMetar(ctx, "KLAX", clock.Now(), "b", true, 1, nil)

	active := tracker.ListActive(time.Hour)
	if len(active) != 1 || active[0].Station != "KLAX" {
		t.Errorf("active=%+v, want only KLAX", active)
	}

	removed := tracker.CleanupStale(time.Hour)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if tracker.GetStation("KJFK") != nil {
		t.Error("expected KJFK evicted from the in-memory cache")
	}
}

func TestSweepStaleFiresCallback(t *testing.T) {
	store := &fakeStore{stale: []string{"KBOS"}}
	tracker := NewStationTracker(store, clockwork.NewFakeClock())

	var notified []string
	tracker.OnStale(func(station string) { notified = append(notified, station) })

	stale, err := tracker.SweepStale(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(stale) != 1 || stale[0] != "KBOS" {
		t.Errorf("stale=%v", stale)
	}
	if len(notified) != 1 || notified[0] != "KBOS" {
		t.Errorf("notified=%v", notified)
	}
}
