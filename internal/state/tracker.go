// Package state tracks the latest known METAR and TAF per reporting
// station in memory, backed by a persistent per-station store for
// durability across restarts.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Store is the persistence a StationTracker delegates to for durable
// per-station state. *storage.PostgresDB satisfies this without the
// package needing to import storage.
type Store interface {
	UpsertMetar(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error
	UpsertTaf(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error
	ListStale(ctx context.Context, cutoff time.Time) ([]string, error)
}

// StationTracker holds an in-memory cache of per-station report state,
// mirrored to Store on every update.
type StationTracker struct {
	mu       sync.RWMutex
	stations map[string]*StationSnapshot

	clock clockwork.Clock
	store Store

	onNewStation func(*StationSnapshot)
	onStale      func(station string)
}

// NewStationTracker creates a tracker backed by store. If clock is nil,
// clockwork.NewRealClock() is used.
func NewStationTracker(store Store, clock clockwork.Clock) *StationTracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StationTracker{
		stations: make(map[string]*StationSnapshot),
		clock:    clock,
		store:    store,
	}
}

// OnNewStation sets a callback fired the first time a station is seen.
func (t *StationTracker) OnNewStation(fn func(*StationSnapshot)) {
	t.onNewStation = fn
}

// OnStale sets a callback fired for each station found stale by SweepStale.
func (t *StationTracker) OnStale(fn func(station string)) {
	t.onStale = fn
}

func (t *StationTracker) snapshotFor(station string) (*StationSnapshot, bool) {
	s, exists := t.stations[station]
	if !exists {
		now := t.clock.Now()
		s = &StationSnapshot{Station: station, FirstSeen: now}
		t.stations[station] = s
	}
	return s, !exists
}

// UpdateMetar records a newly parsed METAR as the station's latest,
// both in memory and in the backing store. Returns the updated
// snapshot and whether the station was seen for the first time.
func (t *StationTracker) UpdateMetar(ctx context.Context, station string, reportTime time.Time, raw string, valid bool, groupCount int, parsed interface{}) (*StationSnapshot, bool, error) {
	t.mu.Lock()
	s, isNew := t.snapshotFor(station)

	if !s.LatestMetarTime.IsZero() && !reportTime.After(s.LatestMetarTime) {
		t.touch(s)
		t.mu.Unlock()
		return s, isNew, nil
	}

	s.LatestMetarTime = reportTime
	s.LatestMetarRaw = raw
	s.LatestMetarValid = valid
	s.LatestMetarGroupCount = groupCount
	t.touch(s)
	t.mu.Unlock()

	if isNew && t.onNewStation != nil {
		t.onNewStation(s)
	}
	if t.store == nil {
		return s, isNew, nil
	}
	return s, isNew, t.store.UpsertMetar(ctx, station, reportTime, raw, parsed)
}

// UpdateTaf records a newly parsed TAF as the station's latest, both
// in memory and in the backing store.
func (t *StationTracker) UpdateTaf(ctx context.Context, station string, reportTime time.Time, raw string, valid bool, groupCount int, parsed interface{}) (*StationSnapshot, bool, error) {
	t.mu.Lock()
	s, isNew := t.snapshotFor(station)

	if !s.LatestTafTime.IsZero() && !reportTime.After(s.LatestTafTime) {
		t.touch(s)
		t.mu.Unlock()
		return s, isNew, nil
	}

	s.LatestTafTime = reportTime
	s.LatestTafRaw = raw
	s.LatestTafValid = valid
	s.LatestTafGroupCount = groupCount
	t.touch(s)
	t.mu.Unlock()

	if isNew && t.onNewStation != nil {
		t.onNewStation(s)
	}
	if t.store == nil {
		return s, isNew, nil
	}
	return s, isNew, t.store.UpsertTaf(ctx, station, reportTime, raw, parsed)
}

// touch bumps LastSeen and the report count. Caller must hold t.mu.
func (t *StationTracker) touch(s *StationSnapshot) {
	s.LastSeen = t.clock.Now()
	s.ReportCount++
}

// GetStation returns the current snapshot for a station, or nil.
func (t *StationTracker) GetStation(station string) *StationSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stations[station]
}

// ListActive returns every station seen within the given duration.
func (t *StationTracker) ListActive(within time.Duration) []*StationSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := t.clock.Now().Add(-within)
	result := make([]*StationSnapshot, 0, len(t.stations))
	for _, s := range t.stations {
		if s.LastSeen.After(cutoff) {
			result = append(result, s)
		}
	}
	return result
}

// CleanupStale removes stations untouched for longer than olderThan
// from the in-memory cache.
func (t *StationTracker) CleanupStale(olderThan time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.clock.Now().Add(-olderThan)
	removed := 0
	for station, s := range t.stations {
		if s.LastSeen.Before(cutoff) {
			delete(t.stations, station)
			removed++
		}
	}
	return removed
}

// SweepStale asks the backing store for stations not heard from within
// olderThan and fires onStale for each, for alerting on silent airports.
func (t *StationTracker) SweepStale(ctx context.Context, olderThan time.Duration) ([]string, error) {
	if t.store == nil {
		return nil, nil
	}
	stale, err := t.store.ListStale(ctx, t.clock.Now().Add(-olderThan))
	if err != nil {
		return nil, err
	}
	if t.onStale != nil {
		for _, station := range stale {
			t.onStale(station)
		}
	}
	return stale, nil
}

// Stats summarizes the in-memory tracker state.
type Stats struct {
	TrackedStations int
}

// GetStats returns the current tracker statistics.
func (t *StationTracker) GetStats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Stats{TrackedStations: len(t.stations)}
}
