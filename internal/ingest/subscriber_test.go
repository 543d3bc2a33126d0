package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"metartaf/internal/state"
	"metartaf/internal/storage"
)

type fakeHistory struct {
	mu     sync.Mutex
	params []storage.CHInsertParams
}

func (h *fakeHistory) Insert(ctx context.Context, p storage.CHInsertParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.params = append(h.params, p)
	return nil
}

type fakeStore struct{}

func (fakeStore) UpsertMetar(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error {
	return nil
}
func (fakeStore) UpsertTaf(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error {
	return nil
}
func (fakeStore) ListStale(ctx context.Context, cutoff time.Time) ([]string, error) {
	return nil, nil
}

func newTestSubscriber(history History) *Subscriber {
	tracker := state.NewStationTracker(fakeStore{}, clockwork.NewFakeClock())
	return &Subscriber{
		subject: "reports.raw",
		history: history,
		tracker: tracker,
		metrics: NewMetricsForTesting(),
		now:     func() time.Time { return time.Date(2026, 8, 22, 19, 55, 0, 0, time.UTC) },
	}
}

func TestHandlePlainTextReport(t *testing.T) {
	history := &fakeHistory{}
	s := newTestSubscriber(history)

	s.handle(context.Background(), []byte("METAR KJFK 221951Z 24012KT 10SM FEW250 24/18 A3012 RMK AO2 SLP201"))

	if len(history.params) != 1 {
		t.Fatalf("expected 1 history insert, got %d", len(history.params))
	}
	if history.params[0].Station != "KJFK" {
		t.Errorf("station = %q, want KJFK", history.params[0].Station)
	}
	if history.params[0].ReportType != "metar" {
		t.Errorf("report type = %q, want metar", history.params[0].ReportType)
	}
}

func TestHandleBlankMessageIsDropped(t *testing.T) {
	history := &fakeHistory{}
	s := newTestSubscriber(history)

	s.handle(context.Background(), []byte("   "))

	if len(history.params) != 0 {
		t.Errorf("expected no history insert for a blank message, got %d", len(history.params))
	}
}

func TestHandleMissingStationIsDropped(t *testing.T) {
	history := &fakeHistory{}
	s := newTestSubscriber(history)

	// No location group at all -- extraction fails and nothing is stored.
	s.handle(context.Background(), []byte("NOTAM TEXT WITH NO STATION CODE"))

	if len(history.params) != 0 {
		t.Errorf("expected no history insert when station extraction fails, got %d", len(history.params))
	}
}
