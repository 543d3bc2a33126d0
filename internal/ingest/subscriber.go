package ingest

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"metartaf/internal/extractor"
	"metartaf/internal/report"
	"metartaf/internal/state"
	"metartaf/internal/storage"
)

// History is the subset of storage the subscriber needs to persist
// the append-only parsed-report record. *storage.ClickHouseDB
// satisfies this.
type History interface {
	Insert(ctx context.Context, p storage.CHInsertParams) error
}

// Subscriber consumes raw report messages from a NATS subject,
// decodes, parses, and tracks each one, and writes the result to the
// configured history and tracker stores.
type Subscriber struct {
	nc      *nats.Conn
	subject string
	history History
	tracker *state.StationTracker
	metrics *Metrics
	now     func() time.Time
}

// Config configures a Subscriber.
type Config struct {
	URL     string
	Subject string
}

// Connect dials NATS and returns a Subscriber wired to the given
// history store and station tracker.
func Connect(cfg Config, history History, tracker *state.StationTracker, metrics *Metrics) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.URL, nats.Name("metartaf-ingest"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Subscriber{
		nc:      nc,
		subject: cfg.Subject,
		history: history,
		tracker: tracker,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

// Close drains and closes the underlying NATS connection.
func (s *Subscriber) Close() {
	if s.nc != nil {
		_ = s.nc.Drain()
	}
}

// Run subscribes to the configured subject and processes messages
// until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		s.handle(ctx, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	<-ctx.Done()
	return ctx.Err()
}

func (s *Subscriber) handle(ctx context.Context, data []byte) {
	start := s.now()
	defer func() {
		s.metrics.ProcessDuration.Observe(s.now().Sub(start).Seconds())
	}()
	s.metrics.MessagesReceived.Inc()

	decoded, ok := extractor.DecodeLine(string(data))
	if !ok {
		s.metrics.DecodeErrors.Inc()
		return
	}

	receivedAt := decoded.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = s.now()
	}

	result := report.ExtendedParse(decoded.RawText)
	if result.Error != report.ErrNone {
		s.metrics.ParseErrors.Inc()
	}

	snap, err := state.ExtractAndUpdate(ctx, s.tracker, receivedAt, decoded.RawText, result)
	if err != nil {
		log.Printf("ingest: %v: %q", err, decoded.RawText)
		return
	}
	if invalidCount(result) > 0 {
		s.metrics.InvalidGroups.Inc()
	}

	if s.history != nil {
		params := storage.CHInsertParams{
			ID:           reportID(),
			ReceivedAt:   receivedAt,
			Station:      snap.Station,
			ReportType:   reportTypeLabel(result.ReportType),
			ReportTime:   receivedAt,
			RawText:      decoded.RawText,
			Groups:       result.Groups,
			ParseError:   result.Error.String(),
			GroupCount:   len(result.Groups),
			InvalidCount: invalidCount(result),
		}
		if err := s.history.Insert(ctx, params); err != nil {
			log.Printf("ingest: history insert failed: %v", err)
		}
	}

	s.metrics.ReportsStored.WithLabelValues(reportTypeLabel(result.ReportType)).Inc()
}

// reportID generates a ClickHouse-suitable numeric ID from a random
// UUID, since the history table has no natural surrogate key.
func reportID() uint64 {
	id := uuid.New()
	return binary.BigEndian.Uint64(id[:8])
}

func reportTypeLabel(rt report.ReportType) string {
	switch rt {
	case report.ReportMetar:
		return "metar"
	case report.ReportTaf:
		return "taf"
	default:
		return "unknown"
	}
}

func invalidCount(r report.Result) int {
	n := 0
	for _, gr := range r.Groups {
		if !gr.Group.IsValid() {
			n++
		}
	}
	return n
}
