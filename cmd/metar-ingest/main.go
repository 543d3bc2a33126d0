// Command metar-ingest is the ingestion daemon: it subscribes to a
// NATS subject carrying raw METAR/TAF report text, parses and tracks
// each report, writes the append-only history to ClickHouse and the
// latest-per-station state to PostgreSQL, and optionally serves the
// review UI over the same process.
//
// Usage:
//
//	metar-ingest [options]
//
// Options:
//
//	-nats-url URL        NATS server URL (default: nats://localhost:4222, env: NATS_URL)
//	-subject SUBJECT     NATS subject to subscribe to (default: reports.raw, env: NATS_SUBJECT)
//	-ch-host HOST        ClickHouse host (default: localhost, env: CLICKHOUSE_HOST)
//	-ch-port PORT        ClickHouse port (default: 9000, env: CLICKHOUSE_PORT)
//	-pg-host HOST        PostgreSQL host (default: localhost, env: POSTGRES_HOST)
//	-pg-port PORT        PostgreSQL port (default: 5432, env: POSTGRES_PORT)
//	-review              Also serve the review UI in this process
//	-review-port N       Review UI port (default: 8080)
//	-review-db PATH      SQLite database backing the review UI (default: review.db)
//	-stale-sweep DUR     How often to sweep for stale stations (default: 10m)
//	-stale-after DUR     How long a station may go quiet before it's stale (default: 1h)
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"metartaf/internal/ingest"
	"metartaf/internal/review"
	"metartaf/internal/state"
	"metartaf/internal/storage"
)

func main() {
	// Local dev convenience: load a .env file if present. Silently
	// continue if there isn't one; production deploys set real env vars.
	_ = godotenv.Load()

	natsURL := flag.String("nats-url", envOrDefault("NATS_URL", "nats://localhost:4222"), "NATS server URL")
	subject := flag.String("subject", envOrDefault("NATS_SUBJECT", "reports.raw"), "NATS subject to subscribe to")

	chHost := flag.String("ch-host", envOrDefault("CLICKHOUSE_HOST", "localhost"), "ClickHouse host")
	chPort := flag.Int("ch-port", envOrDefaultInt("CLICKHOUSE_PORT", 9000), "ClickHouse port")
	chDB := flag.String("ch-database", envOrDefault("CLICKHOUSE_DATABASE", "metartaf"), "ClickHouse database")
	chUser := flag.String("ch-user", envOrDefault("CLICKHOUSE_USER", "default"), "ClickHouse user")
	chPassword := flag.String("ch-password", envOrDefault("CLICKHOUSE_PASSWORD", ""), "ClickHouse password")

	pgHost := flag.String("pg-host", envOrDefault("POSTGRES_HOST", "localhost"), "PostgreSQL host")
	pgPort := flag.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", 5432), "PostgreSQL port")
	pgDB := flag.String("pg-database", envOrDefault("POSTGRES_DATABASE", "metartaf_state"), "PostgreSQL database")
	pgUser := flag.String("pg-user", envOrDefault("POSTGRES_USER", "metartaf"), "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOrDefault("POSTGRES_PASSWORD", "metartaf"), "PostgreSQL password")

	runReview := flag.Bool("review", false, "Also serve the review UI in this process")
	reviewPort := flag.Int("review-port", 8080, "Review UI port")
	reviewDB := flag.String("review-db", "review.db", "SQLite database backing the review UI")

	staleSweep := flag.Duration("stale-sweep", 10*time.Minute, "How often to sweep for stale stations")
	staleAfter := flag.Duration("stale-after", time.Hour, "How long a station may go quiet before it's stale")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ch, err := storage.OpenClickHouse(ctx, storage.ClickHouseConfig{
		Host: *chHost, Port: *chPort, Database: *chDB, User: *chUser, Password: *chPassword,
	})
	if err != nil {
		log.Fatalf("opening clickhouse: %v", err)
	}
	defer ch.Close()
	if err := ch.CreateSchema(ctx); err != nil {
		log.Fatalf("clickhouse schema: %v", err)
	}

	pg, err := storage.OpenPostgres(ctx, storage.PostgresConfig{
		Host: *pgHost, Port: *pgPort, Database: *pgDB, User: *pgUser, Password: *pgPassword,
	})
	if err != nil {
		log.Fatalf("opening postgres: %v", err)
	}
	defer pg.Close()
	if err := pg.CreateSchema(ctx); err != nil {
		log.Fatalf("postgres schema: %v", err)
	}

	tracker := state.NewStationTracker(pg, nil)
	tracker.OnNewStation(func(s *state.StationSnapshot) {
		log.Printf("new station seen: %s", s.Station)
	})
	tracker.OnStale(func(station string) {
		log.Printf("station gone stale: %s", station)
	})

	metrics := ingest.NewMetrics()
	sub, err := ingest.Connect(ingest.Config{URL: *natsURL, Subject: *subject}, ch, tracker, metrics)
	if err != nil {
		log.Fatalf("connecting to nats: %v", err)
	}
	defer sub.Close()

	go runStaleSweeper(ctx, tracker, *staleSweep, *staleAfter)

	if *runReview {
		go runReviewServer(*reviewDB, *reviewPort)
	}

	log.Printf("metar-ingest subscribed to %q at %s", *subject, *natsURL)
	if err := sub.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("subscriber: %v", err)
	}
	log.Println("metar-ingest shutting down")
}

func runStaleSweeper(ctx context.Context, tracker *state.StationTracker, every, after time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := tracker.SweepStale(ctx, after); err != nil {
				log.Printf("stale sweep: %v", err)
			}
		}
	}
}

func runReviewServer(dbPath string, port int) {
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Printf("review UI disabled: opening sqlite: %v", err)
		return
	}
	srv := review.NewServer(db, port, "")
	if err := srv.Run(); err != nil {
		log.Printf("review UI exited: %v", err)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
