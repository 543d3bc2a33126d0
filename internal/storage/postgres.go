package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool for per-station state.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the PostgreSQL tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	-- Latest known state per reporting station.
	CREATE TABLE IF NOT EXISTS station_state (
		station             TEXT PRIMARY KEY,
		latest_metar_time   TIMESTAMPTZ,
		latest_metar_raw    TEXT,
		latest_metar_json   JSONB,
		latest_taf_time     TIMESTAMPTZ,
		latest_taf_raw      TEXT,
		latest_taf_json     JSONB,
		first_seen          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		report_count        INTEGER NOT NULL DEFAULT 1,
		synced_at           TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_station_state_last_seen ON station_state(last_seen);
	CREATE INDEX IF NOT EXISTS idx_station_state_synced ON station_state(synced_at);

	-- Golden annotations (references ClickHouse report IDs).
	CREATE TABLE IF NOT EXISTS golden_annotations (
		report_id       BIGINT PRIMARY KEY,
		is_golden       BOOLEAN NOT NULL DEFAULT FALSE,
		annotation      TEXT,
		expected_json   JSONB,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	_, err := d.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	_, _ = d.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_golden_is_golden ON golden_annotations(is_golden) WHERE is_golden = TRUE`)

	return nil
}

// StationState is the latest known METAR and TAF for one station.
type StationState struct {
	Station         string
	LatestMetarTime *time.Time
	LatestMetarRaw  string
	LatestMetarJSON string
	LatestTafTime   *time.Time
	LatestTafRaw    string
	LatestTafJSON   string
	FirstSeen       time.Time
	LastSeen        time.Time
	ReportCount     int
	SyncedAt        *time.Time
}

// UpsertMetar records a newly observed METAR as a station's latest,
// incrementing its report count.
func (d *PostgresDB) UpsertMetar(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error {
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("marshal parsed metar: %w", err)
	}
	_, err = d.pool.Exec(ctx, `
		INSERT INTO station_state (station, latest_metar_time, latest_metar_raw, latest_metar_json, last_seen)
		VALUES ($1, $2, $3, $4, $2)
		ON CONFLICT (station) DO UPDATE SET
			latest_metar_time = EXCLUDED.latest_metar_time,
			latest_metar_raw = EXCLUDED.latest_metar_raw,
			latest_metar_json = EXCLUDED.latest_metar_json,
			last_seen = EXCLUDED.last_seen,
			report_count = station_state.report_count + 1
		WHERE station_state.latest_metar_time IS NULL OR EXCLUDED.latest_metar_time > station_state.latest_metar_time
	`, station, reportTime, raw, string(parsedJSON))
	return err
}

// UpsertTaf records a newly observed TAF as a station's latest,
// incrementing its report count.
func (d *PostgresDB) UpsertTaf(ctx context.Context, station string, reportTime time.Time, raw string, parsed interface{}) error {
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("marshal parsed taf: %w", err)
	}
	_, err = d.pool.Exec(ctx, `
		INSERT INTO station_state (station, latest_taf_time, latest_taf_raw, latest_taf_json, last_seen)
		VALUES ($1, $2, $3, $4, $2)
		ON CONFLICT (station) DO UPDATE SET
			latest_taf_time = EXCLUDED.latest_taf_time,
			latest_taf_raw = EXCLUDED.latest_taf_raw,
			latest_taf_json = EXCLUDED.latest_taf_json,
			last_seen = EXCLUDED.last_seen,
			report_count = station_state.report_count + 1
		WHERE station_state.latest_taf_time IS NULL OR EXCLUDED.latest_taf_time > station_state.latest_taf_time
	`, station, reportTime, raw, string(parsedJSON))
	return err
}

// GetStationState retrieves one station's latest known state.
func (d *PostgresDB) GetStationState(ctx context.Context, station string) (*StationState, error) {
	var s StationState
	var metarTime, tafTime, syncedAt *time.Time
	var metarRaw, metarJSON, tafRaw, tafJSON *string
	err := d.pool.QueryRow(ctx, `
		SELECT station, latest_metar_time, latest_metar_raw, latest_metar_json,
			latest_taf_time, latest_taf_raw, latest_taf_json,
			first_seen, last_seen, report_count, synced_at
		FROM station_state WHERE station = $1
	`, station).Scan(&s.Station, &metarTime, &metarRaw, &metarJSON, &tafTime, &tafRaw, &tafJSON,
		&s.FirstSeen, &s.LastSeen, &s.ReportCount, &syncedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.LatestMetarTime, s.LatestTafTime, s.SyncedAt = metarTime, tafTime, syncedAt
	if metarRaw != nil {
		s.LatestMetarRaw = *metarRaw
	}
	if metarJSON != nil {
		s.LatestMetarJSON = *metarJSON
	}
	if tafRaw != nil {
		s.LatestTafRaw = *tafRaw
	}
	if tafJSON != nil {
		s.LatestTafJSON = *tafJSON
	}
	return &s, nil
}

// ListStale returns every station whose last_seen predates cutoff,
// used by the station tracker's staleness sweep.
func (d *PostgresDB) ListStale(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := d.pool.Query(ctx, `SELECT station FROM station_state WHERE last_seen < $1`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// SetGolden marks or unmarks a report as golden.
func (d *PostgresDB) SetGolden(ctx context.Context, reportID int64, golden bool) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO golden_annotations (report_id, is_golden)
		VALUES ($1, $2)
		ON CONFLICT (report_id) DO UPDATE SET is_golden = EXCLUDED.is_golden, updated_at = NOW()
	`, reportID, golden)
	return err
}

// SetAnnotation sets the review annotation for a report.
func (d *PostgresDB) SetAnnotation(ctx context.Context, reportID int64, annotation string) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO golden_annotations (report_id, annotation)
		VALUES ($1, $2)
		ON CONFLICT (report_id) DO UPDATE SET annotation = EXCLUDED.annotation, updated_at = NOW()
	`, reportID, annotation)
	return err
}
