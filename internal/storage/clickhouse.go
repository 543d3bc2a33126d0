// Package storage provides persistent storage for parsed METAR/TAF
// reports, split across three backends the way the ingestion
// pipeline needs them: ClickHouse for append-only history, PostgreSQL
// for mutable per-station state, and SQLite for the standalone
// review tool.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for parsed-report history.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying ClickHouse connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the ClickHouse tables.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id              UInt64,
			received_at     DateTime64(3),
			station         LowCardinality(String),
			report_type     LowCardinality(String),
			report_time     DateTime64(0),
			raw_text        String,
			groups_json     String,
			parse_error     LowCardinality(String),
			group_count     UInt16,
			invalid_count   UInt16,
			created_at      DateTime64(3) DEFAULT now64(3)
		)
		ENGINE = MergeTree()
		PARTITION BY toYYYYMM(received_at)
		ORDER BY (station, received_at, id)
		SETTINGS index_granularity = 8192`,
	}

	for _, q := range queries {
		if err := d.conn.Exec(ctx, q); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	_ = d.conn.Exec(ctx, `ALTER TABLE reports ADD INDEX IF NOT EXISTS idx_raw_text_bloom raw_text TYPE tokenbf_v1(32768, 3, 0) GRANULARITY 1`)

	return nil
}

// CHReport represents one parsed report stored in ClickHouse.
type CHReport struct {
	ID           uint64
	ReceivedAt   time.Time
	Station      string
	ReportType   string
	ReportTime   time.Time
	RawText      string
	GroupsJSON   string
	ParseError   string
	GroupCount   int
	InvalidCount int
	CreatedAt    time.Time
}

// CHInsertParams contains parameters for inserting a report.
type CHInsertParams struct {
	ID           uint64
	ReceivedAt   time.Time
	Station      string
	ReportType   string
	ReportTime   time.Time
	RawText      string
	Groups       interface{}
	ParseError   string
	GroupCount   int
	InvalidCount int
}

// Insert stores a single report in ClickHouse.
func (d *ClickHouseDB) Insert(ctx context.Context, p CHInsertParams) error {
	groupsJSON, err := json.Marshal(p.Groups)
	if err != nil {
		return fmt.Errorf("marshal groups: %w", err)
	}

	err = d.conn.Exec(ctx, `
		INSERT INTO reports (id, received_at, station, report_type, report_time, raw_text, groups_json, parse_error, group_count, invalid_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ReceivedAt, p.Station, p.ReportType, p.ReportTime, p.RawText, string(groupsJSON), p.ParseError, p.GroupCount, p.InvalidCount)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	return nil
}

// InsertBatch stores multiple reports in ClickHouse efficiently, the
// ingestion daemon's steady-state write path.
func (d *ClickHouseDB) InsertBatch(ctx context.Context, reports []CHInsertParams) error {
	if len(reports) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO reports (id, received_at, station, report_type, report_time, raw_text, groups_json, parse_error, group_count, invalid_count)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range reports {
		groupsJSON, err := json.Marshal(p.Groups)
		if err != nil {
			return fmt.Errorf("marshal groups: %w", err)
		}

		err = batch.Append(p.ID, p.ReceivedAt, p.Station, p.ReportType, p.ReportTime, p.RawText, string(groupsJSON), p.ParseError, p.GroupCount, p.InvalidCount)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// CHQueryParams contains filtering options for querying report history.
type CHQueryParams struct {
	Station    string
	ReportType string
	HasError   bool
	FullText   string // LIKE match on raw_text.
	Limit      int
	Offset     int
}

// Query retrieves reports matching the given parameters, newest first.
func (d *ClickHouseDB) Query(ctx context.Context, p CHQueryParams) ([]CHReport, error) {
	var conditions []string
	var args []interface{}

	if p.Station != "" {
		conditions = append(conditions, "station = ?")
		args = append(args, p.Station)
	}
	if p.ReportType != "" {
		conditions = append(conditions, "report_type = ?")
		args = append(args, p.ReportType)
	}
	if p.HasError {
		conditions = append(conditions, "parse_error != ''")
	}
	if p.FullText != "" {
		conditions = append(conditions, "raw_text LIKE ?")
		args = append(args, "%"+p.FullText+"%")
	}

	query := `SELECT id, received_at, station, report_type, report_time, raw_text, groups_json, parse_error, group_count, invalid_count, created_at FROM reports`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY received_at DESC"

	limit := 100
	if p.Limit > 0 {
		limit = p.Limit
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, p.Offset)

	rows, err := d.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []CHReport
	for rows.Next() {
		var r CHReport
		if err := rows.Scan(&r.ID, &r.ReceivedAt, &r.Station, &r.ReportType, &r.ReportTime, &r.RawText,
			&r.GroupsJSON, &r.ParseError, &r.GroupCount, &r.InvalidCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// StationCounts returns report counts grouped by station, busiest first.
func (d *ClickHouseDB) StationCounts(ctx context.Context, limit int) (map[string]int, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(ctx, `SELECT station, COUNT(*) AS c FROM reports GROUP BY station ORDER BY c DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query station counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var station string
		var count uint64
		if err := rows.Scan(&station, &count); err != nil {
			return nil, err
		}
		counts[station] = int(count)
	}
	return counts, rows.Err()
}
