package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Report represents a stored parsed report, as browsed by the review
// server.
type Report struct {
	ID           int64
	ReceivedAt   time.Time
	Station      string
	ReportType   string
	RawText      string
	GroupsJSON   string
	ParseError   string
	GroupCount   int
	InvalidCount int
	IsGolden     bool
	Annotation   string
	ExpectedJSON string
}

// SQLiteDB wraps a SQLite database connection used by the review
// server -- a single-file store, distinct from the ClickHouse/PostgreSQL
// pair the ingestion daemon writes. Rows are added through Insert;
// neither cmd/metarparse nor cmd/metar-ingest calls it.
type SQLiteDB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (d *SQLiteDB) Close() error {
	return d.db.Close()
}

func createSQLiteSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at TEXT NOT NULL,
		station TEXT NOT NULL,
		report_type TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		groups_json TEXT NOT NULL,
		parse_error TEXT,
		group_count INTEGER,
		invalid_count INTEGER,
		created_at TEXT DEFAULT (datetime('now')),
		is_golden INTEGER DEFAULT 0,
		annotation TEXT,
		expected_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_station ON reports(station);
	CREATE INDEX IF NOT EXISTS idx_reports_report_type ON reports(report_type);
	CREATE INDEX IF NOT EXISTS idx_reports_parse_error ON reports(parse_error);
	CREATE INDEX IF NOT EXISTS idx_reports_received_at ON reports(received_at);
	CREATE INDEX IF NOT EXISTS idx_reports_golden ON reports(is_golden);

	CREATE VIRTUAL TABLE IF NOT EXISTS reports_fts USING fts5(
		raw_text,
		content='reports',
		content_rowid='id'
	);

	CREATE TRIGGER IF NOT EXISTS reports_ai AFTER INSERT ON reports BEGIN
		INSERT INTO reports_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS reports_ad AFTER DELETE ON reports BEGIN
		INSERT INTO reports_fts(reports_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS reports_au AFTER UPDATE ON reports BEGIN
		INSERT INTO reports_fts(reports_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
		INSERT INTO reports_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;
	`
	_, err := db.Exec(schema)
	return err
}

// InsertParams contains the parameters for inserting a report.
type InsertParams struct {
	ReceivedAt   string
	Station      string
	ReportType   string
	RawText      string
	Groups       interface{}
	ParseError   string
	GroupCount   int
	InvalidCount int
}

// Insert stores a parsed report in the database.
func (d *SQLiteDB) Insert(p InsertParams) (int64, error) {
	groupsJSON, err := json.Marshal(p.Groups)
	if err != nil {
		return 0, fmt.Errorf("marshal groups: %w", err)
	}

	result, err := d.db.Exec(`
		INSERT INTO reports (received_at, station, report_type, raw_text, groups_json, parse_error, group_count, invalid_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ReceivedAt, p.Station, p.ReportType, p.RawText, string(groupsJSON), p.ParseError, p.GroupCount, p.InvalidCount)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	return result.LastInsertId()
}

// QueryParams contains filtering options for querying reports.
type QueryParams struct {
	ID         int64
	Station    string
	ReportType string
	HasError   bool
	FullText   string
	Limit      int
	Offset     int
	OrderBy    string
	OrderDesc  bool
}

// Query retrieves reports matching the given parameters.
func (d *SQLiteDB) Query(p QueryParams) ([]Report, error) {
	var conditions []string
	var args []interface{}

	if p.ID != 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, p.ID)
	}
	if p.Station != "" {
		conditions = append(conditions, "station = ?")
		args = append(args, p.Station)
	}
	if p.ReportType != "" {
		conditions = append(conditions, "report_type = ?")
		args = append(args, p.ReportType)
	}
	if p.HasError {
		conditions = append(conditions, "parse_error != '' AND parse_error IS NOT NULL")
	}

	var query string
	if p.FullText != "" {
		query = `SELECT r.id, r.received_at, r.station, r.report_type, r.raw_text, r.groups_json,
				r.parse_error, r.group_count, r.invalid_count, r.is_golden, r.annotation, r.expected_json
				FROM reports r
				JOIN reports_fts fts ON r.id = fts.rowid
				WHERE reports_fts MATCH ?`
		args = append([]interface{}{p.FullText}, args...)
		if len(conditions) > 0 {
			query += " AND " + strings.Join(conditions, " AND ")
		}
	} else {
		query = `SELECT id, received_at, station, report_type, raw_text, groups_json,
				parse_error, group_count, invalid_count, is_golden, annotation, expected_json
				FROM reports`
		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}
	}

	orderField := "id"
	if p.OrderBy != "" {
		switch p.OrderBy {
		case "received_at", "report_type", "station":
			orderField = p.OrderBy
		}
	}
	direction := "ASC"
	if p.OrderDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderField, direction)

	limit := 100
	if p.Limit > 0 {
		limit = p.Limit
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, p.Offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []Report
	for rows.Next() {
		var r Report
		var receivedAt, parseError, annotation, expectedJSON sql.NullString
		var isGolden sql.NullInt64

		err := rows.Scan(&r.ID, &receivedAt, &r.Station, &r.ReportType, &r.RawText, &r.GroupsJSON,
			&parseError, &r.GroupCount, &r.InvalidCount, &isGolden, &annotation, &expectedJSON)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if receivedAt.Valid {
			r.ReceivedAt, _ = time.Parse(time.RFC3339, receivedAt.String)
		}
		if parseError.Valid {
			r.ParseError = parseError.String
		}
		if isGolden.Valid {
			r.IsGolden = isGolden.Int64 == 1
		}
		if annotation.Valid {
			r.Annotation = annotation.String
		}
		if expectedJSON.Valid {
			r.ExpectedJSON = expectedJSON.String
		}

		reports = append(reports, r)
	}

	return reports, rows.Err()
}

// Stats returns aggregate statistics about stored reports.
type Stats struct {
	TotalReports   int
	ByReportType   map[string]int
	ByStation      map[string]int
	WithErrors     int
	TopParseErrors map[string]int
}

// GetStats returns statistics about the stored reports.
func (d *SQLiteDB) GetStats() (*Stats, error) {
	stats := &Stats{
		ByReportType:   make(map[string]int),
		ByStation:      make(map[string]int),
		TopParseErrors: make(map[string]int),
	}

	row := d.db.QueryRow("SELECT COUNT(*) FROM reports")
	if err := row.Scan(&stats.TotalReports); err != nil {
		return nil, err
	}

	rows, err := d.db.Query("SELECT report_type, COUNT(*) FROM reports GROUP BY report_type ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByReportType[typ] = count
	}
	_ = rows.Close()

	rows, err = d.db.Query("SELECT station, COUNT(*) FROM reports GROUP BY station ORDER BY COUNT(*) DESC LIMIT 20")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var station string
		var count int
		if err := rows.Scan(&station, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByStation[station] = count
	}
	_ = rows.Close()

	row = d.db.QueryRow("SELECT COUNT(*) FROM reports WHERE parse_error != '' AND parse_error IS NOT NULL")
	if err := row.Scan(&stats.WithErrors); err != nil {
		return nil, err
	}

	rows, err = d.db.Query("SELECT parse_error, COUNT(*) FROM reports WHERE parse_error != '' AND parse_error IS NOT NULL GROUP BY parse_error")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var errText string
		var count int
		if err := rows.Scan(&errText, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.TopParseErrors[errText] = count
	}
	_ = rows.Close()

	return stats, nil
}

// Distinct returns distinct values for a given column.
func (d *SQLiteDB) Distinct(column string) ([]string, error) {
	validColumns := map[string]bool{
		"station": true, "report_type": true,
	}
	if !validColumns[column] {
		return nil, fmt.Errorf("invalid column: %s", column)
	}

	query := fmt.Sprintf("SELECT DISTINCT %s FROM reports WHERE %s IS NOT NULL AND %s != '' ORDER BY %s", column, column, column, column)
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// GetByID retrieves a single report by ID.
func (d *SQLiteDB) GetByID(id int64) (*Report, error) {
	query := `SELECT id, received_at, station, report_type, raw_text, groups_json,
			parse_error, group_count, invalid_count, is_golden, annotation, expected_json
			FROM reports WHERE id = ?`

	var r Report
	var receivedAt, parseError, annotation, expectedJSON sql.NullString
	var isGolden sql.NullInt64

	err := d.db.QueryRow(query, id).Scan(&r.ID, &receivedAt, &r.Station, &r.ReportType, &r.RawText, &r.GroupsJSON,
		&parseError, &r.GroupCount, &r.InvalidCount, &isGolden, &annotation, &expectedJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if receivedAt.Valid {
		r.ReceivedAt, _ = time.Parse(time.RFC3339, receivedAt.String)
	}
	if parseError.Valid {
		r.ParseError = parseError.String
	}
	if isGolden.Valid {
		r.IsGolden = isGolden.Int64 == 1
	}
	if annotation.Valid {
		r.Annotation = annotation.String
	}
	if expectedJSON.Valid {
		r.ExpectedJSON = expectedJSON.String
	}

	return &r, nil
}

// SetGolden marks or unmarks a report as golden.
func (d *SQLiteDB) SetGolden(id int64, golden bool) error {
	val := 0
	if golden {
		val = 1
	}
	_, err := d.db.Exec(`UPDATE reports SET is_golden = ? WHERE id = ?`, val, id)
	return err
}

// SetAnnotation sets the annotation for a report.
func (d *SQLiteDB) SetAnnotation(id int64, annotation string) error {
	_, err := d.db.Exec(`UPDATE reports SET annotation = ? WHERE id = ?`, annotation, id)
	return err
}

// SetExpectedJSON sets the expected JSON for a report.
func (d *SQLiteDB) SetExpectedJSON(id int64, expectedJSON string) error {
	_, err := d.db.Exec(`UPDATE reports SET expected_json = ? WHERE id = ?`, expectedJSON, id)
	return err
}

// GetGoldenReports retrieves all reports marked as golden.
func (d *SQLiteDB) GetGoldenReports() ([]Report, error) {
	all, err := d.Query(QueryParams{Limit: 100000})
	if err != nil {
		return nil, err
	}
	golden := make([]Report, 0, len(all))
	for _, r := range all {
		if r.IsGolden {
			golden = append(golden, r)
		}
	}
	return golden, nil
}

// CountByStation returns report counts grouped by station.
func (d *SQLiteDB) CountByStation() (map[string]int, error) {
	counts := make(map[string]int)
	rows, err := d.db.Query("SELECT station, COUNT(*) FROM reports GROUP BY station")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var station string
		var count int
		if err := rows.Scan(&station, &count); err != nil {
			return nil, err
		}
		counts[station] = count
	}
	return counts, rows.Err()
}
