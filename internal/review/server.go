// Package review provides a small web UI for browsing parsed METAR/TAF
// reports and marking golden test cases.
package review

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"metartaf/internal/storage"
)

// Server provides the review web UI and JSON API over a SQLite report
// store (storage.SQLiteDB). Neither the batch CLI nor the ingestion
// daemon writes reports into that store.
type Server struct {
	db         *storage.SQLiteDB
	port       int
	reportType string // optional filter: "metar" or "taf"
}

// NewServer creates a new review server.
func NewServer(db *storage.SQLiteDB, port int, reportType string) *Server {
	return &Server{db: db, port: port, reportType: reportType}
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/reports", s.handleReports)
	mux.HandleFunc("/api/reports/", s.handleReport) // /api/reports/{id}[/golden|/annotation|/expected]
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/stations", s.handleStations)
	mux.HandleFunc("/api/export/golden", s.handleExportGolden)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Review UI starting at http://localhost%s", addr)
	if s.reportType != "" {
		log.Printf("Filtering to report type: %s", s.reportType)
	}

	return http.ListenAndServe(addr, mux)
}

// handleIndex serves a minimal single-page browser for the stored
// reports; the API above is what it calls for data.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// APIReport is the JSON representation of a stored report.
type APIReport struct {
	ID           int64           `json:"id"`
	ReceivedAt   string          `json:"received_at"`
	Station      string          `json:"station"`
	ReportType   string          `json:"report_type"`
	RawText      string          `json:"raw_text"`
	Groups       json.RawMessage `json:"groups,omitempty"`
	ParseError   string          `json:"parse_error,omitempty"`
	GroupCount   int             `json:"group_count"`
	InvalidCount int             `json:"invalid_count"`
	IsGolden     bool            `json:"is_golden"`
	Annotation   string          `json:"annotation,omitempty"`
	Expected     json.RawMessage `json:"expected,omitempty"`
}

func reportToAPI(r *storage.Report) APIReport {
	api := APIReport{
		ID:           r.ID,
		ReceivedAt:   r.ReceivedAt.Format("2006-01-02 15:04:05"),
		Station:      r.Station,
		ReportType:   r.ReportType,
		RawText:      r.RawText,
		ParseError:   r.ParseError,
		GroupCount:   r.GroupCount,
		InvalidCount: r.InvalidCount,
		IsGolden:     r.IsGolden,
		Annotation:   r.Annotation,
	}
	if r.GroupsJSON != "" {
		api.Groups = json.RawMessage(r.GroupsJSON)
	}
	if r.ExpectedJSON != "" {
		api.Expected = json.RawMessage(r.ExpectedJSON)
	}
	return api
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	params := storage.QueryParams{
		Station:    q.Get("station"),
		ReportType: q.Get("type"),
		HasError:   q.Get("has_error") == "true",
		FullText:   q.Get("search"),
		OrderBy:    q.Get("order"),
		OrderDesc:  q.Get("desc") != "false",
	}
	if s.reportType != "" && params.ReportType == "" {
		params.ReportType = s.reportType
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		params.Limit = limit
	} else {
		params.Limit = 50
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		params.Offset = offset
	}

	goldenOnly := q.Get("golden") == "true"

	reports, err := s.db.Query(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result := make([]APIReport, 0, len(reports))
	for _, rep := range reports {
		if goldenOnly && !rep.IsGolden {
			continue
		}
		result = append(result, reportToAPI(&rep))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "missing report id", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getReport(w, id)
	case http.MethodPost, http.MethodPatch:
		if len(parts) < 2 {
			http.Error(w, "no action specified", http.StatusBadRequest)
			return
		}
		switch parts[1] {
		case "golden":
			s.setGolden(w, r, id)
		case "annotation":
			s.setAnnotation(w, r, id)
		case "expected":
			s.setExpected(w, r, id)
		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getReport(w http.ResponseWriter, id int64) {
	rep, err := s.db.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rep == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reportToAPI(rep))
}

func (s *Server) setGolden(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Golden bool `json:"golden"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.db.SetGolden(id, req.Golden); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeOK(w)
}

func (s *Server) setAnnotation(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Annotation string `json:"annotation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.db.SetAnnotation(id, req.Annotation); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeOK(w)
}

func (s *Server) setExpected(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Expected map[string]interface{} `json:"expected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expectedJSON, err := json.Marshal(req.Expected)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.db.SetExpectedJSON(id, string(expectedJSON)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeOK(w)
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.db.GetStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	counts, err := s.db.CountByStation()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(counts)
}

func (s *Server) handleExportGolden(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	golden, err := s.db.GetGoldenReports()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result := make([]APIReport, 0, len(golden))
	for _, rep := range golden {
		if !rep.IsGolden {
			continue
		}
		result = append(result, reportToAPI(&rep))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=golden_reports.json")
	_ = json.NewEncoder(w).Encode(result)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>metartaf review</title></head>
<body>
<h1>METAR/TAF review</h1>
<p>See <code>/api/reports</code>, <code>/api/stats</code>, <code>/api/stations</code>, <code>/metrics</code>.</p>
</body>
</html>
`
