// Package api provides a REST API for querying the latest known
// METAR/TAF state per reporting station.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"metartaf/internal/storage"
)

// QueryServer provides REST API access to the latest per-station
// METAR/TAF state held in PostgreSQL.
type QueryServer struct {
	pg          *storage.PostgresDB
	port        int
	authEnabled bool
	apiKeys     map[string]bool // Simple API key auth (when enabled).
}

// Config holds configuration for the query API server.
type Config struct {
	Port        int
	AuthEnabled bool
	APIKeys     []string // List of valid API keys.
}

// NewQueryServer creates a new station-query API server.
func NewQueryServer(pg *storage.PostgresDB, cfg Config) *QueryServer {
	keys := make(map[string]bool)
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = true
		}
	}

	return &QueryServer{
		pg:          pg,
		port:        cfg.Port,
		authEnabled: cfg.AuthEnabled,
		apiKeys:     keys,
	}
}

// Run starts the HTTP server.
func (s *QueryServer) Run() error {
	r := chi.NewRouter()

	// Standard middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for browser access.
	r.Use(corsMiddleware)

	r.Mount("/api/v1", s.Router())

	addr := ":" + strconv.Itoa(s.port)
	log.Printf("Query API starting at http://localhost%s", addr)
	if s.authEnabled {
		log.Printf("Authentication: ENABLED (API key required)")
	} else {
		log.Printf("Authentication: DISABLED (open access)")
	}

	return http.ListenAndServe(addr, r)
}

// Router returns the configured chi router, for Run or for embedding
// under another prefix.
func (s *QueryServer) Router() chi.Router {
	r := chi.NewRouter()

	// Optional authentication.
	if s.authEnabled {
		r.Use(s.authMiddleware)
	}

	// Health check (no auth required beyond the middleware above).
	r.Get("/health", s.handleHealth)

	// Station query endpoints.
	r.Get("/stations/{station}", s.handleGetStation)
	r.Get("/stations/{station}/metar", s.handleGetMetar)
	r.Get("/stations/{station}/taf", s.handleGetTaf)

	// Batch lookup for multiple stations.
	r.Post("/stations/batch", s.handleBatchStations)

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates API key authentication.
func (s *QueryServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check X-API-Key header first.
		apiKey := r.Header.Get("X-API-Key")

		// Fall back to Authorization: Bearer <key>.
		if apiKey == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				apiKey = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		// Fall back to query parameter (for simple testing).
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}

		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}

		if !s.apiKeys[apiKey] {
			writeError(w, http.StatusForbidden, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// StationResponse is the JSON response for a station's latest known state.
type StationResponse struct {
	Station        string `json:"station"`
	LatestMetarRaw string `json:"latest_metar_raw,omitempty"`
	LatestMetarAt  string `json:"latest_metar_at,omitempty"`
	LatestTafRaw   string `json:"latest_taf_raw,omitempty"`
	LatestTafAt    string `json:"latest_taf_at,omitempty"`
	ReportCount    int    `json:"report_count"`
	LastSeen       string `json:"last_seen"`
}

func stationStateToResponse(s *storage.StationState) StationResponse {
	resp := StationResponse{
		Station:        s.Station,
		LatestMetarRaw: s.LatestMetarRaw,
		LatestTafRaw:   s.LatestTafRaw,
		ReportCount:    s.ReportCount,
		LastSeen:       s.LastSeen.Format(time.RFC3339),
	}
	if s.LatestMetarTime != nil {
		resp.LatestMetarAt = s.LatestMetarTime.Format(time.RFC3339)
	}
	if s.LatestTafTime != nil {
		resp.LatestTafAt = s.LatestTafTime.Format(time.RFC3339)
	}
	return resp
}

func (s *QueryServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *QueryServer) handleGetStation(w http.ResponseWriter, r *http.Request) {
	station := strings.ToUpper(chi.URLParam(r, "station"))
	if station == "" {
		writeError(w, http.StatusBadRequest, "station is required")
		return
	}

	state, err := s.pg.GetStationState(r.Context(), station)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if state == nil {
		writeError(w, http.StatusNotFound, "no state found for station")
		return
	}

	writeJSON(w, http.StatusOK, stationStateToResponse(state))
}

func (s *QueryServer) handleGetMetar(w http.ResponseWriter, r *http.Request) {
	station := strings.ToUpper(chi.URLParam(r, "station"))
	if station == "" {
		writeError(w, http.StatusBadRequest, "station is required")
		return
	}

	state, err := s.pg.GetStationState(r.Context(), station)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if state == nil || state.LatestMetarTime == nil {
		writeError(w, http.StatusNotFound, "no metar found for station")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"station":  station,
		"raw_text": state.LatestMetarRaw,
		"time":     state.LatestMetarTime.Format(time.RFC3339),
	})
}

func (s *QueryServer) handleGetTaf(w http.ResponseWriter, r *http.Request) {
	station := strings.ToUpper(chi.URLParam(r, "station"))
	if station == "" {
		writeError(w, http.StatusBadRequest, "station is required")
		return
	}

	state, err := s.pg.GetStationState(r.Context(), station)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if state == nil || state.LatestTafTime == nil {
		writeError(w, http.StatusNotFound, "no taf found for station")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"station":  station,
		"raw_text": state.LatestTafRaw,
		"time":     state.LatestTafTime.Format(time.RFC3339),
	})
}

// BatchRequest is the request body for batch station lookups.
type BatchRequest struct {
	Stations []string `json:"stations"`
}

// BatchResponse is the response for batch station lookups.
type BatchResponse struct {
	Results map[string]StationResponse `json:"results"`
	Errors  map[string]string          `json:"errors,omitempty"`
}

func (s *QueryServer) handleBatchStations(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if len(req.Stations) == 0 {
		writeError(w, http.StatusBadRequest, "no stations specified")
		return
	}
	if len(req.Stations) > 100 {
		writeError(w, http.StatusBadRequest, "maximum 100 stations per batch request")
		return
	}

	ctx := r.Context()
	resp := BatchResponse{
		Results: make(map[string]StationResponse),
		Errors:  make(map[string]string),
	}

	for _, raw := range req.Stations {
		station := strings.ToUpper(strings.TrimSpace(raw))
		if station == "" {
			continue
		}

		state, err := s.pg.GetStationState(ctx, station)
		if err != nil {
			resp.Errors[station] = err.Error()
			continue
		}
		if state != nil {
			resp.Results[station] = stationStateToResponse(state)
		}
	}

	if len(resp.Errors) == 0 {
		resp.Errors = nil
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
