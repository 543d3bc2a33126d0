package state

import (
	"context"
	"fmt"
	"time"

	"metartaf/internal/group"
	"metartaf/internal/report"
	"metartaf/internal/units"
)

// Observation is what ExtractAndUpdate pulls out of a parsed report
// before handing it to a StationTracker.
type Observation struct {
	Station    string
	ReportType report.ReportType
	ReportTime time.Time
	RawText    string
	Valid      bool
	GroupCount int
}

// stationAndTime pulls the ICAO location code and the report issuance
// time out of a parse result's header groups.
func stationAndTime(result report.Result) (station string, reportTime units.Time, hasTime bool) {
	for _, gr := range result.Groups {
		switch g := gr.Group.(type) {
		case group.LocationGroup:
			station = g.Code
		case group.ReportTimeGroup:
			reportTime = g.Time
			hasTime = true
		}
	}
	return station, reportTime, hasTime
}

// resolveReportTime combines a report's day/hour/minute with the time
// it was received to produce an absolute timestamp, since METAR/TAF
// reports never carry month or year. The day is assumed to fall in the
// month of receivedAt unless that would place it more than two days in
// the future, in which case it's rolled back a month -- the usual case
// being a report issued late on the last day of the month and received
// early in the next one.
func resolveReportTime(receivedAt time.Time, t units.Time) time.Time {
	if !t.HasDay {
		return receivedAt
	}
	year, month, _ := receivedAt.Date()
	candidate := time.Date(year, month, t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
	if candidate.After(receivedAt.Add(48 * time.Hour)) {
		// Rebuild in the previous month rather than shifting candidate:
		// time.Date has already normalized e.g. "September 31" to
		// October 1, which AddDate would turn into September 1.
		candidate = time.Date(year, month-1, t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
	}
	return candidate
}

// Extract summarizes a parse result into an Observation, using
// receivedAt to resolve the report's day/hour/minute timestamp.
func Extract(receivedAt time.Time, rawText string, result report.Result) (Observation, error) {
	station, reportTime, hasTime := stationAndTime(result)
	if station == "" {
		return Observation{}, fmt.Errorf("no station location group in parse result")
	}

	obs := Observation{
		Station:    station,
		ReportType: result.ReportType,
		RawText:    rawText,
		Valid:      result.Error == report.ErrNone,
		GroupCount: len(result.Groups),
	}
	if hasTime {
		obs.ReportTime = resolveReportTime(receivedAt, reportTime)
	} else {
		obs.ReportTime = receivedAt
	}
	for _, gr := range result.Groups {
		if !gr.Group.IsValid() {
			obs.Valid = false
		}
	}

	return obs, nil
}

// ExtractAndUpdate extracts an Observation from result and feeds it
// into t, choosing UpdateMetar or UpdateTaf by the parsed report type.
func ExtractAndUpdate(ctx context.Context, t *StationTracker, receivedAt time.Time, rawText string, result report.Result) (*StationSnapshot, error) {
	obs, err := Extract(receivedAt, rawText, result)
	if err != nil {
		return nil, err
	}

	var (
		snap *StationSnapshot
	)
	switch obs.ReportType {
	case report.ReportTaf:
		snap, _, err = t.UpdateTaf(ctx, obs.Station, obs.ReportTime, obs.RawText, obs.Valid, obs.GroupCount, result)
	default:
		snap, _, err = t.UpdateMetar(ctx, obs.Station, obs.ReportTime, obs.RawText, obs.Valid, obs.GroupCount, result)
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}
