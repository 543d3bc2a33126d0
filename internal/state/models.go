package state

import "time"

// StationSnapshot is the in-memory view of the latest known METAR and
// TAF for one reporting station.
type StationSnapshot struct {
	Station string

	LatestMetarTime       time.Time
	LatestMetarRaw        string
	LatestMetarValid      bool
	LatestMetarGroupCount int

	LatestTafTime       time.Time
	LatestTafRaw        string
	LatestTafValid      bool
	LatestTafGroupCount int

	FirstSeen   time.Time
	LastSeen    time.Time
	ReportCount int
}

// HasMetar reports whether a METAR has ever been recorded for this station.
func (s *StationSnapshot) HasMetar() bool {
	return !s.LatestMetarTime.IsZero()
}

// HasTaf reports whether a TAF has ever been recorded for this station.
func (s *StationSnapshot) HasTaf() bool {
	return !s.LatestTafTime.IsZero()
}

// IsStale reports whether the station hasn't been heard from within
// maxAge of now.
func (s *StationSnapshot) IsStale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(s.LastSeen) > maxAge
}
