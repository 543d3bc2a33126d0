package group

import (
	"strings"

	"metartaf/internal/units"
)

// RainfallGroup is the Australian-variant "RFnn.n/nnn.n[/nnn.n]?"
// remark: rainfall over the last 10 minutes, total since 9am, and an
// optional rainfall over the last 60 minutes.
type RainfallGroup struct {
	Last10Minutes    units.Precipitation
	Since9AM         units.Precipitation
	HasLast60Minutes bool
	Last60Minutes    units.Precipitation
}

func (RainfallGroup) Kind() Kind    { return KindRainfall }
func (RainfallGroup) IsValid() bool { return true }

// ParseRainfall recognizes "RFnn.n/nnn.n[/nnn.n]?" in remarks.
func ParseRainfall(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return RainfallGroup{}, false
	}
	if !strings.HasPrefix(token, "RF") {
		return RainfallGroup{}, false
	}
	parts := strings.Split(token[2:], "/")
	if len(parts) < 2 || len(parts) > 3 {
		return RainfallGroup{}, false
	}
	last10, ok := units.ParsePrecipitationRainfall(parts[0])
	if !ok {
		return RainfallGroup{}, false
	}
	since9, ok := units.ParsePrecipitationRainfall(parts[1])
	if !ok {
		return RainfallGroup{}, false
	}
	g := RainfallGroup{Last10Minutes: last10, Since9AM: since9}
	if len(parts) == 3 {
		last60, ok := units.ParsePrecipitationRainfall(parts[2])
		if !ok {
			return RainfallGroup{}, false
		}
		g.HasLast60Minutes = true
		g.Last60Minutes = last60
	}
	return g, true
}
