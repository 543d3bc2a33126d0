package group

import (
	"math"
	"strings"

	"metartaf/internal/units"
)

// TemperatureGroup is the ambient temperature and dew point, "T/Td".
type TemperatureGroup struct {
	Temperature units.Temperature
	DewPoint    units.Temperature
}

func (TemperatureGroup) Kind() Kind { return KindTemperature }

func (g TemperatureGroup) IsValid() bool {
	if !g.Temperature.Reported || !g.DewPoint.Reported {
		return true
	}
	// The "freezing-0 vs plain-0" case: a temperature reported as
	// freezing-zero (M00) paired with a dew point reported as
	// plain-zero (00) is physically contradictory at the freezing
	// boundary and rejected, and vice versa.
	if g.Temperature.ValueC == 0 && g.DewPoint.ValueC == 0 && g.Temperature.Freezing != g.DewPoint.Freezing {
		return false
	}
	return g.Temperature.ValueC >= g.DewPoint.ValueC
}

// ParseTemperature recognizes the "T/Td" pair, each side "(M)?NN" or
// "//".
func ParseTemperature(token string, part ReportPart) (Group, bool) {
	if part != PartMetar {
		return TemperatureGroup{}, false
	}
	idx := strings.IndexByte(token, '/')
	if idx < 0 {
		return TemperatureGroup{}, false
	}
	t, ok1 := units.ParseTemperature(token[:idx])
	td, ok2 := units.ParseTemperature(token[idx+1:])
	if !ok1 || !ok2 {
		return TemperatureGroup{}, false
	}
	return TemperatureGroup{Temperature: t, DewPoint: td}, true
}

// RelativeHumidity computes the relative humidity percentage via the
// Magnus formula, clamped to 100 when the dew point exceeds the
// temperature.
func (g TemperatureGroup) RelativeHumidity() (float64, bool) {
	if !g.Temperature.Reported || !g.DewPoint.Reported {
		return 0, false
	}
	t := float64(g.Temperature.ValueC)
	td := float64(g.DewPoint.ValueC)
	rh := 100 * math.Pow(10, 7.5*td/(237.7+td)-7.5*t/(237.7+t))
	if td > t {
		rh = 100
	}
	return rh, true
}
