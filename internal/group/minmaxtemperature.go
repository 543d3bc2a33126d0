package group

import (
	"strconv"

	"metartaf/internal/units"
)

// MinMaxTemperatureGroup is the 24-hour minimum/maximum temperature
// remark, "1snTnTnTn2snTnTnTn": a tenths-of-a-degree minimum followed
// by a tenths-of-a-degree maximum, each with its own sign digit.
type MinMaxTemperatureGroup struct {
	MinTenthsC int
	MaxTenthsC int
}

func (MinMaxTemperatureGroup) Kind() Kind    { return KindMinMaxTemperature }
func (MinMaxTemperatureGroup) IsValid() bool { return true }

// ParseMinMaxTemperature recognizes the combined 10-character
// "1snTnTnTn2snTnTnTn" remark form.
func ParseMinMaxTemperature(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return MinMaxTemperatureGroup{}, false
	}
	if len(token) != 10 || token[0] != '1' || token[5] != '2' {
		return MinMaxTemperatureGroup{}, false
	}
	minValue, ok := parseSignedTenths(token[1:5])
	if !ok {
		return MinMaxTemperatureGroup{}, false
	}
	maxValue, ok := parseSignedTenths(token[6:10])
	if !ok {
		return MinMaxTemperatureGroup{}, false
	}
	return MinMaxTemperatureGroup{MinTenthsC: minValue, MaxTenthsC: maxValue}, true
}

// parseSignedTenths parses a "sTTT" field: sign digit (0=positive,
// 1=negative) followed by 3 digits of tenths-of-a-degree magnitude.
func parseSignedTenths(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	sign := s[0]
	if sign != '0' && sign != '1' {
		return 0, false
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, false
	}
	if sign == '1' {
		v = -v
	}
	return v, true
}

// MinC and MaxC return the min/max temperature in whole-degree
// Celsius precision, matching units.Temperature's resolution.
func (g MinMaxTemperatureGroup) MinC() units.Temperature {
	return units.Temperature{Reported: true, ValueC: g.MinTenthsC / 10, Freezing: g.MinTenthsC < 0}
}

func (g MinMaxTemperatureGroup) MaxC() units.Temperature {
	return units.Temperature{Reported: true, ValueC: g.MaxTenthsC / 10, Freezing: g.MaxTenthsC < 0}
}
