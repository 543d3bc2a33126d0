package units

import (
	"strconv"
	"strings"
)

// PrecipitationStatus classifies a precipitation/deposit reading.
type PrecipitationStatus int

const (
	PrecipNotReported PrecipitationStatus = iota
	PrecipReported
	PrecipRunwayNotOperational
)

// Precipitation is a depth in millimetres, or one of the special
// not-reported / runway-not-operational statuses.
type Precipitation struct {
	Status  PrecipitationStatus
	ValueMM float64
}

// runwayDepositCodes maps the WMO 306 Table 1079 runway-deposit-depth
// sentinel codes (92-98) to their remapped depth in millimetres.
var runwayDepositCodes = map[int]float64{
	92: 100, 93: 150, 94: 200, 95: 250, 96: 300, 97: 350, 98: 400,
}

// ParseRunwayDepositDepth parses the 2-digit depth code used inside
// RunwayStateGroup. Codes 00-90 are millimetres verbatim; 92-98 remap per
// Table 1079; 91 is reserved and rejected; 99 means the runway is not
// operational; "//" means not reported.
func ParseRunwayDepositDepth(s string) (Precipitation, bool) {
	if s == "//" {
		return Precipitation{Status: PrecipNotReported}, true
	}
	if len(s) != 2 || !allDigits(s) {
		return Precipitation{}, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Precipitation{}, false
	}
	switch {
	case n == 91:
		return Precipitation{}, false
	case n == 99:
		return Precipitation{Status: PrecipRunwayNotOperational}, true
	case n >= 92 && n <= 98:
		return Precipitation{Status: PrecipReported, ValueMM: runwayDepositCodes[n]}, true
	case n >= 0 && n <= 90:
		return Precipitation{Status: PrecipReported, ValueMM: float64(n)}, true
	default:
		return Precipitation{}, false
	}
}

// ParsePrecipitationRainfall parses a "[d]dd.d" rainfall total, or a
// string of "/" placeholders meaning not reported.
func ParsePrecipitationRainfall(s string) (Precipitation, bool) {
	if s == "" {
		return Precipitation{}, false
	}
	if strings.Trim(s, "/") == "" {
		return Precipitation{Status: PrecipNotReported}, true
	}
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return Precipitation{}, false
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || !allDigits(parts[0]) {
		return Precipitation{}, false
	}
	if len(parts[1]) != 1 || !allDigits(parts[1]) {
		return Precipitation{}, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Precipitation{}, false
	}
	return Precipitation{Status: PrecipReported, ValueMM: v}, true
}

// ParsePrecipitationHundredthsInch parses the remark hourly/6-hourly
// precipitation total, given as hundredths of an inch (e.g. "P2168" body
// "2168" -> 21.68 in -> converted to mm here per §6: 1 inch = 25.4 mm).
func ParsePrecipitationHundredthsInch(digits string) (Precipitation, bool) {
	if strings.Trim(digits, "/") == "" {
		return Precipitation{Status: PrecipNotReported}, true
	}
	if !allDigits(digits) {
		return Precipitation{}, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Precipitation{}, false
	}
	inches := float64(n) * 0.01
	return Precipitation{Status: PrecipReported, ValueMM: inches * 25.4}, true
}
