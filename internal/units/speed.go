package units

import "strconv"

// SpeedUnit is the unit a wind speed or gust value was reported in.
type SpeedUnit int

const (
	SpeedUnitUnknown SpeedUnit = iota
	KT
	MPS
	KMH
	MPH
)

// Speed conversion constants (§6): 1 kt = 0.514444 m/s = 1.852 km/h =
// 1.150779 mph.
const (
	ktToMPS = 0.514444
	ktToKMH = 1.852
	ktToMPH = 1.150779
)

// Speed is an optional integer magnitude in a fixed unit.
type Speed struct {
	Reported bool
	Value    int
	Unit     SpeedUnit
}

// ParseSpeedValue parses a bare 2- or 3-digit wind/gust speed value. A
// leading zero is disallowed on the 3-digit form (it would be ambiguous
// with the 2-digit form already covering 0-99 kt).
func ParseSpeedValue(s string) (int, bool) {
	if len(s) == 2 && allDigits(s) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	if len(s) == 3 && allDigits(s) && s[0] != '0' {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// ToKnots converts a reported speed to knots.
func (s Speed) ToKnots() (float64, bool) {
	if !s.Reported {
		return 0, false
	}
	switch s.Unit {
	case KT:
		return float64(s.Value), true
	case MPS:
		return float64(s.Value) / ktToMPS, true
	case KMH:
		return float64(s.Value) / ktToKMH, true
	case MPH:
		return float64(s.Value) / ktToMPH, true
	default:
		return 0, false
	}
}

// ToUnit converts a reported speed to the requested unit.
func (s Speed) ToUnit(unit SpeedUnit) (float64, bool) {
	kt, ok := s.ToKnots()
	if !ok {
		return 0, false
	}
	switch unit {
	case KT:
		return kt, true
	case MPS:
		return kt * ktToMPS, true
	case KMH:
		return kt * ktToKMH, true
	case MPH:
		return kt * ktToMPH, true
	default:
		return 0, false
	}
}
