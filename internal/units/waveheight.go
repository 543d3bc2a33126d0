package units

import "strconv"

// WaveHeightType distinguishes a qualitative sea-state digit from an
// explicit wave height measurement.
type WaveHeightType int

const (
	StateOfSurface WaveHeightType = iota
	WaveHeightValue
)

// WaveHeight conversion constants (§6): decimetres -> metres x0.1; metres
// -> feet /0.3048.
const metresPerFoot = 0.3048

// seaStateMaxHeightDM maps the WMO 306 Table 3700 sea-state digit (0-9) to
// its maximum wave height in decimetres.
var seaStateMaxHeightDM = map[int]int{
	0: 0, 1: 1, 2: 5, 3: 12, 4: 25, 5: 40, 6: 60, 7: 90, 8: 140, 9: 999,
}

// WaveHeight is either a sea-state descriptor digit (resolved to its
// table-max height) or an explicit height in decimetres.
type WaveHeight struct {
	Type       WaveHeightType
	Reported   bool
	StateDigit int
	ValueDM    int
}

// ParseWaveHeightSurfaceState parses a single sea-state digit (0-9) and
// resolves it to its Table 3700 maximum wave height.
func ParseWaveHeightSurfaceState(s string) (WaveHeight, bool) {
	if len(s) != 1 || !allDigits(s) {
		return WaveHeight{}, false
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return WaveHeight{}, false
	}
	maxHeight, ok := seaStateMaxHeightDM[d]
	if !ok {
		return WaveHeight{}, false
	}
	return WaveHeight{Type: StateOfSurface, Reported: true, StateDigit: d, ValueDM: maxHeight}, true
}

// ParseWaveHeightExplicit parses an explicit wave height in decimetres,
// used by the "Hhhh" form of SeaSurfaceGroup. "///" means not reported.
func ParseWaveHeightExplicit(s string) (WaveHeight, bool) {
	if s == "///" {
		return WaveHeight{Type: WaveHeightValue, Reported: false}, true
	}
	if len(s) != 3 || !allDigits(s) {
		return WaveHeight{}, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return WaveHeight{}, false
	}
	return WaveHeight{Type: WaveHeightValue, Reported: true, ValueDM: v}, true
}

// ToMetres converts the wave height to metres.
func (w WaveHeight) ToMetres() (float64, bool) {
	if !w.Reported {
		return 0, false
	}
	return float64(w.ValueDM) * 0.1, true
}

// ToFeet converts the wave height to feet.
func (w WaveHeight) ToFeet() (float64, bool) {
	m, ok := w.ToMetres()
	if !ok {
		return 0, false
	}
	return m / metresPerFoot, true
}
