package units

import (
	"strconv"
	"strings"
)

// PressureUnit is the unit an atmospheric pressure value was reported in.
type PressureUnit int

const (
	PressureUnitUnknown PressureUnit = iota
	HPA
	INHG
	MMHG
)

// Pressure conversion constants (§6): 1 hPa = 1/33.8639 inHg =
// 1/1.3332 mmHg; 1 inHg = 25.4 mmHg.
const (
	hPaPerInHg = 33.8639
	hPaPerMmHg = 1.3332
)

// Pressure is an optional pressure reading in a fixed unit.
type Pressure struct {
	Reported bool
	Value    float64
	Unit     PressureUnit
}

// ParsePressureQA parses the observed-pressure group body: "Q" selects
// hPa with the raw integer as the value; "A" selects inHg with the raw
// integer scaled by 0.01 (e.g. "A2992" -> 29.92 inHg).
func ParsePressureQA(s string) (Pressure, bool) {
	if len(s) != 5 {
		return Pressure{}, false
	}
	digits := s[1:]
	if digits == "////" {
		switch s[0] {
		case 'Q':
			return Pressure{Reported: false, Unit: HPA}, true
		case 'A':
			return Pressure{Reported: false, Unit: INHG}, true
		}
		return Pressure{}, false
	}
	if !allDigits(digits) {
		return Pressure{}, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return Pressure{}, false
	}
	switch s[0] {
	case 'Q':
		return Pressure{Reported: true, Value: float64(v), Unit: HPA}, true
	case 'A':
		return Pressure{Reported: true, Value: float64(v) * 0.01, Unit: INHG}, true
	default:
		return Pressure{}, false
	}
}

// ParsePressureForecast parses the TAF forecast altimeter group
// "QNHNNNNINS" (hPa, always 4 digits, fixed "INS" suffix).
func ParsePressureForecast(s string) (Pressure, bool) {
	if len(s) != 10 || !strings.HasPrefix(s, "QNH") || !strings.HasSuffix(s, "INS") {
		return Pressure{}, false
	}
	digits := s[3:7]
	if !allDigits(digits) {
		return Pressure{}, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return Pressure{}, false
	}
	return Pressure{Reported: true, Value: float64(v), Unit: HPA}, true
}

// ParsePressureSLP parses the remark sea-level pressure group "SLPnnn",
// reconstructing full hPa as nnn*0.1 + base, where base is 1000 if
// nnn < 500, else 900 (handles the century rollover around 1013 hPa).
func ParsePressureSLP(s string) (Pressure, bool) {
	if len(s) != 6 || !strings.HasPrefix(s, "SLP") {
		return Pressure{}, false
	}
	digits := s[3:]
	if !allDigits(digits) {
		return Pressure{}, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Pressure{}, false
	}
	base := 1000.0
	if n >= 500 {
		base = 900.0
	}
	return Pressure{Reported: true, Value: float64(n)*0.1 + base, Unit: HPA}, true
}

// ParsePressureQFE parses the remark field-elevation pressure group
// "QFEnnn[/nnnn]". The mmHg value (nnn) is primary; a trailing hPa value,
// if present, is ignored.
func ParsePressureQFE(s string) (Pressure, bool) {
	if !strings.HasPrefix(s, "QFE") {
		return Pressure{}, false
	}
	body := s[3:]
	mmhgStr := body
	if idx := strings.IndexByte(body, '/'); idx >= 0 {
		mmhgStr = body[:idx]
		hpaStr := body[idx+1:]
		if !allDigits(hpaStr) {
			return Pressure{}, false
		}
	}
	if len(mmhgStr) < 2 || len(mmhgStr) > 3 || !allDigits(mmhgStr) {
		return Pressure{}, false
	}
	v, err := strconv.Atoi(mmhgStr)
	if err != nil {
		return Pressure{}, false
	}
	return Pressure{Reported: true, Value: float64(v), Unit: MMHG}, true
}

// ToHPa converts the pressure to hectopascals.
func (p Pressure) ToHPa() (float64, bool) {
	if !p.Reported {
		return 0, false
	}
	switch p.Unit {
	case HPA:
		return p.Value, true
	case INHG:
		return p.Value * hPaPerInHg, true
	case MMHG:
		return p.Value * hPaPerMmHg, true
	default:
		return 0, false
	}
}

// ToInHg converts the pressure to inches of mercury.
func (p Pressure) ToInHg() (float64, bool) {
	h, ok := p.ToHPa()
	if !ok {
		return 0, false
	}
	return h / hPaPerInHg, true
}

// ToMmHg converts the pressure to millimetres of mercury.
func (p Pressure) ToMmHg() (float64, bool) {
	h, ok := p.ToHPa()
	if !ok {
		return 0, false
	}
	return h / hPaPerMmHg, true
}
