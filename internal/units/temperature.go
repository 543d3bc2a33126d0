package units

import "strconv"

// Temperature is a whole-degree Celsius reading. "M00" reports freezing
// zero (distinct from plain zero); "//" means not reported at all.
type Temperature struct {
	Reported bool
	ValueC   int
	Freezing bool
}

// ParseTemperature parses the (M)?NN or "//" form shared by the
// temperature/dew-point pair and by TemperatureForecastGroup.
func ParseTemperature(s string) (Temperature, bool) {
	if s == "//" {
		return Temperature{Reported: false}, true
	}
	freezing := false
	digits := s
	if len(s) == 3 && s[0] == 'M' {
		freezing = true
		digits = s[1:]
	}
	if len(digits) != 2 || !allDigits(digits) {
		return Temperature{}, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return Temperature{}, false
	}
	if freezing && v != 0 {
		v = -v
	}
	return Temperature{Reported: true, ValueC: v, Freezing: freezing}, true
}

// ToFahrenheit converts a reported temperature to Fahrenheit.
func (t Temperature) ToFahrenheit() (float64, bool) {
	if !t.Reported {
		return 0, false
	}
	return float64(t.ValueC)*9.0/5.0 + 32, true
}
