package units

import (
	"strconv"
	"strings"
)

// DistanceUnit is the unit a distance value was reported in.
type DistanceUnit int

const (
	DistanceUnitUnknown DistanceUnit = iota
	Meters
	StatuteMiles
	Feet
)

// DistanceModifier qualifies whether the reported value is exact, a floor,
// or a ceiling.
type DistanceModifier int

const (
	ModifierNone DistanceModifier = iota
	ModifierLessThan
	ModifierMoreThan
)

// Distance conversion constants (§6): 1 m = 1/1609.347 SM = 1/0.3048 ft.
const (
	metersPerStatuteMile = 1609.347
	metersPerFoot        = 0.3048
)

// Fraction is a simple numerator/denominator pair, used for the visibility
// fractional-mile forms ("1/2SM", "1 3/4SM").
type Fraction struct {
	Num int
	Den int
}

// IsValid reports whether the fraction has a nonzero denominator.
func (f Fraction) IsValid() bool { return f.Den != 0 }

// Float64 returns the fraction's value, or 0 if the denominator is zero.
func (f Fraction) Float64() float64 {
	if f.Den == 0 {
		return 0
	}
	return float64(f.Num) / float64(f.Den)
}

// Distance is an optional integer part, an optional fraction part (either
// or both may be present), a modifier, and a unit.
type Distance struct {
	Reported    bool
	HasInteger  bool
	Integer     int
	HasFraction bool
	Fraction    Fraction
	Modifier    DistanceModifier
	Unit        DistanceUnit
}

// IsInteger reports whether this is a bare integer distance (no fraction).
func (d Distance) IsInteger() bool { return d.Reported && d.HasInteger && !d.HasFraction }

// IsFraction reports whether this is a bare fraction distance (no integer).
func (d Distance) IsFraction() bool { return d.Reported && !d.HasInteger && d.HasFraction }

// ParseDistanceMeters parses the 4-digit METAR/TAF prevailing-visibility
// form. "9999" normalizes to 10000 m with the MORE_THAN modifier; "////"
// means not reported.
func ParseDistanceMeters(s string) (Distance, bool) {
	if s == "////" {
		return Distance{Reported: false, Unit: Meters}, true
	}
	if len(s) != 4 || !allDigits(s) {
		return Distance{}, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Distance{}, false
	}
	if v == 9999 {
		return Distance{Reported: true, HasInteger: true, Integer: 10000, Modifier: ModifierMoreThan, Unit: Meters}, true
	}
	return Distance{Reported: true, HasInteger: true, Integer: v, Unit: Meters}, true
}

// ParseDistanceHeight parses a 3-digit hundreds-of-feet code, as used for
// cloud base heights and wind shear heights. "///" means not reported.
func ParseDistanceHeight(s string) (Distance, bool) {
	if s == "///" {
		return Distance{Reported: false, Unit: Feet}, true
	}
	if len(s) != 3 || !allDigits(s) {
		return Distance{}, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Distance{}, false
	}
	return Distance{Reported: true, HasInteger: true, Integer: v * 100, Unit: Feet}, true
}

// ParseDistanceRVR parses a 4-digit (optionally P/M-prefixed) runway
// visual range value, in feet if unitFeet is set, meters otherwise.
// "////" means not reported.
func ParseDistanceRVR(s string, unitFeet bool) (Distance, bool) {
	modifier := ModifierNone
	digits := s
	if len(s) > 0 && (s[0] == 'P' || s[0] == 'M') {
		if s[0] == 'P' {
			modifier = ModifierMoreThan
		} else {
			modifier = ModifierLessThan
		}
		digits = s[1:]
	}
	unit := Meters
	if unitFeet {
		unit = Feet
	}
	if digits == "////" {
		return Distance{Reported: false, Unit: unit}, true
	}
	if len(digits) != 4 || !allDigits(digits) {
		return Distance{}, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return Distance{}, false
	}
	return Distance{Reported: true, HasInteger: true, Integer: v, Modifier: modifier, Unit: unit}, true
}

// ParseDistanceMiles parses the statute-mile visibility form:
// [PM]?NN[/NN]?SM, with "////SM" for not reported. A fraction whose
// numerator is greater than or equal to its denominator is renormalized by
// splitting off the whole part, e.g. "13/4SM" becomes 1 + 3/4 SM.
func ParseDistanceMiles(s string) (Distance, bool) {
	if !strings.HasSuffix(s, "SM") {
		return Distance{}, false
	}
	body := s[:len(s)-2]
	modifier := ModifierNone
	if len(body) > 0 && (body[0] == 'P' || body[0] == 'M') {
		if body[0] == 'P' {
			modifier = ModifierMoreThan
		} else {
			modifier = ModifierLessThan
		}
		body = body[1:]
	}
	if body == "" {
		return Distance{}, false
	}
	if strings.Trim(body, "/") == "" {
		// All-slash "not reported" placeholder, e.g. "////SM".
		return Distance{Reported: false, Modifier: modifier, Unit: StatuteMiles}, true
	}

	d := Distance{Reported: true, Modifier: modifier, Unit: StatuteMiles}

	if idx := strings.IndexByte(body, '/'); idx >= 0 {
		numStr := body[:idx]
		denStr := body[idx+1:]
		if denStr == "" || !allDigits(denStr) {
			return Distance{}, false
		}
		den, err := strconv.Atoi(denStr)
		if err != nil || den == 0 {
			return Distance{}, false
		}
		if numStr == "" || !allDigits(numStr) {
			return Distance{}, false
		}
		num, err := strconv.Atoi(numStr)
		if err != nil {
			return Distance{}, false
		}
		if num >= den {
			// Decimal split: the last digit of the numerator stays the
			// numerator and the leading digits become the integer part.
			d.HasInteger = true
			d.Integer = num / 10
			num = num % 10
		}
		if num != 0 {
			d.HasFraction = true
			d.Fraction = Fraction{Num: num, Den: den}
		} else if !d.HasInteger {
			// A fraction of zero with no integer part is degenerate.
			return Distance{}, false
		}
		return d, true
	}

	if !allDigits(body) {
		return Distance{}, false
	}
	v, err := strconv.Atoi(body)
	if err != nil {
		return Distance{}, false
	}
	d.HasInteger = true
	d.Integer = v
	return d, true
}

// CombineIntegerAndFraction combines an integer-only distance with a
// fraction-only distance into a single integer-plus-fraction distance.
// Defined (per invariant #4) iff both are reported, one IsInteger, the
// other IsFraction, they share the same unit, and both modifiers are NONE.
func CombineIntegerAndFraction(integer, fraction Distance) (Distance, bool) {
	if !integer.IsInteger() || !fraction.IsFraction() {
		return Distance{}, false
	}
	if integer.Unit != fraction.Unit {
		return Distance{}, false
	}
	if integer.Modifier != ModifierNone || fraction.Modifier != ModifierNone {
		return Distance{}, false
	}
	return Distance{
		Reported:    true,
		HasInteger:  true,
		Integer:     integer.Integer,
		HasFraction: true,
		Fraction:    fraction.Fraction,
		Modifier:    ModifierNone,
		Unit:        integer.Unit,
	}, true
}

// baseValue returns the distance's numeric value in its own unit, ignoring
// the modifier, or false if not reported.
func (d Distance) baseValue() (float64, bool) {
	if !d.Reported {
		return 0, false
	}
	v := 0.0
	if d.HasInteger {
		v += float64(d.Integer)
	}
	if d.HasFraction {
		v += d.Fraction.Float64()
	}
	return v, true
}

// ToMeters converts the distance to meters.
func (d Distance) ToMeters() (float64, bool) {
	v, ok := d.baseValue()
	if !ok {
		return 0, false
	}
	switch d.Unit {
	case Meters:
		return v, true
	case StatuteMiles:
		return v * metersPerStatuteMile, true
	case Feet:
		return v * metersPerFoot, true
	default:
		return 0, false
	}
}

// ToStatuteMiles converts the distance to statute miles.
func (d Distance) ToStatuteMiles() (float64, bool) {
	m, ok := d.ToMeters()
	if !ok {
		return 0, false
	}
	return m / metersPerStatuteMile, true
}

// ToFeet converts the distance to feet.
func (d Distance) ToFeet() (float64, bool) {
	m, ok := d.ToMeters()
	if !ok {
		return 0, false
	}
	return m / metersPerFoot, true
}
