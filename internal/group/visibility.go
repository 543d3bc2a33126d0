package group

import (
	"strings"

	"metartaf/internal/units"
)

// VisibilityGroup is prevailing or directional visibility, in meters
// or statute miles. A standalone leading integer digit parses as
// Incomplete, awaiting a following fractional-mile token via Combine.
type VisibilityGroup struct {
	Distance   units.Distance
	Direction  units.Direction
	Incomplete bool
}

func (VisibilityGroup) Kind() Kind { return KindVisibility }

func (g VisibilityGroup) IsValid() bool {
	if g.Incomplete {
		return false
	}
	if g.Distance.HasFraction && !g.Distance.Fraction.IsValid() {
		return false
	}
	return true
}

// IsPrevailing reports whether the visibility is non-directional
// (direction status OMITTED or NDV).
func (g VisibilityGroup) IsPrevailing() bool {
	return g.Direction.Status == units.Omitted || g.Direction.Status == units.NDV
}

// ParseVisibility recognizes the meters form "NNNN[CARDINAL]?", the
// statute-mile form "[PM]?NN[/NN]?SM", and the bare single-digit
// incomplete-integer form.
func ParseVisibility(token string, part ReportPart) (Group, bool) {
	if part != PartMetar && part != PartTaf {
		return VisibilityGroup{}, false
	}

	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		v := int(token[0] - '0')
		return VisibilityGroup{
			Distance:   units.Distance{Reported: true, HasInteger: true, Integer: v, Unit: units.StatuteMiles},
			Incomplete: true,
		}, true
	}

	if strings.HasSuffix(token, "SM") {
		d, ok := units.ParseDistanceMiles(token)
		if !ok {
			return VisibilityGroup{}, false
		}
		return VisibilityGroup{Distance: d, Direction: units.Direction{Status: units.Omitted}}, true
	}

	// Meters form, optional trailing cardinal (1-2 letters), or the
	// literal "NDV" marker (no directional variation — distinct from a
	// cardinal suffix, per metaf.hpp's Direction::fromCardinalString
	// special case checked before generic cardinal mapping).
	body := token
	var direction units.Direction
	switch {
	case strings.HasSuffix(body, "NDV"):
		direction = units.Direction{Status: units.NDV}
		body = body[:len(body)-3]
	case len(body) > 4:
		suffix := body[4:]
		cardinal, ok := units.ParseCardinalLetters(suffix)
		if !ok {
			return VisibilityGroup{}, false
		}
		direction = cardinal
		body = body[:4]
	default:
		direction = units.Direction{Status: units.Omitted}
	}

	d, ok := units.ParseDistanceMeters(body)
	if !ok {
		return VisibilityGroup{}, false
	}
	return VisibilityGroup{Distance: d, Direction: direction}, true
}

// Combine folds a following fraction-only statute-mile token into a
// preceding incomplete-integer visibility.
func (g VisibilityGroup) Combine(next Group) (Group, bool) {
	n, ok := next.(VisibilityGroup)
	if !ok || !g.Incomplete {
		return nil, false
	}
	if n.Distance.Unit != units.StatuteMiles || !n.Distance.IsFraction() {
		return nil, false
	}
	integerOnly := units.Distance{Reported: true, HasInteger: true, Integer: g.Distance.Integer, Unit: units.StatuteMiles}
	combined, ok := units.CombineIntegerAndFraction(integerOnly, n.Distance)
	if !ok {
		return nil, false
	}
	return VisibilityGroup{Distance: combined, Direction: units.Direction{Status: units.Omitted}}, true
}
