package group

import "metartaf/internal/units"

// WindShearLowLayerState tracks the combiner's progress building up a
// WS/WS-ALL-RWY/WS-Rnn sequence.
type WindShearLowLayerState int

const (
	WindShearSeed WindShearLowLayerState = iota
	WindShearAfterAll
	WindShearAllRunways
	WindShearRunwaySpecific
	WindShearInvalid
)

// WindShearLowLayerGroup is the "WS ALL RWY" / "WS Rnn[LCR]?" low-layer
// wind shear warning, built up token by token.
type WindShearLowLayerGroup struct {
	State  WindShearLowLayerState
	Runway units.Runway // meaningful only when State == WindShearRunwaySpecific
}

func (WindShearLowLayerGroup) Kind() Kind { return KindWindShearLowLayer }

func (g WindShearLowLayerGroup) IsValid() bool {
	return g.State == WindShearAllRunways || g.State == WindShearRunwaySpecific
}

// ParseWindShearLowLayer recognizes the seed token "WS" in a METAR
// body.
func ParseWindShearLowLayer(token string, part ReportPart) (Group, bool) {
	if part != PartMetar {
		return WindShearLowLayerGroup{}, false
	}
	if token != "WS" {
		return WindShearLowLayerGroup{}, false
	}
	return WindShearLowLayerGroup{State: WindShearSeed}, true
}

// Combine inspects the following token's raw text (not its parsed
// group, since follow-up tokens like "ALL", "RWY", "R06" otherwise
// parse as PlainText) to drive the WS/ALL/RWY/Rnn state machine.
func (g WindShearLowLayerGroup) Combine(next Group) (Group, bool) {
	plain, ok := next.(PlainTextGroup)
	if !ok {
		return nil, false
	}
	text := plain.Text

	switch g.State {
	case WindShearSeed:
		if text == "ALL" {
			return WindShearLowLayerGroup{State: WindShearAfterAll}, true
		}
		if r, ok := units.ParseRunway(text, true); ok {
			return WindShearLowLayerGroup{State: WindShearRunwaySpecific, Runway: r}, true
		}
		return WindShearLowLayerGroup{State: WindShearInvalid}, true
	case WindShearAfterAll:
		if text == "RWY" {
			return WindShearLowLayerGroup{State: WindShearAllRunways}, true
		}
		return WindShearLowLayerGroup{State: WindShearInvalid}, true
	default:
		return nil, false
	}
}
