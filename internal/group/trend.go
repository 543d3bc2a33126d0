package group

import "metartaf/internal/units"

// TrendType classifies the kind of change-group a TrendGroup describes.
type TrendType int

const (
	TrendNone TrendType = iota
	TrendBecoming
	TrendTemporary
	TrendInterrupted
	TrendNoSignificantChange
	TrendTimeSpan
)

// TrendProbability is the optional forecast-probability qualifier.
type TrendProbability int

const (
	ProbabilityNone TrendProbability = iota
	Probability30
	Probability40
)

// trendTimeSlot names which of the three time fields a partial time
// fills: FROM, TILL, or AT. A TrendGroup may carry FROM+TILL, FROM
// alone, TILL alone, or AT alone -- never AT mixed with FROM/TILL.
type trendTimeSlot int

const (
	slotNone trendTimeSlot = iota
	slotFrom
	slotTill
	slotAt
)

// TrendGroup covers BECMG/TEMPO/INTER/NOSIG/PROBnn and the TAF
// FMDDHHMM / DDHH-DDHH time span forms, built up token by token
// through Combine.
type TrendGroup struct {
	Type        TrendType
	Probability TrendProbability

	HasFrom bool
	From    units.Time
	HasTill bool
	Till    units.Time
	HasAt   bool
	At      units.Time

	// HasTimeSpan holds the TAF header/validity "DDHH/DDHH" span,
	// distinct from the FROM/TILL/AT partial times above.
	HasTimeSpan bool
	SpanFrom    units.Time
	SpanTill    units.Time
}

func (TrendGroup) Kind() Kind { return KindTrend }

// IsValid rejects a group that only accumulated partial times without
// ever receiving a trend type, probability-qualified type, or a pure
// time span -- an incomplete combiner chain.
func (g TrendGroup) IsValid() bool {
	if g.Type == TrendNone && !g.HasTimeSpan {
		return false
	}
	if g.HasAt && (g.HasFrom || g.HasTill) {
		return false
	}
	return true
}

func (g TrendGroup) filledSlot() trendTimeSlot {
	switch {
	case g.HasAt:
		return slotAt
	case g.HasFrom && g.HasTill:
		return slotNone // both already full, nothing to merge
	case g.HasFrom:
		return slotFrom
	case g.HasTill:
		return slotTill
	default:
		return slotNone
	}
}

// ParseTrendAtom recognizes the directly-tokenized trend atoms:
// BECMG/TEMPO/INTER/NOSIG/PROB30/PROB40/FMDDHHMM/DDHH-DDHH time span/
// FMHHMM/TLHHMM/ATHHMM partial times.
func ParseTrendAtom(token string, part ReportPart) (Group, bool) {
	switch token {
	case "BECMG":
		if part == PartMetar || part == PartTaf {
			return TrendGroup{Type: TrendBecoming}, true
		}
		return TrendGroup{}, false
	case "TEMPO":
		if part == PartMetar || part == PartTaf {
			return TrendGroup{Type: TrendTemporary}, true
		}
		return TrendGroup{}, false
	case "INTER":
		if part == PartMetar || part == PartTaf {
			return TrendGroup{Type: TrendInterrupted}, true
		}
		return TrendGroup{}, false
	case "NOSIG":
		if part == PartMetar {
			return TrendGroup{Type: TrendNoSignificantChange}, true
		}
		return TrendGroup{}, false
	case "PROB30":
		if part == PartTaf {
			return TrendGroup{Probability: Probability30}, true
		}
		return TrendGroup{}, false
	case "PROB40":
		if part == PartTaf {
			return TrendGroup{Probability: Probability40}, true
		}
		return TrendGroup{}, false
	}

	if part == PartTaf && len(token) == 8 && token[:2] == "FM" {
		if t, ok := units.ParseTimeDDHHMM(token[2:]); ok {
			return TrendGroup{Type: TrendTimeSpan, HasFrom: true, From: t}, true
		}
		return TrendGroup{}, false
	}

	if (part == PartHeader || part == PartTaf) && len(token) == 9 && token[4] == '/' {
		from, ok1 := units.ParseTimeDDHH(token[:4])
		till, ok2 := units.ParseTimeDDHH(token[5:])
		if ok1 && ok2 {
			return TrendGroup{Type: TrendTimeSpan, HasTimeSpan: true, SpanFrom: from, SpanTill: till}, true
		}
		return TrendGroup{}, false
	}

	if part == PartMetar && len(token) == 6 {
		prefix, digits := token[:2], token[2:]
		t, ok := units.ParseTimeHHMM(digits)
		if !ok {
			return TrendGroup{}, false
		}
		switch prefix {
		case "FM":
			return TrendGroup{HasFrom: true, From: t}, true
		case "TL":
			return TrendGroup{HasTill: true, Till: t}, true
		case "AT":
			return TrendGroup{HasAt: true, At: t}, true
		}
	}

	return TrendGroup{}, false
}

// Combine implements the trend combiner rules, applied in the order
// documented for TrendGroup: probability+type, type+time, probability
// +time-span, and partial-time+partial-time.
func (g TrendGroup) Combine(next Group) (Group, bool) {
	n, ok := next.(TrendGroup)
	if !ok {
		return nil, false
	}

	// Rule 1: probability + trend-type, only TEMPO/INTER accept it.
	if g.Probability != ProbabilityNone && g.Type == TrendNone &&
		(n.Type == TrendTemporary || n.Type == TrendInterrupted) && n.Probability == ProbabilityNone {
		return TrendGroup{Type: n.Type, Probability: g.Probability}, true
	}

	// Rule 3: probability + time-span.
	if g.Probability != ProbabilityNone && g.Type == TrendNone && n.HasTimeSpan {
		return TrendGroup{Type: TrendTimeSpan, Probability: g.Probability, HasTimeSpan: true,
			SpanFrom: n.SpanFrom, SpanTill: n.SpanTill}, true
	}

	// Rule 2: trend-type + (time-span | partial-time).
	if g.Type != TrendNone && g.Type != TrendTimeSpan {
		merged := g
		if n.HasTimeSpan {
			if merged.HasTimeSpan {
				return nil, false
			}
			merged.HasTimeSpan, merged.SpanFrom, merged.SpanTill = true, n.SpanFrom, n.SpanTill
			return merged, true
		}
		if nSlot := n.filledSlot(); nSlot != slotNone {
			return mergeTimeSlot(merged, n, nSlot)
		}
	}

	// Rule 4: partial-time + partial-time.
	if g.Type == TrendNone && g.Probability == ProbabilityNone && !g.HasTimeSpan {
		if gSlot, nSlot := g.filledSlot(), n.filledSlot(); gSlot != slotNone && nSlot != slotNone {
			return mergeTimeSlot(g, n, nSlot)
		}
	}

	return nil, false
}

// mergeTimeSlot folds n's single filled time slot into prev, enforcing
// "no duplicate slot, no AT mixed with FROM/TILL".
func mergeTimeSlot(prev, n TrendGroup, nSlot trendTimeSlot) (Group, bool) {
	switch nSlot {
	case slotFrom:
		if prev.HasFrom || prev.HasAt {
			return nil, false
		}
		prev.HasFrom, prev.From = true, n.From
	case slotTill:
		if prev.HasTill || prev.HasAt {
			return nil, false
		}
		prev.HasTill, prev.Till = true, n.Till
	case slotAt:
		if prev.HasAt || prev.HasFrom || prev.HasTill {
			return nil, false
		}
		prev.HasAt, prev.At = true, n.At
	default:
		return nil, false
	}
	return prev, true
}
