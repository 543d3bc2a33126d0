package group

// FixedGroup is a constant token whose meaning is entirely determined
// by its literal text and the report part it appears in.
type FixedGroup struct {
	Text string
}

func (FixedGroup) Kind() Kind    { return KindFixed }
func (FixedGroup) IsValid() bool { return true }

var headerFixed = map[string]bool{
	"METAR": true, "SPECI": true, "TAF": true, "AMD": true,
	"COR": true, "NIL": true, "CNL": true,
}

var metarFixed = map[string]bool{
	"CAVOK": true, "NSW": true, "RMK": true, "NIL": true, "CNL": true,
	"AUTO": true, "SNOCLO": true, "R/SNOCLO": true, "COR": true,
}

var tafFixed = map[string]bool{
	"CAVOK": true, "NSW": true, "RMK": true, "NIL": true, "CNL": true,
	"WSCONDS": true,
}

var remarksFixed = map[string]bool{
	"AO1": true, "AO2": true, "NOSPECI": true, "PRESFR": true, "PRESRR": true,
	"RVRNO": true, "PWINO": true, "PNO": true, "FZRANO": true, "TSNO": true,
	"SLPNO": true,
}

// ParseFixed recognizes a token as a constant literal valid in part.
// The "$" maintenance indicator is accepted in every part since the
// state machine alone decides where it is legal.
func ParseFixed(token string, part ReportPart) (Group, bool) {
	if token == "$" {
		return FixedGroup{Text: token}, true
	}
	switch part {
	case PartHeader:
		if headerFixed[token] {
			return FixedGroup{Text: token}, true
		}
	case PartMetar:
		if metarFixed[token] {
			return FixedGroup{Text: token}, true
		}
	case PartTaf:
		if tafFixed[token] {
			return FixedGroup{Text: token}, true
		}
	case PartRemarks:
		if remarksFixed[token] {
			return FixedGroup{Text: token}, true
		}
	}
	return FixedGroup{}, false
}
