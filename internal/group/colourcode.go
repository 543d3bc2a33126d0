package group

import "strings"

// ColourCode is the NATO meteorological colour state.
type ColourCode int

const (
	ColourCodeUnknown ColourCode = iota
	ColourBlue
	ColourWhite
	ColourGreen
	ColourYellow1
	ColourYellow2
	ColourAmber
	ColourRed
)

var colourCodes = map[string]ColourCode{
	"BLU":  ColourBlue,
	"WHT":  ColourWhite,
	"GRN":  ColourGreen,
	"YLO1": ColourYellow1,
	"YLO2": ColourYellow2,
	"AMB":  ColourAmber,
	"RED":  ColourRed,
}

// ColourCodeGroup is the optional-BLACK-prefixed NATO colour state
// remark, e.g. "BLACKBLU" or "GRN".
type ColourCodeGroup struct {
	Black bool
	Code  ColourCode
}

func (ColourCodeGroup) Kind() Kind    { return KindColourCode }
func (ColourCodeGroup) IsValid() bool { return true }

// ParseColourCode recognizes "(BLACK)?(BLU|WHT|GRN|YLO1|YLO2|AMB|RED)"
// in remarks.
func ParseColourCode(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return ColourCodeGroup{}, false
	}
	body := token
	black := false
	if strings.HasPrefix(body, "BLACK") {
		black = true
		body = body[len("BLACK"):]
	}
	code, ok := colourCodes[body]
	if !ok {
		return ColourCodeGroup{}, false
	}
	return ColourCodeGroup{Black: black, Code: code}, true
}
