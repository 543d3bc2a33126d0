package group

import "metartaf/internal/units"

// CloudAmount classifies the cloud cover amount, or absence thereof.
type CloudAmount int

const (
	CloudAmountUnknown CloudAmount = iota
	CloudNoCloudsDetected
	CloudNoSignificantCloud
	CloudClear
	CloudSkyClear
	CloudFew
	CloudScattered
	CloudBroken
	CloudOvercast
	CloudObscured
	CloudAmountNotReported
)

// CloudType classifies the optional significant cloud type.
type CloudType int

const (
	CloudTypeNone CloudType = iota
	CloudTypeToweringCumulus
	CloudTypeCumulonimbus
	CloudTypeNotReported
)

// CloudGroup is one reported cloud layer, or one of the fixed
// no-clouds tokens.
type CloudGroup struct {
	Amount CloudAmount
	Height units.Distance // feet (the 3-digit code x100), via ParseDistanceHeight
	Type   CloudType
}

func (CloudGroup) Kind() Kind { return KindCloud }

func (g CloudGroup) IsValid() bool {
	if g.Amount == CloudObscured && g.Type != CloudTypeNone {
		return false
	}
	return true
}

var cloudFixedAmounts = map[string]CloudAmount{
	"NCD": CloudNoCloudsDetected,
	"NSC": CloudNoSignificantCloud,
	"CLR": CloudClear,
	"SKC": CloudSkyClear,
}

var cloudLayerAmounts = map[string]CloudAmount{
	"FEW": CloudFew,
	"SCT": CloudScattered,
	"BKN": CloudBroken,
	"OVC": CloudOvercast,
	"VV":  CloudObscured,
	"///": CloudAmountNotReported,
}

// ParseCloud recognizes the fixed no-clouds tokens and the
// "AAANNN[TTT]?" layer form.
func ParseCloud(token string, part ReportPart) (Group, bool) {
	if part != PartMetar && part != PartTaf {
		return CloudGroup{}, false
	}
	if amount, ok := cloudFixedAmounts[token]; ok {
		return CloudGroup{Amount: amount}, true
	}

	for code, amount := range cloudLayerAmounts {
		if len(token) <= len(code) || token[:len(code)] != code {
			continue
		}
		rest := token[len(code):]
		if len(rest) < 3 {
			continue
		}
		height, ok := units.ParseDistanceHeight(rest[:3])
		if !ok {
			continue
		}
		typ := CloudTypeNone
		switch rest[3:] {
		case "":
			typ = CloudTypeNone
		case "TCU":
			typ = CloudTypeToweringCumulus
		case "CB":
			typ = CloudTypeCumulonimbus
		case "///":
			typ = CloudTypeNotReported
		default:
			continue
		}
		return CloudGroup{Amount: amount, Height: height, Type: typ}, true
	}
	return CloudGroup{}, false
}
