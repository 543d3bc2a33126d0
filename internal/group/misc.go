package group

import (
	"strconv"
	"strings"
)

// MiscKind discriminates which single-token numeric-payload remark a
// MiscGroup carries.
type MiscKind int

const (
	MiscDensityAltitude MiscKind = iota
	MiscSunshineDuration
	MiscPrecipitationAmount24Hour
)

// MiscGroup is a grab-bag of single-token remarks carrying one
// numeric payload: density altitude ("Dnnn"/"DMnnn", feet), duration
// of sunshine ("98nnn", minutes), and 24-hour precipitation amount
// ("6nnnn", hundredths of an inch).
type MiscGroup struct {
	MiscKind MiscKind
	Value    int
}

func (MiscGroup) Kind() Kind    { return KindMisc }
func (MiscGroup) IsValid() bool { return true }

// ParseMisc recognizes the fixed set of grab-bag remark forms.
func ParseMisc(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return MiscGroup{}, false
	}

	if strings.HasPrefix(token, "D") {
		body := token[1:]
		negative := false
		if strings.HasPrefix(body, "M") {
			negative = true
			body = body[1:]
		}
		if len(body) == 3 {
			v, err := strconv.Atoi(body)
			if err == nil {
				if negative {
					v = -v
				}
				return MiscGroup{MiscKind: MiscDensityAltitude, Value: v}, true
			}
		}
	}

	if strings.HasPrefix(token, "98") && len(token) == 5 {
		v, err := strconv.Atoi(token[2:])
		if err == nil {
			return MiscGroup{MiscKind: MiscSunshineDuration, Value: v}, true
		}
	}

	if strings.HasPrefix(token, "6") && len(token) == 5 {
		v, err := strconv.Atoi(token[1:])
		if err == nil {
			return MiscGroup{MiscKind: MiscPrecipitationAmount24Hour, Value: v}, true
		}
	}

	return MiscGroup{}, false
}
