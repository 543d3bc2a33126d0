package group

import (
	"strings"

	"metartaf/internal/units"
)

// HourlyPrecipitationGroup is the remark "Pnnnn" form: accumulated
// precipitation since the top of the current (or 3/6-hourly, per
// station practice) observation period, in hundredths of an inch.
type HourlyPrecipitationGroup struct {
	Amount units.Precipitation
}

func (HourlyPrecipitationGroup) Kind() Kind    { return KindHourlyPrecipitation }
func (HourlyPrecipitationGroup) IsValid() bool { return true }

// ParseHourlyPrecipitation recognizes "Pnnnn" in remarks.
func ParseHourlyPrecipitation(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return HourlyPrecipitationGroup{}, false
	}
	if !strings.HasPrefix(token, "P") || len(token) != 5 {
		return HourlyPrecipitationGroup{}, false
	}
	amount, ok := units.ParsePrecipitationHundredthsInch(token[1:])
	if !ok {
		return HourlyPrecipitationGroup{}, false
	}
	return HourlyPrecipitationGroup{Amount: amount}, true
}
