package group

import "metartaf/internal/units"

// ReportTimeGroup is the report issuance time, "DDHHMMZ", legal only
// in the header. Day is mandatory here (unlike other Time uses).
type ReportTimeGroup struct {
	Time units.Time
}

func (ReportTimeGroup) Kind() Kind { return KindReportTime }
func (g ReportTimeGroup) IsValid() bool {
	return g.Time.HasDay && g.Time.IsValid()
}

// ParseReportTime recognizes "DDHHMMZ" in the header.
func ParseReportTime(token string, part ReportPart) (Group, bool) {
	if part != PartHeader {
		return ReportTimeGroup{}, false
	}
	if len(token) != 7 || token[6] != 'Z' {
		return ReportTimeGroup{}, false
	}
	t, ok := units.ParseTimeDDHHMM(token[:6])
	if !ok {
		return ReportTimeGroup{}, false
	}
	return ReportTimeGroup{Time: t}, true
}
