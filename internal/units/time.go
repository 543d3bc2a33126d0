package units

import "strconv"

// Time represents the day/hour/minute of an occurrence. Day is optional:
// remark timestamps and trend partial-times omit it.
type Time struct {
	HasDay bool
	Day    int
	Hour   int
	Minute int
}

// IsValid checks the field ranges declared for Time: day 1-31 (when
// present), hour 0-24, minute 0-59.
func (t Time) IsValid() bool {
	if t.HasDay && (t.Day < 1 || t.Day > 31) {
		return false
	}
	if t.Hour < 0 || t.Hour > 24 {
		return false
	}
	if t.Minute < 0 || t.Minute > 59 {
		return false
	}
	return true
}

// ParseTimeDDHHMM parses the 6-digit day/hour/minute form used by report
// times and trend FM/TL/AT partial times once combined with a day.
func ParseTimeDDHHMM(s string) (Time, bool) {
	if len(s) != 6 || !allDigits(s) {
		return Time{}, false
	}
	day, _ := strconv.Atoi(s[0:2])
	hour, _ := strconv.Atoi(s[2:4])
	minute, _ := strconv.Atoi(s[4:6])
	return Time{HasDay: true, Day: day, Hour: hour, Minute: minute}, true
}

// ParseTimeDDHH parses the 4-digit day/hour form used by trend time spans
// (DDHH/DDHH).
func ParseTimeDDHH(s string) (Time, bool) {
	if len(s) != 4 || !allDigits(s) {
		return Time{}, false
	}
	day, _ := strconv.Atoi(s[0:2])
	hour, _ := strconv.Atoi(s[2:4])
	return Time{HasDay: true, Day: day, Hour: hour, Minute: 0}, true
}

// ParseTimeHHMM parses the 4-digit hour/minute-only form used by METAR
// trend partial times (FMHHMM/TLHHMM/ATHHMM) and TAF FM times before the
// day prefix is attached.
func ParseTimeHHMM(s string) (Time, bool) {
	if len(s) != 4 || !allDigits(s) {
		return Time{}, false
	}
	hour, _ := strconv.Atoi(s[0:2])
	minute, _ := strconv.Atoi(s[2:4])
	return Time{HasDay: false, Hour: hour, Minute: minute}, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
