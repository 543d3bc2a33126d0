package group

import "metartaf/internal/units"

// PressureSubtype distinguishes which of the four pressure group forms
// produced this value.
type PressureSubtype int

const (
	PressureObserved PressureSubtype = iota
	PressureForecast
	PressureSeaLevel
	PressureFieldElevation
)

// PressureGroup is an altimeter/QNH/QFE/SLP pressure reading.
type PressureGroup struct {
	Subtype  PressureSubtype
	Pressure units.Pressure
}

func (PressureGroup) Kind() Kind    { return KindPressure }
func (PressureGroup) IsValid() bool { return true }

// ParsePressure recognizes the observed "[QA]NNNN" form in a METAR
// body and the forecast "QNHNNNNINS" form in a TAF body.
func ParsePressure(token string, part ReportPart) (Group, bool) {
	switch part {
	case PartMetar:
		if p, ok := units.ParsePressureQA(token); ok {
			return PressureGroup{Subtype: PressureObserved, Pressure: p}, true
		}
	case PartTaf:
		if p, ok := units.ParsePressureForecast(token); ok {
			return PressureGroup{Subtype: PressureForecast, Pressure: p}, true
		}
	}
	return PressureGroup{}, false
}

// ParsePressureRemark recognizes the remark-only "SLPnnn" and
// "QFEnnn[/nnnn]" forms.
func ParsePressureRemark(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return PressureGroup{}, false
	}
	if p, ok := units.ParsePressureSLP(token); ok {
		return PressureGroup{Subtype: PressureSeaLevel, Pressure: p}, true
	}
	if p, ok := units.ParsePressureQFE(token); ok {
		return PressureGroup{Subtype: PressureFieldElevation, Pressure: p}, true
	}
	return PressureGroup{}, false
}
