package group

import (
	"strconv"
	"strings"

	"metartaf/internal/units"
)

// WindGroup is the surface wind (direction/speed/gust, optional
// wind-shear height) or a variable-sector refinement, merged into the
// surface wind by Combine.
type WindGroup struct {
	Direction units.Direction
	Speed     units.Speed
	HasGust   bool
	Gust      units.Speed

	HasShearHeight bool
	ShearHeightFt  int // x100 ft, already multiplied out

	HasVariableSector bool
	SectorFrom        units.Direction
	SectorTo          units.Direction
}

func (WindGroup) Kind() Kind { return KindWind }

func (g WindGroup) IsValid() bool {
	if !g.Direction.IsValid() {
		return false
	}
	if g.HasGust {
		if g.Gust.Value == 0 {
			return false
		}
		if g.Speed.Reported && g.Gust.Reported && g.Speed.Value >= g.Gust.Value {
			return false
		}
	}
	if g.HasShearHeight && g.ShearHeightFt == 0 {
		return false
	}
	return true
}

// IsCalm reports a fully calm wind: zero direction, zero speed, no
// gust, shear or variable sector.
func (g WindGroup) IsCalm() bool {
	return g.Direction.Status == units.ValueDegrees && g.Direction.Degrees == 0 &&
		g.Speed.Reported && g.Speed.Value == 0 &&
		!g.HasGust && !g.HasShearHeight && !g.HasVariableSector
}

var windUnitSuffixes = []struct {
	suffix string
	unit   units.SpeedUnit
}{
	{"KT", units.KT},
	{"MPS", units.MPS},
	{"KMH", units.KMH},
}

// ParseWind recognizes the surface-wind/wind-shear form
// "[WSNNN/]?DDD{SPD}[GGST]?UNIT".
func ParseWind(token string, part ReportPart) (Group, bool) {
	if part != PartMetar && part != PartTaf {
		return WindGroup{}, false
	}

	body := token
	var shearHeightFt int
	hasShear := false
	if strings.HasPrefix(body, "WS") {
		slash := strings.IndexByte(body, '/')
		if slash < 3 || slash > 5 {
			return WindGroup{}, false
		}
		heightDigits := body[2:slash]
		if !allDigitsWind(heightDigits) {
			return WindGroup{}, false
		}
		h, err := strconv.Atoi(heightDigits)
		if err != nil {
			return WindGroup{}, false
		}
		shearHeightFt = h * 100
		hasShear = true
		body = body[slash+1:]
	}

	var unit units.SpeedUnit
	matched := false
	for _, u := range windUnitSuffixes {
		if strings.HasSuffix(body, u.suffix) {
			unit = u.unit
			body = strings.TrimSuffix(body, u.suffix)
			matched = true
			break
		}
	}
	if !matched {
		return WindGroup{}, false
	}

	hasGust := false
	gustValue := 0
	if idx := strings.IndexByte(body, 'G'); idx >= 0 {
		gv, ok := units.ParseSpeedValue(body[idx+1:])
		if !ok {
			return WindGroup{}, false
		}
		hasGust = true
		gustValue = gv
		body = body[:idx]
	}

	if len(body) < 5 {
		return WindGroup{}, false
	}
	dirPart, speedPart := body[:3], body[3:]

	var direction units.Direction
	switch dirPart {
	case "VRB":
		direction = units.Direction{Status: units.Variable}
	case "///":
		direction = units.Direction{Status: units.NotReportedDirection}
	default:
		d, ok := units.ParseDirection(dirPart)
		if !ok {
			return WindGroup{}, false
		}
		direction = d
	}

	speedValue, ok := units.ParseSpeedValue(speedPart)
	if !ok {
		return WindGroup{}, false
	}

	g := WindGroup{
		Direction: direction,
		Speed:     units.Speed{Reported: true, Value: speedValue, Unit: unit},
	}
	if hasGust {
		g.HasGust = true
		g.Gust = units.Speed{Reported: true, Value: gustValue, Unit: unit}
	}
	if hasShear {
		g.HasShearHeight = true
		g.ShearHeightFt = shearHeightFt
	}
	return g, true
}

// ParseWindVariableSector recognizes the "DDDVDDD" variable-sector
// refinement, two 3-digit directions separated by "V".
func ParseWindVariableSector(token string, part ReportPart) (Group, bool) {
	if part != PartMetar && part != PartTaf {
		return WindGroup{}, false
	}
	if len(token) != 7 || token[3] != 'V' {
		return WindGroup{}, false
	}
	from, ok1 := units.ParseDirection(token[:3])
	to, ok2 := units.ParseDirection(token[4:])
	if !ok1 || !ok2 {
		return WindGroup{}, false
	}
	return WindGroup{HasVariableSector: true, SectorFrom: from, SectorTo: to}, true
}

// Combine merges a variable-sector refinement into a preceding
// surface wind.
func (g WindGroup) Combine(next Group) (Group, bool) {
	n, ok := next.(WindGroup)
	if !ok {
		return nil, false
	}
	if g.HasVariableSector || !n.HasVariableSector {
		return nil, false
	}
	if !g.Direction.IsValid() && g.Direction.Status != units.ValueDegrees {
		return nil, false
	}
	merged := g
	merged.HasVariableSector = true
	merged.SectorFrom = n.SectorFrom
	merged.SectorTo = n.SectorTo
	return merged, true
}

func allDigitsWind(s string) bool {
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
