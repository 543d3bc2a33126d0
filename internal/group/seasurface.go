package group

import (
	"strings"

	"metartaf/internal/units"
)

// SeaSurfaceGroup is "Wtt/Hhhh" or "Wtt/Sd": sea surface temperature
// plus a wave height, either explicit decimetres or a sea-state
// descriptor digit.
type SeaSurfaceGroup struct {
	Temperature units.Temperature
	WaveHeight  units.WaveHeight
}

func (SeaSurfaceGroup) Kind() Kind    { return KindSeaSurface }
func (SeaSurfaceGroup) IsValid() bool { return true }

// ParseSeaSurface recognizes "Wtt/Hhhh" and "Wtt/Sd" in remarks.
func ParseSeaSurface(token string, part ReportPart) (Group, bool) {
	if part != PartRemarks {
		return SeaSurfaceGroup{}, false
	}
	if !strings.HasPrefix(token, "W") {
		return SeaSurfaceGroup{}, false
	}
	slash := strings.IndexByte(token, '/')
	if slash < 0 {
		return SeaSurfaceGroup{}, false
	}
	temp, ok := units.ParseTemperature(token[1:slash])
	if !ok {
		return SeaSurfaceGroup{}, false
	}
	body := token[slash+1:]
	if len(body) < 2 {
		return SeaSurfaceGroup{}, false
	}
	switch body[0] {
	case 'H':
		wh, ok := units.ParseWaveHeightExplicit(body[1:])
		if !ok {
			return SeaSurfaceGroup{}, false
		}
		return SeaSurfaceGroup{Temperature: temp, WaveHeight: wh}, true
	case 'S':
		wh, ok := units.ParseWaveHeightSurfaceState(body[1:])
		if !ok {
			return SeaSurfaceGroup{}, false
		}
		return SeaSurfaceGroup{Temperature: temp, WaveHeight: wh}, true
	default:
		return SeaSurfaceGroup{}, false
	}
}
