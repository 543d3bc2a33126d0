package group

import (
	"testing"

	"metartaf/internal/units"
)

func TestParseWind(t *testing.T) {
	g, ok := ParseWind("24012G20KT", PartMetar)
	if !ok {
		t.Fatal("expected ok")
	}
	w := g.(WindGroup)
	if w.Direction.Degrees != 240 || w.Speed.Value != 12 || !w.HasGust || w.Gust.Value != 20 {
		t.Fatalf("got %+v", w)
	}
	if !w.IsValid() {
		t.Error("expected valid (12 < 20)")
	}
}

func TestParseWindGustNotGreaterInvalid(t *testing.T) {
	g, _ := ParseWind("24020G15KT", PartMetar)
	w := g.(WindGroup)
	if w.IsValid() {
		t.Error("expected invalid: gust not greater than wind speed")
	}
}

func TestParseWindCalm(t *testing.T) {
	g, ok := ParseWind("00000KT", PartMetar)
	if !ok {
		t.Fatal("expected ok")
	}
	w := g.(WindGroup)
	if !w.IsCalm() {
		t.Errorf("expected calm, got %+v", w)
	}
}

func TestParseWindShearHeight(t *testing.T) {
	g, ok := ParseWind("WS020/24035KT", PartTaf)
	if !ok {
		t.Fatal("expected ok")
	}
	w := g.(WindGroup)
	if !w.HasShearHeight || w.ShearHeightFt != 2000 {
		t.Errorf("got %+v", w)
	}
}

func TestWindCombineVariableSector(t *testing.T) {
	surface, _ := ParseWind("24012KT", PartMetar)
	sector, _ := ParseWindVariableSector("210V270", PartMetar)

	merged, ok := Combine(surface, sector)
	if !ok {
		t.Fatal("expected combine to succeed")
	}
	w := merged.(WindGroup)
	if !w.HasVariableSector || w.SectorFrom.Degrees != 210 || w.SectorTo.Degrees != 270 {
		t.Errorf("got %+v", w)
	}
}

func TestParseWindVRBDirection(t *testing.T) {
	g, ok := ParseWind("VRB03KT", PartMetar)
	if !ok {
		t.Fatal("expected ok")
	}
	w := g.(WindGroup)
	if w.Direction.Status != units.Variable {
		t.Errorf("got %+v", w)
	}
}
