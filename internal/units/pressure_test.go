package units

import "testing"

func TestParsePressureQA(t *testing.T) {
	p, ok := ParsePressureQA("Q1013")
	if !ok || p.Unit != HPA || p.Value != 1013 {
		t.Fatalf("got %+v, ok=%v", p, ok)
	}

	p, ok = ParsePressureQA("A2992")
	if !ok || p.Unit != INHG {
		t.Fatalf("got %+v, ok=%v", p, ok)
	}
	if diff := p.Value - 29.92; diff > 0.001 || diff < -0.001 {
		t.Errorf("A2992 -> %v, want 29.92", p.Value)
	}
}

func TestParsePressureSLP(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"SLP013", 1001.3}, // nnn < 500 -> base 1000
		{"SLP982", 998.2},  // nnn >= 500 -> base 900
	}
	for _, tt := range tests {
		p, ok := ParsePressureSLP(tt.in)
		if !ok {
			t.Fatalf("%s: expected ok", tt.in)
		}
		if diff := p.Value - tt.want; diff > 0.01 || diff < -0.01 {
			t.Errorf("%s -> %v, want %v", tt.in, p.Value, tt.want)
		}
	}
}

func TestParsePressureQFE(t *testing.T) {
	p, ok := ParsePressureQFE("QFE761/1014")
	if !ok || p.Unit != MMHG || p.Value != 761 {
		t.Fatalf("got %+v, ok=%v", p, ok)
	}
}

func TestParsePressureForecast(t *testing.T) {
	p, ok := ParsePressureForecast("QNH2992INS")
	if !ok || p.Unit != HPA || p.Value != 2992 {
		t.Fatalf("got %+v, ok=%v", p, ok)
	}
}

func TestPressureConversions(t *testing.T) {
	p := Pressure{Reported: true, Value: 1013.25, Unit: HPA}
	inHg, ok := p.ToInHg()
	if !ok {
		t.Fatal("expected ok")
	}
	if diff := inHg - 29.92; diff > 0.01 || diff < -0.01 {
		t.Errorf("1013.25 hPa -> %v inHg, want ~29.92", inHg)
	}
}
