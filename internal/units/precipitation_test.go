package units

import "testing"

func TestParseRunwayDepositDepth(t *testing.T) {
	tests := []struct {
		in         string
		wantOK     bool
		wantStatus PrecipitationStatus
		wantValue  float64
	}{
		{"05", true, PrecipReported, 5},
		{"92", true, PrecipReported, 100},
		{"98", true, PrecipReported, 400},
		{"91", false, 0, 0},
		{"99", true, PrecipRunwayNotOperational, 0},
		{"//", true, PrecipNotReported, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRunwayDepositDepth(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Status != tt.wantStatus || got.ValueMM != tt.wantValue {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestParsePrecipitationHundredthsInch(t *testing.T) {
	p, ok := ParsePrecipitationHundredthsInch("2168")
	if !ok {
		t.Fatal("expected ok")
	}
	if diff := p.ValueMM - 550.672; diff > 0.01 || diff < -0.01 {
		t.Errorf("P2168 -> %v mm, want ~550.672", p.ValueMM)
	}
}

func TestParsePrecipitationRainfall(t *testing.T) {
	p, ok := ParsePrecipitationRainfall("12.4")
	if !ok || p.Status != PrecipReported || p.ValueMM != 12.4 {
		t.Fatalf("got %+v, ok=%v", p, ok)
	}

	p, ok = ParsePrecipitationRainfall("///")
	if !ok || p.Status != PrecipNotReported {
		t.Fatalf("got %+v, ok=%v", p, ok)
	}
}
