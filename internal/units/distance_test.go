package units

import "testing"

func TestParseDistanceMeters(t *testing.T) {
	d, ok := ParseDistanceMeters("0800")
	if !ok || d.Integer != 800 || d.Unit != Meters {
		t.Fatalf("got %+v, ok=%v", d, ok)
	}

	d, ok = ParseDistanceMeters("9999")
	if !ok || d.Integer != 10000 || d.Modifier != ModifierMoreThan {
		t.Fatalf("9999 normalisation: got %+v, ok=%v", d, ok)
	}

	d, ok = ParseDistanceMeters("////")
	if !ok || d.Reported {
		t.Fatalf("not reported case: got %+v, ok=%v", d, ok)
	}
}

func TestParseDistanceMiles(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantOK      bool
		wantInt     int
		wantHasInt  bool
		wantNum     int
		wantDen     int
		wantHasFrac bool
		wantMod     DistanceModifier
	}{
		{"bare integer", "5SM", true, 5, true, 0, 0, false, ModifierNone},
		{"bare fraction", "3/4SM", true, 0, false, 3, 4, true, ModifierNone},
		{"integer plus fraction renormalised", "13/4SM", true, 1, true, 3, 4, true, ModifierNone},
		{"modifier prefix", "P6SM", true, 6, true, 0, 0, false, ModifierMoreThan},
		{"less than half", "M1/4SM", true, 0, false, 1, 4, true, ModifierLessThan},
		{"not reported", "////SM", true, 0, false, 0, 0, false, ModifierNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDistanceMiles(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.HasInteger != tt.wantHasInt || got.Integer != tt.wantInt {
				t.Errorf("integer part: got hasInt=%v int=%d, want hasInt=%v int=%d", got.HasInteger, got.Integer, tt.wantHasInt, tt.wantInt)
			}
			if got.HasFraction != tt.wantHasFrac || (tt.wantHasFrac && got.Fraction != Fraction{Num: tt.wantNum, Den: tt.wantDen}) {
				t.Errorf("fraction part: got %+v, want num=%d den=%d hasFrac=%v", got.Fraction, tt.wantNum, tt.wantDen, tt.wantHasFrac)
			}
			if got.Modifier != tt.wantMod {
				t.Errorf("modifier: got %v, want %v", got.Modifier, tt.wantMod)
			}
		})
	}
}

func TestCombineIntegerAndFraction(t *testing.T) {
	integer, _ := ParseDistanceMiles("1SM")
	fraction, _ := ParseDistanceMiles("3/4SM")

	combined, ok := CombineIntegerAndFraction(integer, fraction)
	if !ok {
		t.Fatal("expected combine to succeed")
	}
	if combined.Integer != 1 || combined.Fraction != (Fraction{Num: 3, Den: 4}) {
		t.Errorf("got %+v", combined)
	}

	// Mismatched units must not combine.
	meters, _ := ParseDistanceMeters("0800")
	if _, ok := CombineIntegerAndFraction(meters, fraction); ok {
		t.Error("expected decline on unit mismatch")
	}
}

func TestDistanceConversions(t *testing.T) {
	d, _ := ParseDistanceMiles("1SM")
	m, ok := d.ToMeters()
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if diff := m - 1609.347; diff > 0.01 || diff < -0.01 {
		t.Errorf("1SM in meters = %v, want ~1609.347", m)
	}
}
