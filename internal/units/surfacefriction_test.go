package units

import "testing"

func TestParseSurfaceFriction(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantOK     bool
		wantStatus SurfaceFrictionStatus
		wantCoef   int
		wantAction BrakingAction
	}{
		{"coefficient", "45", true, SFCoefficient, 45, BrakingActionNone},
		{"coefficient floor", "00", true, SFCoefficient, 0, BrakingActionNone},
		{"braking action poor", "91", true, SFBrakingAction, 0, BrakingActionPoor},
		{"braking action good", "95", true, SFBrakingAction, 40, BrakingActionGood},
		{"reserved", "96", false, 0, 0, BrakingActionNone},
		{"unreliable", "99", true, SFUnreliable, 0, BrakingActionNone},
		{"not reported", "//", true, SFNotReported, 0, BrakingActionNone},
		{"malformed", "9", false, 0, 0, BrakingActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSurfaceFriction(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Status != tt.wantStatus || got.Coefficient != tt.wantCoef || got.BrakingAction != tt.wantAction {
				t.Errorf("got %+v", got)
			}
		})
	}
}
