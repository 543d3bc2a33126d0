package units

import "testing"

func TestParseTimeDDHHMM(t *testing.T) {
	got, ok := ParseTimeDDHHMM("181830")
	if !ok {
		t.Fatal("expected ok")
	}
	want := Time{HasDay: true, Day: 18, Hour: 18, Minute: 30}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if _, ok := ParseTimeDDHHMM("1818"); ok {
		t.Error("expected decline on short input")
	}
}

func TestParseTimeDDHH(t *testing.T) {
	got, ok := ParseTimeDDHH("1812")
	if !ok {
		t.Fatal("expected ok")
	}
	want := Time{HasDay: true, Day: 18, Hour: 12}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseTimeHHMM(t *testing.T) {
	got, ok := ParseTimeHHMM("1830")
	if !ok {
		t.Fatal("expected ok")
	}
	if got.HasDay {
		t.Error("expected no day")
	}
	if got.Hour != 18 || got.Minute != 30 {
		t.Errorf("got %+v", got)
	}
}

func TestTimeIsValid(t *testing.T) {
	tests := []struct {
		name string
		t    Time
		want bool
	}{
		{"valid with day", Time{HasDay: true, Day: 18, Hour: 18, Minute: 30}, true},
		{"valid no day", Time{Hour: 24, Minute: 0}, true},
		{"day out of range", Time{HasDay: true, Day: 32, Hour: 0, Minute: 0}, false},
		{"hour out of range", Time{Hour: 25}, false},
		{"minute out of range", Time{Minute: 60}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
