package report

import "testing"

func TestClassifyKeywords(t *testing.T) {
	cases := map[string]SyntaxCategory{
		"METAR": CatMetar,
		"SPECI": CatSpeci,
		"TAF":   CatTaf,
		"COR":   CatCor,
		"AMD":   CatAmd,
		"NIL":   CatNil,
		"CNL":   CatCnl,
		"RMK":   CatRmk,
		"$":     CatMaintenanceIndicator,
	}
	for token, want := range cases {
		if got := classify(token); got != want {
			t.Errorf("classify(%q) = %v, want %v", token, got, want)
		}
	}
}

func TestClassifyShapes(t *testing.T) {
	cases := map[string]SyntaxCategory{
		"KJFK":      CatLocation,
		"EGLL":      CatLocation,
		"K2J":       CatOther,
		"221951Z":   CatReportTime,
		"2212/2318": CatTimeSpan,
		"24012KT":   CatOther,
		"":          CatOther,
	}
	for token, want := range cases {
		if got := classify(token); got != want {
			t.Errorf("classify(%q) = %v, want %v", token, got, want)
		}
	}
}
