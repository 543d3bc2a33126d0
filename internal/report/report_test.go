package report

import (
	"strings"
	"testing"

	"metartaf/internal/group"
)

func TestParseMetarHappyPath(t *testing.T) {
	r := Parse("METAR KJFK 221951Z 24012KT 10SM FEW250 24/18 A3012 RMK AO2 SLP201")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
	if r.ReportType != ReportMetar {
		t.Fatalf("reportType=%v, want Metar", r.ReportType)
	}
	var sawWind, sawVisibility, sawTemperature bool
	for _, gr := range r.Groups {
		switch gr.Group.Kind() {
		case group.KindWind:
			sawWind = true
		case group.KindVisibility:
			sawVisibility = true
		case group.KindTemperature:
			sawTemperature = true
		}
	}
	if !sawWind || !sawVisibility || !sawTemperature {
		t.Fatalf("missing expected groups: wind=%v visibility=%v temperature=%v", sawWind, sawVisibility, sawTemperature)
	}
}

func TestParseMetarWithoutExplicitKeyword(t *testing.T) {
	r := Parse("KJFK 221951Z 24012KT 10SM FEW250 24/18 A3012")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
	if r.ReportType != ReportMetar {
		t.Fatalf("reportType=%v, want Metar", r.ReportType)
	}
}

func TestParseTafHappyPath(t *testing.T) {
	r := Parse("TAF KJFK 221730Z 2218/2324 24012KT P6SM FEW250 BECMG 2300/2302 18008KT")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
	if r.ReportType != ReportTaf {
		t.Fatalf("reportType=%v, want Taf", r.ReportType)
	}
}

func TestParseTafCancelled(t *testing.T) {
	r := Parse("TAF KJFK 221730Z 2218/2324 CNL")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
}

func TestParseNilReport(t *testing.T) {
	r := Parse("METAR KJFK 221951Z NIL")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
}

func TestParseEmptyReportIsError(t *testing.T) {
	r := Parse("   ")
	if r.Error != ErrEmptyReport {
		t.Fatalf("err=%v, want ErrEmptyReport", r.Error)
	}
}

func TestParseTrailingEqualsStripped(t *testing.T) {
	r := Parse("METAR KJFK 221951Z 24012KT 10SM FEW250 24/18 A3012=")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
}

func TestParseCnlRejectedInMetar(t *testing.T) {
	r := Parse("METAR KJFK 221951Z 24012KT CNL")
	if r.Error != ErrCnlAllowedInTafOnly {
		t.Fatalf("err=%v, want ErrCnlAllowedInTafOnly", r.Error)
	}
}

func TestParseAmdRejectedInMetar(t *testing.T) {
	r := Parse("METAR AMD KJFK 221951Z 24012KT")
	if r.Error != ErrAmdAllowedInTafOnly {
		t.Fatalf("err=%v, want ErrAmdAllowedInTafOnly", r.Error)
	}
}

func TestParseMaintenanceIndicatorThenGroupIsError(t *testing.T) {
	r := Parse("METAR KJFK 221951Z 24012KT RMK $ AO2")
	if r.Error != ErrUnexpectedGroupAfterMaintenanceIndicator {
		t.Fatalf("err=%v, want ErrUnexpectedGroupAfterMaintenanceIndicator", r.Error)
	}
}

func TestParseMissingLocationIsError(t *testing.T) {
	r := Parse("METAR 221951Z 24012KT")
	if r.Error != ErrExpectedLocation {
		t.Fatalf("err=%v, want ErrExpectedLocation", r.Error)
	}
}

func TestParseTrendCombinesAcrossTokens(t *testing.T) {
	r := Parse("TAF KJFK 221730Z 2218/2324 24012KT P6SM BECMG 2300/2302 18008KT")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
	found := false
	for _, gr := range r.Groups {
		if tg, ok := gr.Group.(group.TrendGroup); ok {
			found = true
			if !tg.IsValid() {
				t.Errorf("trend group invalid: %+v", tg)
			}
		}
	}
	if !found {
		t.Fatal("expected a combined trend group in the result")
	}
}

func TestExtendedParseRecordsTrace(t *testing.T) {
	r := ExtendedParse("METAR KJFK 221951Z 24012KT 10SM FEW250 24/18 A3012")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
	for _, gr := range r.Groups {
		if gr.Trace == nil {
			t.Errorf("group %+v missing trace", gr)
			continue
		}
		if len(gr.Trace.Attempts) == 0 {
			t.Errorf("group %+v has no recorded attempts", gr)
		}
	}
}

func TestExtendedParseCombinedSourceKeepsFullText(t *testing.T) {
	r := ExtendedParse("TAF KJFK 221730Z 2218/2324 24012KT P6SM PROB30 TEMPO 1818/1824 4SM TSRA")
	if r.Error != ErrNone {
		t.Fatalf("err=%v", r.Error)
	}
	var found *GroupResult
	for i := range r.Groups {
		if _, ok := r.Groups[i].Group.(group.TrendGroup); ok {
			found = &r.Groups[i]
		}
	}
	if found == nil {
		t.Fatal("expected a combined trend group")
	}
	if !strings.Contains(found.Source, "PROB30") || !strings.Contains(found.Source, "TEMPO") || !strings.Contains(found.Source, "1818/1824") {
		t.Errorf("Source = %q, want full combined text", found.Source)
	}
}
