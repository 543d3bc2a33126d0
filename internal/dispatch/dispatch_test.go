package dispatch

import (
	"testing"

	"metartaf/internal/group"
)

func TestDispatchOrderedProbing(t *testing.T) {
	d := Default()

	g, ok := d.Dispatch("KJFK", group.PartHeader)
	if !ok || g.Kind() != group.KindLocation {
		t.Fatalf("got %+v, ok=%v, want Location", g, ok)
	}

	g, ok = d.Dispatch("24012KT", group.PartMetar)
	if !ok || g.Kind() != group.KindWind {
		t.Fatalf("got %+v, ok=%v, want Wind", g, ok)
	}
}

func TestDispatchFallsBackToPlainText(t *testing.T) {
	d := Default()
	g, ok := d.Dispatch("ZZZNOTAREALTOKEN99", group.PartMetar)
	if !ok || g.Kind() != group.KindPlainText {
		t.Fatalf("got %+v, ok=%v, want PlainText fallback", g, ok)
	}
}

func TestDispatchWithTraceRecordsAttempts(t *testing.T) {
	d := Default()
	g, trace := d.DispatchWithTrace("24012KT", group.PartMetar)
	if !trace.Matched || g.Kind() != group.KindWind {
		t.Fatalf("got %+v, trace=%+v", g, trace)
	}
	if len(trace.Attempts) == 0 {
		t.Error("expected at least one recorded attempt")
	}
	foundWind := false
	for _, a := range trace.Attempts {
		if a.Name == "wind" && a.Matched {
			foundWind = true
		}
	}
	if !foundWind {
		t.Error("expected the wind recognizer's attempt to be recorded as matched")
	}
}
