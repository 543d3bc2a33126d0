package group

import "testing"

func TestParseWeatherNotReported(t *testing.T) {
	g, ok := ParseWeather("//", PartMetar)
	if !ok || !g.(WeatherGroup).NotReported {
		t.Fatalf("got %+v, ok=%v", g, ok)
	}
}

func TestParseWeatherStructured(t *testing.T) {
	g, ok := ParseWeather("+TSRA", PartMetar)
	if !ok {
		t.Fatal("expected ok")
	}
	w := g.(WeatherGroup)
	if w.Qualifier != WeatherHeavy || w.Descriptor != DescriptorThunderstorm || len(w.Phenomena) != 1 || w.Phenomena[0] != "RA" {
		t.Errorf("got %+v", w)
	}
}

func TestParseWeatherImpliedModerate(t *testing.T) {
	g, ok := ParseWeather("RA", PartMetar)
	if !ok {
		t.Fatal("expected ok")
	}
	w := g.(WeatherGroup)
	if w.Qualifier != WeatherModerate {
		t.Errorf("plain RA should imply MODERATE, got %+v", w)
	}
}

func TestParseWeatherBlowingSnowNoImpliedModerate(t *testing.T) {
	g, ok := ParseWeather("BLSN", PartMetar)
	if !ok {
		t.Fatal("expected ok")
	}
	w := g.(WeatherGroup)
	if w.Qualifier != WeatherQualifierNone {
		t.Errorf("BLSN should not imply MODERATE, got %+v", w)
	}
}

func TestParseWeatherEmptyDeclines(t *testing.T) {
	if _, ok := ParseWeather("XX", PartMetar); ok {
		t.Error("expected decline on unknown phenomenon code")
	}
}
