package dispatch

import "metartaf/internal/group"

// Recognizers is the fixed, ordered recognizer list probed for every
// token. Order matters for ambiguity resolution (e.g. a 4-letter code
// is a Location only in the header, probed before the more permissive
// kinds). The 10 supplemented kinds are probed last, after all 18
// required kinds, so they never shadow a required kind.
var Recognizers = []Recognizer{
	{Name: "fixed", Parse: group.ParseFixed},
	{Name: "location", Parse: group.ParseLocation},
	{Name: "report_time", Parse: group.ParseReportTime},
	{Name: "trend", Parse: group.ParseTrendAtom},
	{Name: "wind", Parse: group.ParseWind},
	{Name: "wind_variable_sector", Parse: group.ParseWindVariableSector},
	{Name: "wind_shear_low_layer", Parse: group.ParseWindShearLowLayer},
	{Name: "visibility", Parse: group.ParseVisibility},
	{Name: "runway_visual_range", Parse: group.ParseRunwayVisualRange},
	{Name: "runway_state", Parse: group.ParseRunwayState},
	{Name: "cloud", Parse: group.ParseCloud},
	{Name: "weather", Parse: group.ParseWeather},
	{Name: "temperature", Parse: group.ParseTemperature},
	{Name: "temperature_forecast", Parse: group.ParseTemperatureForecast},
	{Name: "pressure", Parse: group.ParsePressure},
	{Name: "pressure_remark", Parse: group.ParsePressureRemark},
	{Name: "rainfall", Parse: group.ParseRainfall},
	{Name: "sea_surface", Parse: group.ParseSeaSurface},
	{Name: "colour_code", Parse: group.ParseColourCode},

	// Supplemented kinds (grounded on original_source/include/metaf.hpp),
	// probed only after every required kind above.
	{Name: "secondary_location", Parse: group.ParseSecondaryLocation},
	{Name: "min_max_temperature", Parse: group.ParseMinMaxTemperature},
	{Name: "layer_forecast", Parse: group.ParseLayerForecast},
	{Name: "pressure_tendency", Parse: group.ParsePressureTendency},
	{Name: "cloud_types", Parse: group.ParseCloudTypesRemark},
	{Name: "cloud_layers", Parse: group.ParseCloudLayersRemark},
	{Name: "lightning", Parse: group.ParseLightning},
	{Name: "vicinity", Parse: group.ParseVicinity},
	{Name: "misc", Parse: group.ParseMisc},
	{Name: "hourly_precipitation", Parse: group.ParseHourlyPrecipitation},
}

// Fallback is the PlainText recognizer tried when every Recognizers
// entry declines.
var Fallback = Recognizer{Name: "plain_text", Parse: group.ParsePlainText}

// Default builds the standard Dispatcher wired with Recognizers and
// Fallback.
func Default() *Dispatcher {
	return New(Recognizers, Fallback)
}
