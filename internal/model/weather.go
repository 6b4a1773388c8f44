package model

// Condition is the provider's weather category used as a display lookup key
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionSnow         Condition = "Snow"
	ConditionHaze         Condition = "Haze"
	ConditionMist         Condition = "Mist"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionFog          Condition = "Fog"
)

// Conditions lists every tag the lookup tables know about
var Conditions = []Condition{
	ConditionClear, ConditionClouds, ConditionRain, ConditionSnow, ConditionHaze,
	ConditionMist, ConditionDrizzle, ConditionThunderstorm, ConditionFog,
}

// WeatherRecord mirrors the provider's current-weather payload.
// NotFound marks the placeholder shown after an unresolvable location.
type WeatherRecord struct {
	Name     string           `json:"name,omitempty"`
	Weather  []WeatherSummary `json:"weather,omitempty"`
	Main     MainReadings     `json:"main"`
	Wind     WindReadings     `json:"wind"`
	NotFound bool             `json:"notFound,omitempty"`
}

// WeatherSummary is one entry of the provider's "weather" array
type WeatherSummary struct {
	Main        Condition `json:"main"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}

type MainReadings struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
}

type WindReadings struct {
	Speed float64 `json:"speed"`
}

// NotFoundRecord is the sentinel record for a failed lookup
func NotFoundRecord() WeatherRecord {
	return WeatherRecord{NotFound: true}
}

// Condition returns the first reported condition, or "" when there is none
func (r WeatherRecord) Condition() Condition {
	if len(r.Weather) == 0 {
		return ""
	}
	return r.Weather[0].Main
}

// HasReadings reports whether the record can fill the weather panel
func (r WeatherRecord) HasReadings() bool {
	return !r.NotFound && len(r.Weather) > 0
}
