package models

// WeatherCondition is the normalized condition bucket exposed by the API,
// mapped from the free-text condition of the upstream provider.
type WeatherCondition string

const (
	ConditionSunny  WeatherCondition = "sunny"
	ConditionCloudy WeatherCondition = "cloudy"
	ConditionRainy  WeatherCondition = "rainy"
	ConditionStormy WeatherCondition = "stormy"
	ConditionFoggy  WeatherCondition = "foggy"
)

// ForecastDay is one day of forecast data.
type ForecastDay struct {
	Date      string           `json:"date"`
	MaxTemp   float64          `json:"maxTemp"`
	MinTemp   float64          `json:"minTemp"`
	Condition WeatherCondition `json:"condition"`
}

// WeatherReport is the composed weather response for a city.
type WeatherReport struct {
	Location    string           `json:"location"`
	Temperature float64          `json:"temperature"`
	Humidity    int              `json:"humidity"`
	Wind        float64          `json:"wind"`
	Condition   WeatherCondition `json:"condition"`
	Forecast    []ForecastDay    `json:"forecast"`
	Advice      string           `json:"advice"`
}
