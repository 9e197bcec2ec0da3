package models

// CurrentConditions holds the current weather metrics shown on the dashboard.
type CurrentConditions struct {
	Temperature   int     `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     int     `json:"windSpeed"`
	WeatherCode   int     `json:"weatherCode"`
	Humidity      int     `json:"humidity"`
	FeelsLike     int     `json:"feelsLike"`
}

// DailyForecast is one day of the forecast strip.
type DailyForecast struct {
	Date          string  `json:"date"`
	MaxTemp       int     `json:"maxTemp"`
	MinTemp       int     `json:"minTemp"`
	WeatherCode   int     `json:"weatherCode"`
	Precipitation float64 `json:"precipitation"`
}

// WeatherReport bundles current conditions with the daily forecast.
type WeatherReport struct {
	Current CurrentConditions `json:"current"`
	Daily   []DailyForecast   `json:"daily"`
}
