package handlers

import (
	"net/http"
	"strconv"

	"familyboard/services/weather"
)

// WeatherHandler serves ambient weather data for the dashboard's location.
// The front end supplies coordinates; geolocation stays on its side.
type WeatherHandler struct {
	weatherClient *weather.Client
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(weatherClient *weather.Client) *WeatherHandler {
	return &WeatherHandler{weatherClient: weatherClient}
}

// Forecast returns current conditions plus the daily forecast.
// GET /api/weather?latitude=..&longitude=..
func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	latitude, err := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	if err != nil {
		jsonError(w, "Invalid latitude", http.StatusBadRequest)
		return
	}
	longitude, err := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if err != nil {
		jsonError(w, "Invalid longitude", http.StatusBadRequest)
		return
	}

	report, err := h.weatherClient.Forecast(r.Context(), latitude, longitude)
	if err != nil {
		jsonError(w, "Weather lookup failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, report)
}
