package handlers

import (
	"net/http"
	"time"

	"familyboard/config"
	"familyboard/models"
	"familyboard/services/auth"
	"familyboard/services/calendar"
	"familyboard/services/timeline"
)

// EventsHandler serves the aggregated day calendar with layout metadata.
type EventsHandler struct {
	configManager   *config.Manager
	authService     *auth.Service
	calendarService *calendar.Service
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(configManager *config.Manager, authService *auth.Service, calendarService *calendar.Service) *EventsHandler {
	return &EventsHandler{
		configManager:   configManager,
		authService:     authService,
		calendarService: calendarService,
	}
}

// positionedEvent is a CalendarEvent with its timeline position attached.
type positionedEvent struct {
	models.CalendarEvent
	Position timeline.Position `json:"position"`
}

// Day returns the selected day's events for every configured person,
// sorted by start time and positioned in the 08:00-18:00 window.
// GET /api/events?date=YYYY-MM-DD (defaults to today)
func (h *EventsHandler) Day(w http.ResponseWriter, r *http.Request) {
	state := h.authService.EnsureAuthenticated(r.Context())
	if !state.Authenticated {
		jsonError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			jsonError(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	appCfg, err := h.configManager.Load()
	if err != nil {
		jsonError(w, "Failed to load config: "+err.Error(), http.StatusInternalServerError)
		return
	}

	merged := h.calendarService.RefreshAll(r.Context(), state.AccessToken, appCfg.People, date)
	dayEvents := timeline.FilterForDay(merged, date)

	events := make([]positionedEvent, 0, len(dayEvents))
	for _, event := range dayEvents {
		events = append(events, positionedEvent{
			CalendarEvent: event,
			Position:      timeline.Layout(event),
		})
	}

	writeJSON(w, map[string]interface{}{
		"date":        date.Format("2006-01-02"),
		"events":      events,
		"people":      appCfg.People,
		"hourMarkers": timeline.HourMarkers(),
	})
}
