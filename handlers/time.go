package handlers

import (
	"net/http"
	"time"
)

// TimeHandler feeds the clock widget.
type TimeHandler struct{}

// NewTimeHandler creates a new time handler.
func NewTimeHandler() *TimeHandler {
	return &TimeHandler{}
}

// Now returns the server's current local time.
// GET /api/time
func (h *TimeHandler) Now(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, map[string]interface{}{
		"now":     now.Format(time.RFC3339),
		"weekday": now.Weekday().String(),
		"date":    now.Format("2006-01-02"),
		"time":    now.Format("15:04"),
	})
}
