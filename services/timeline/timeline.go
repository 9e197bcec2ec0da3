package timeline

import (
	"time"

	"familyboard/models"
)

// The display window is fixed at 08:00-18:00, drawn with 11 hourly markers.
const (
	WindowStartHour = 8
	WindowEndHour   = 18
)

// Position is the minute-based offset and duration of an event inside the
// display window, consumed 1:1 as pixel values by the front end.
type Position struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Layout computes the window position of an event. Events outside the
// window are not clipped: negative or over-range values pass through as-is.
func Layout(event models.CalendarEvent) Position {
	offset := (event.Start.Hour()-WindowStartHour)*60 + event.Start.Minute()
	length := (event.End.Hour()-event.Start.Hour())*60 + (event.End.Minute() - event.Start.Minute())
	return Position{Offset: offset, Length: length}
}

// FilterForDay keeps the events whose start, truncated to the local
// calendar day, equals the selected date truncated the same way.
func FilterForDay(events []models.CalendarEvent, date time.Time) []models.CalendarEvent {
	selected := startOfDay(date)

	filtered := make([]models.CalendarEvent, 0, len(events))
	for _, event := range events {
		if startOfDay(event.Start.In(date.Location())).Equal(selected) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// HourMarkers returns the hour labels of the display window, 08 through 18.
func HourMarkers() []int {
	markers := make([]int, 0, WindowEndHour-WindowStartHour+1)
	for h := WindowStartHour; h <= WindowEndHour; h++ {
		markers = append(markers, h)
	}
	return markers
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
