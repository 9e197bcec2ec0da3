package models

import "time"

// DefaultEventTitle is substituted when the provider omits an event summary.
const DefaultEventTitle = "Sans titre"

// CalendarEvent is the normalized event shape shared by every calendar
// source. Events live in memory for a single fetch cycle and are replaced
// wholesale on the next fetch or date change. Start <= End is assumed, not
// validated; an event belongs to exactly one person.
type CalendarEvent struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Person string    `json:"person"`
	Color  string    `json:"color"`
}

// TitleOrDefault applies the fixed placeholder policy for absent summaries.
func TitleOrDefault(summary string) string {
	if summary == "" {
		return DefaultEventTitle
	}
	return summary
}
