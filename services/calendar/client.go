package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"familyboard/models"
)

const calendarAPIBaseURL = "https://www.googleapis.com/calendar/v3"

// Client fetches events from the Google Calendar v3 REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// eventTime is the provider's start/end shape: a precise dateTime for timed
// events or a date-only field for all-day events.
type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

type eventItem struct {
	ID      string     `json:"id"`
	Summary string     `json:"summary,omitempty"`
	Start   *eventTime `json:"start,omitempty"`
	End     *eventTime `json:"end,omitempty"`
}

type eventsResponse struct {
	Items []eventItem `json:"items"`
}

// NewClient creates a new calendar API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    calendarAPIBaseURL,
	}
}

// DayWindow returns the inclusive [startOfDay, endOfDay] pair for date in
// its own location.
func DayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// FetchDayEvents requests the given day's events for one calendar and
// normalizes them into CalendarEvents attributed to person/color. It never
// fails: any transport error, non-2xx status, or malformed payload is
// logged and yields an empty list, so one calendar cannot take down its
// siblings.
func (c *Client) FetchDayEvents(ctx context.Context, accessToken, calendarID, person, color string, date time.Time) []models.CalendarEvent {
	timeMin, timeMax := DayWindow(date)

	query := url.Values{}
	query.Set("timeMin", timeMin.Format(time.RFC3339))
	query.Set("timeMax", timeMax.Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(calendarID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("[calendar] create request for %s: %v", person, err)
		return []models.CalendarEvent{}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[calendar] fetch events for %s: %v", person, err)
		return []models.CalendarEvent{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[calendar] fetch events for %s: unexpected status %s", person, resp.Status)
		return []models.CalendarEvent{}
	}

	var payload eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[calendar] decode events for %s: %v", person, err)
		return []models.CalendarEvent{}
	}

	events := make([]models.CalendarEvent, 0, len(payload.Items))
	for _, item := range payload.Items {
		events = append(events, models.CalendarEvent{
			ID:     item.ID,
			Title:  models.TitleOrDefault(item.Summary),
			Start:  parseEventTime(item.Start, date.Location()),
			End:    parseEventTime(item.End, date.Location()),
			Person: person,
			Color:  color,
		})
	}
	return events
}

// parseEventTime prefers the precise dateTime field and falls back to the
// all-day date field, interpreted in the viewer's location.
func parseEventTime(et *eventTime, loc *time.Location) time.Time {
	if et == nil {
		return time.Time{}
	}
	if et.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, et.DateTime); err == nil {
			return t.In(loc)
		}
	}
	if et.Date != "" {
		if t, err := time.ParseInLocation("2006-01-02", et.Date, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
