package calendar

import (
	"context"
	"sync"
	"testing"
	"time"

	"familyboard/config"
	"familyboard/models"
)

// stubFetcher returns canned events per calendar id and records calls.
type stubFetcher struct {
	mu      sync.Mutex
	results map[string][]models.CalendarEvent
	calls   []string
	gate    chan struct{} // when set, the named calendar blocks until closed
	gateFor string
}

func (f *stubFetcher) FetchDayEvents(ctx context.Context, accessToken, calendarID, person, color string, date time.Time) []models.CalendarEvent {
	f.mu.Lock()
	f.calls = append(f.calls, calendarID)
	gate := f.gate
	gated := f.gateFor == calendarID && gate != nil
	f.mu.Unlock()

	if gated {
		<-gate
	}

	events := f.results[calendarID]
	out := make([]models.CalendarEvent, len(events))
	copy(out, events)
	for i := range out {
		out[i].Person = person
		out[i].Color = color
	}
	return out
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func eventAt(id string, start time.Time) models.CalendarEvent {
	return models.CalendarEvent{ID: id, Title: "event " + id, Start: start, End: start.Add(30 * time.Minute)}
}

func TestRefreshAllMergesAndSorts(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{results: map[string][]models.CalendarEvent{
		"cal-a": {eventAt("a2", day.Add(14*time.Hour)), eventAt("a1", day.Add(9*time.Hour))},
		"cal-b": {eventAt("b1", day.Add(10*time.Hour))},
	}}
	service := NewService(fetcher)

	people := []config.Person{
		{Name: "John", Color: "#A8E6CF", CalendarID: "cal-a"},
		{Name: "Jane", Color: "#B8E0F6", CalendarID: "cal-b"},
	}

	merged := service.RefreshAll(context.Background(), "token", people, day)

	if len(merged) != 3 {
		t.Fatalf("expected 3 events (sum of inputs), got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Start.Before(merged[i-1].Start) {
			t.Fatalf("merged list not sorted by start: %v", merged)
		}
	}

	if service.Loading() {
		t.Fatalf("expected loading flag cleared after completion")
	}
	if got := service.Events(); len(got) != 3 {
		t.Fatalf("expected published snapshot of 3 events, got %d", len(got))
	}
}

func TestRefreshAllSkipsPeopleWithoutCalendar(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{results: map[string][]models.CalendarEvent{
		"cal-a": {eventAt("a1", day.Add(9 * time.Hour))},
	}}
	service := NewService(fetcher)

	people := []config.Person{
		{Name: "John", Color: "#A8E6CF", CalendarID: "cal-a"},
		{Name: "Jane", Color: "#B8E0F6"}, // no calendar id
	}

	merged := service.RefreshAll(context.Background(), "token", people, day)

	if fetcher.callCount() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fetcher.callCount())
	}
	if len(merged) != 1 || merged[0].Person != "John" {
		t.Fatalf("expected only John's event, got %+v", merged)
	}
}

func TestRefreshAllEmptyResults(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{results: map[string][]models.CalendarEvent{}}
	service := NewService(fetcher)

	people := []config.Person{
		{Name: "John", Color: "#A8E6CF", CalendarID: "cal-a"},
	}

	merged := service.RefreshAll(context.Background(), "token", people, day)
	if len(merged) != 0 {
		t.Fatalf("expected empty merge, got %d events", len(merged))
	}
	if service.Loading() {
		t.Fatalf("expected loading flag cleared even with empty results")
	}
}

func TestRefreshAllSupersededCycleDoesNotPublish(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	gate := make(chan struct{})
	fetcher := &stubFetcher{
		results: map[string][]models.CalendarEvent{
			"cal-slow": {eventAt("old", day.Add(9 * time.Hour))},
			"cal-fast": {eventAt("new", day.Add(10 * time.Hour))},
		},
		gate:    gate,
		gateFor: "cal-slow",
	}
	service := NewService(fetcher)

	slowPeople := []config.Person{{Name: "John", Color: "#A8E6CF", CalendarID: "cal-slow"}}
	fastPeople := []config.Person{{Name: "Jane", Color: "#B8E0F6", CalendarID: "cal-fast"}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		service.RefreshAll(context.Background(), "token", slowPeople, day)
	}()

	// Wait until the slow cycle is in flight, then run a newer one.
	deadline := time.After(2 * time.Second)
	for fetcher.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("slow cycle never started")
		case <-time.After(time.Millisecond):
		}
	}

	service.RefreshAll(context.Background(), "token", fastPeople, day)

	// Let the superseded cycle finish.
	close(gate)
	<-done

	events := service.Events()
	if len(events) != 1 || events[0].ID != "new" {
		t.Fatalf("expected the newer cycle's result to win, got %+v", events)
	}
}
