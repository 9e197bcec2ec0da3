package calendar

import (
	"context"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"familyboard/config"
	"familyboard/models"
)

// Fetcher is the per-calendar fetch seam used by the aggregator.
type Fetcher interface {
	FetchDayEvents(ctx context.Context, accessToken, calendarID, person, color string, date time.Time) []models.CalendarEvent
}

var _ Fetcher = (*Client)(nil)

// Service aggregates per-person day calendars into one sorted list. The
// merged list and loading flag are the only shared state; a sequence number
// makes sure a superseded fetch cycle never overwrites a newer one.
type Service struct {
	fetcher Fetcher

	seq atomic.Uint64

	mu      sync.Mutex
	events  []models.CalendarEvent
	loading bool
}

// NewService creates an aggregator over the given fetcher.
func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// RefreshAll runs one fetch cycle: one task per person that has a calendar
// identifier (the rest are silently skipped), all run concurrently, then
// flattened and sorted ascending by start time. Per-person failures already
// degrade to empty lists, so the cycle always completes and clears the
// loading flag. The result is published only while this is still the most
// recent cycle started.
func (s *Service) RefreshAll(ctx context.Context, accessToken string, people []config.Person, date time.Time) []models.CalendarEvent {
	cycle := s.seq.Add(1)
	cycleID := uuid.NewString()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	targets := make([]config.Person, 0, len(people))
	for _, p := range people {
		if p.CalendarID != "" {
			targets = append(targets, p)
		}
	}

	workers := pool.NewWithResults[[]models.CalendarEvent]()
	for _, p := range targets {
		workers.Go(func() []models.CalendarEvent {
			return s.fetcher.FetchDayEvents(ctx, accessToken, p.CalendarID, p.Name, p.Color, date)
		})
	}

	merged := make([]models.CalendarEvent, 0)
	for _, events := range workers.Wait() {
		merged = append(merged, events...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if cycle == s.seq.Load() {
		s.events = merged
		s.loading = false
		log.Printf("[calendar] cycle %s published calendars=%d events=%d", cycleID, len(targets), len(merged))
	} else {
		log.Printf("[calendar] cycle %s superseded, result dropped", cycleID)
	}
	return merged
}

// Events returns a snapshot of the most recently published event list.
func (s *Service) Events() []models.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.CalendarEvent, len(s.events))
	copy(snapshot, s.events)
	return snapshot
}

// Loading reports whether a fetch cycle is still outstanding.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
