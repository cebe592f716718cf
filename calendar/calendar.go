// Package calendar is the scheduling collaborator boundary: session creation
// places an event, later session updates reschedule, retitle or delete it by
// the event ID stored on the session row.
package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coachdesk-backend/apperr"
	"coachdesk-backend/utils"
)

type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	GuestEmail  string
	Start       time.Time
	End         time.Time
	MeetingURL  string
}

type Service interface {
	CreateEvent(ctx context.Context, ev Event) (string, error)
	SetEventTime(ctx context.Context, id string, start, end time.Time) error
	SetEventTitle(ctx context.Context, id, title string) error
	SetVideoCallLink(ctx context.Context, id, url string) error
	DeleteEvent(ctx context.Context, id string) error
	FindEventsInRange(ctx context.Context, start, end time.Time) ([]Event, error)
	// GenerateMeetingLink returns a video-call URL for an online session. A
	// real conferencing API would mint one; the synthetic implementation
	// fabricates a meet-style link.
	GenerateMeetingLink(ctx context.Context, start time.Time, clientName string) (string, error)
}

// Synthetic keeps events in memory and fabricates meeting links. It stands in
// for a real calendar API in local runs and tests.
type Synthetic struct {
	mu     sync.Mutex
	events map[string]*Event
}

func NewSynthetic() *Synthetic {
	return &Synthetic{events: make(map[string]*Event)}
}

func (s *Synthetic) CreateEvent(_ context.Context, ev Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.ID = "ev_" + utils.GenerateRandomString(12)
	s.events[ev.ID] = &ev
	return ev.ID, nil
}

func (s *Synthetic) SetEventTime(_ context.Context, id string, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return apperr.NotFoundf("calendar event %s not found", id)
	}
	ev.Start, ev.End = start, end
	return nil
}

func (s *Synthetic) SetEventTitle(_ context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return apperr.NotFoundf("calendar event %s not found", id)
	}
	ev.Title = title
	return nil
}

func (s *Synthetic) SetVideoCallLink(_ context.Context, id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return apperr.NotFoundf("calendar event %s not found", id)
	}
	ev.MeetingURL = url
	return nil
}

func (s *Synthetic) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return apperr.NotFoundf("calendar event %s not found", id)
	}
	delete(s.events, id)
	return nil
}

func (s *Synthetic) FindEventsInRange(_ context.Context, start, end time.Time) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, ev := range s.events {
		if !ev.Start.Before(start) && ev.Start.Before(end) {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (s *Synthetic) GenerateMeetingLink(_ context.Context, _ time.Time, _ string) (string, error) {
	code := fmt.Sprintf("%s-%s-%s",
		utils.GenerateRandomString(3), utils.GenerateRandomString(4), utils.GenerateRandomString(3))
	return "https://meet.google.com/" + code, nil
}

// Get returns a stored event, for tests and diagnostics.
func (s *Synthetic) Get(id string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return Event{}, false
	}
	return *ev, true
}
