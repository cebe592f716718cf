package calendar

import (
	"context"
	"regexp"
	"testing"
	"time"

	"coachdesk-backend/apperr"
)

func TestSynthetic_EventLifecycle(t *testing.T) {
	cal := NewSynthetic()
	ctx := context.Background()
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.Local)

	id, err := cal.CreateEvent(ctx, Event{Title: "Coaching: hanako (trial)", Start: start, End: start.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newStart := start.AddDate(0, 0, 7)
	if err := cal.SetEventTime(ctx, id, newStart, newStart.Add(30*time.Minute)); err != nil {
		t.Fatalf("set time: %v", err)
	}
	ev, ok := cal.Get(id)
	if !ok || !ev.Start.Equal(newStart) {
		t.Fatalf("event not moved: %+v", ev)
	}

	if err := cal.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := cal.Get(id); ok {
		t.Fatal("event survived delete")
	}
	if err := cal.DeleteEvent(ctx, id); !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found on double delete, got %v", err)
	}
}

func TestSynthetic_FindEventsInRange(t *testing.T) {
	cal := NewSynthetic()
	ctx := context.Background()
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)

	cal.CreateEvent(ctx, Event{Title: "in", Start: day.Add(10 * time.Hour)})
	cal.CreateEvent(ctx, Event{Title: "boundary", Start: day.AddDate(0, 0, 1)})
	cal.CreateEvent(ctx, Event{Title: "out", Start: day.AddDate(0, 0, 2)})

	events, err := cal.FindEventsInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(events) != 1 || events[0].Title != "in" {
		t.Fatalf("half-open range violated: %+v", events)
	}
}

func TestSynthetic_GenerateMeetingLink(t *testing.T) {
	cal := NewSynthetic()

	link, err := cal.GenerateMeetingLink(context.Background(), time.Now(), "hanako")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	pattern := regexp.MustCompile(`^https://meet\.google\.com/[a-z0-9]{3}-[a-z0-9]{4}-[a-z0-9]{3}$`)
	if !pattern.MatchString(link) {
		t.Fatalf("unexpected link shape: %q", link)
	}
}
