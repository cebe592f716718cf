// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily background jobs. Today that is one job: the
// next-day session reminder batch at 09:00 local time.
type Scheduler struct {
	cron   *cron.Cron
	emails *EmailService
}

func NewScheduler(emails *EmailService) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		emails: emails,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 9 * * *", s.runDailyReminders); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Scheduler started - daily reminders at 09:00")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) runDailyReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	results, err := s.emails.SendTomorrowReminders(ctx)
	if err != nil {
		log.Printf("Reminder batch failed: %v", err)
		return
	}
	sent := 0
	for _, r := range results {
		if r.Sent {
			sent++
		} else {
			log.Printf("Reminder for session %s not sent: %s", r.SessionID, r.Error)
		}
	}
	log.Printf("Reminder batch done: %d/%d sent", sent, len(results))
}
