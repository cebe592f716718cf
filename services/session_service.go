// services/session_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"coachdesk-backend/apperr"
	"coachdesk-backend/calendar"
	"coachdesk-backend/models"
	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

type SessionService struct {
	records  *store.RecordStore
	clients  *ClientService
	settings *store.SettingsStore
	cal      calendar.Service
}

func NewSessionService(sheet store.Sheet, clients *ClientService, settings *store.SettingsStore, cal calendar.Service) *SessionService {
	return &SessionService{
		records:  store.NewRecordStore(sheet, models.SessionSchema),
		clients:  clients,
		settings: settings,
		cal:      cal,
	}
}

type ScheduleInput struct {
	ClientID    string             `json:"clientId" binding:"required"`
	Kind        models.SessionKind `json:"kind" binding:"required"`
	ScheduledAt string             `json:"scheduledAt" binding:"required"`
	// MeetingURL overrides link generation, e.g. a meeting booked outside
	// the system.
	MeetingURL string `json:"meetingUrl"`
	Remarks    string `json:"remarks"`
}

type SessionPatch struct {
	ScheduledAt *string               `json:"scheduledAt"`
	Status      *models.SessionStatus `json:"status"`
	Record      *string               `json:"record"`
	Remarks     *string               `json:"remarks"`
}

func (s *SessionService) duration() time.Duration {
	return time.Duration(s.settings.GetInt("SESSION_DURATION", 30)) * time.Minute
}

func (s *SessionService) eventTitle(client *models.Client, kind models.SessionKind) string {
	service := s.settings.Get("SERVICE_NAME", "Coaching")
	return fmt.Sprintf("%s: %s (%s)", service, client.Name, kind)
}

// Schedule books a session: it creates the calendar event first, then
// persists the row carrying the event's ID so later changes address the
// event directly. Online clients get a meeting link attached to both the
// event and the row.
func (s *SessionService) Schedule(ctx context.Context, input ScheduleInput) (*models.Session, error) {
	if !input.Kind.Valid() {
		return nil, apperr.Validationf("invalid session kind %q", input.Kind)
	}
	start, err := utils.ParseDateTime(input.ScheduledAt)
	if err != nil || start.IsZero() {
		return nil, apperr.Validationf("invalid session time %q", input.ScheduledAt)
	}
	client, err := s.clients.FindByID(input.ClientID)
	if err != nil {
		return nil, err
	}

	meetingURL := input.MeetingURL
	if meetingURL == "" && client.PreferredFormat == models.FormatOnline {
		meetingURL, err = s.cal.GenerateMeetingLink(ctx, start, client.Name)
		if err != nil {
			return nil, apperr.Externalf(err, "generate meeting link")
		}
	}

	eventID, err := s.cal.CreateEvent(ctx, calendar.Event{
		Title:      s.eventTitle(client, input.Kind),
		GuestEmail: client.Email,
		Start:      start,
		End:        start.Add(s.duration()),
		MeetingURL: meetingURL,
	})
	if err != nil {
		return nil, apperr.Externalf(err, "create calendar event")
	}
	if meetingURL != "" {
		if err := s.cal.SetVideoCallLink(ctx, eventID, meetingURL); err != nil {
			return nil, apperr.Externalf(err, "attach meeting link")
		}
	}

	session := &models.Session{
		ClientID:    client.ID,
		Kind:        input.Kind,
		ScheduledAt: start,
		MeetingURL:  meetingURL,
		Status:      models.SessionScheduled,
		Remarks:     input.Remarks,
		EventID:     eventID,
	}
	stored, err := s.records.Append(session.ToRecord())
	if err != nil {
		return nil, err
	}
	return models.SessionFromRecord(stored), nil
}

func (s *SessionService) FindByID(id string) (*models.Session, error) {
	rec, err := s.records.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFoundf("session %s not found", id)
	}
	return models.SessionFromRecord(rec), nil
}

// FindAll lists sessions, optionally restricted to one client and/or to
// active (scheduled or postponed) sessions.
func (s *SessionService) FindAll(clientID string, activeOnly bool) ([]*models.Session, error) {
	recs, err := s.records.ListAll(func(rec store.Record) bool {
		if clientID != "" && rec[models.SessionColClientID] != clientID {
			return false
		}
		if activeOnly && !models.SessionStatus(rec[models.SessionColStatus]).Active() {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	sessions := make([]*models.Session, len(recs))
	for i, rec := range recs {
		sessions[i] = models.SessionFromRecord(rec)
	}
	return sessions, nil
}

// ScheduledBetween returns active sessions with start times in [start, end).
func (s *SessionService) ScheduledBetween(start, end time.Time) ([]*models.Session, error) {
	sessions, err := s.FindAll("", true)
	if err != nil {
		return nil, err
	}
	var out []*models.Session
	for _, session := range sessions {
		if !session.ScheduledAt.Before(start) && session.ScheduledAt.Before(end) {
			out = append(out, session)
		}
	}
	return out, nil
}

// OnDate returns the active sessions of one calendar day.
func (s *SessionService) OnDate(day time.Time) ([]*models.Session, error) {
	start := utils.BeginningOfDay(day)
	return s.ScheduledBetween(start, start.AddDate(0, 0, 1))
}

func (s *SessionService) Today() ([]*models.Session, error) {
	return s.OnDate(time.Now())
}

// ThisWeek returns the active sessions from Monday through Sunday of the
// current week.
func (s *SessionService) ThisWeek() ([]*models.Session, error) {
	start := utils.StartOfWeek(time.Now())
	return s.ScheduledBetween(start, start.AddDate(0, 0, 7))
}

// Reschedule moves a session to a new start time and moves its calendar
// event with it. A postponed session returns to scheduled.
func (s *SessionService) Reschedule(ctx context.Context, id, scheduledAt string) (*models.Session, error) {
	start, err := utils.ParseDateTime(scheduledAt)
	if err != nil || start.IsZero() {
		return nil, apperr.Validationf("invalid session time %q", scheduledAt)
	}
	session, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !session.Status.Active() {
		return nil, apperr.Validationf("session %s is %s and cannot be rescheduled", id, session.Status)
	}
	if session.EventID != "" {
		if err := s.cal.SetEventTime(ctx, session.EventID, start, start.Add(s.duration())); err != nil {
			return nil, apperr.Externalf(err, "move calendar event")
		}
	}
	updated, err := s.records.UpdateBy(id, store.Record{
		models.SessionColScheduledAt: utils.FormatDateTime(start),
		models.SessionColStatus:      string(models.SessionScheduled),
	})
	if err != nil {
		return nil, err
	}
	return models.SessionFromRecord(updated), nil
}

// Cancel marks the session cancelled and removes its calendar event. A
// calendar event that is already gone does not block the cancellation.
func (s *SessionService) Cancel(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCancelled {
		return session, nil
	}
	if session.EventID != "" {
		if err := s.cal.DeleteEvent(ctx, session.EventID); err != nil && !apperr.IsNotFound(err) {
			return nil, apperr.Externalf(err, "delete calendar event")
		}
	}
	updated, err := s.records.UpdateBy(id, store.Record{
		models.SessionColStatus:  string(models.SessionCancelled),
		models.SessionColEventID: "",
	})
	if err != nil {
		return nil, err
	}
	return models.SessionFromRecord(updated), nil
}

// Complete records the session outcome and stamps the completion time.
func (s *SessionService) Complete(id, record string) (*models.Session, error) {
	session, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCancelled {
		return nil, apperr.Validationf("session %s is cancelled and cannot be completed", id)
	}
	partial := store.Record{
		models.SessionColStatus:      string(models.SessionCompleted),
		models.SessionColCompletedAt: utils.FormatDateTime(time.Now()),
	}
	if record != "" {
		partial[models.SessionColRecord] = record
	}
	updated, err := s.records.UpdateBy(id, partial)
	if err != nil {
		return nil, err
	}
	return models.SessionFromRecord(updated), nil
}

// Update applies a partial change. A status change to cancelled removes the
// calendar event; a change to postponed retitles it so the gap is visible in
// the calendar.
func (s *SessionService) Update(ctx context.Context, id string, patch SessionPatch) (*models.Session, error) {
	session, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	partial := store.Record{}
	if patch.ScheduledAt != nil {
		start, err := utils.ParseDateTime(*patch.ScheduledAt)
		if err != nil || start.IsZero() {
			return nil, apperr.Validationf("invalid session time %q", *patch.ScheduledAt)
		}
		if session.EventID != "" {
			if err := s.cal.SetEventTime(ctx, session.EventID, start, start.Add(s.duration())); err != nil {
				return nil, apperr.Externalf(err, "move calendar event")
			}
		}
		partial[models.SessionColScheduledAt] = utils.FormatDateTime(start)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperr.Validationf("invalid session status %q", *patch.Status)
		}
		switch *patch.Status {
		case models.SessionCancelled:
			if session.EventID != "" {
				if err := s.cal.DeleteEvent(ctx, session.EventID); err != nil && !apperr.IsNotFound(err) {
					return nil, apperr.Externalf(err, "delete calendar event")
				}
			}
			partial[models.SessionColEventID] = ""
		case models.SessionPostponed:
			if session.EventID != "" && session.Status != models.SessionPostponed {
				client, err := s.clients.FindByID(session.ClientID)
				if err == nil {
					title := "[Postponed] " + s.eventTitle(client, session.Kind)
					if err := s.cal.SetEventTitle(ctx, session.EventID, title); err != nil && !apperr.IsNotFound(err) {
						return nil, apperr.Externalf(err, "retitle calendar event")
					}
				}
			}
		}
		partial[models.SessionColStatus] = string(*patch.Status)
	}
	if patch.Record != nil {
		partial[models.SessionColRecord] = *patch.Record
	}
	if patch.Remarks != nil {
		partial[models.SessionColRemarks] = *patch.Remarks
	}
	updated, err := s.records.UpdateBy(id, partial)
	if err != nil {
		return nil, err
	}
	return models.SessionFromRecord(updated), nil
}
