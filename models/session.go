package models

import (
	"time"

	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

type SessionKind string

const (
	KindTrial         SessionKind = "trial"
	KindContinuation2 SessionKind = "continuation_2"
	KindContinuation3 SessionKind = "continuation_3"
	KindContinuation4 SessionKind = "continuation_4"
	KindContinuation5 SessionKind = "continuation_5"
	KindContinuation6 SessionKind = "continuation_6"
	KindFollowUp      SessionKind = "follow_up"
)

// SessionKinds is the canonical sequence a contract walks through.
var SessionKinds = []SessionKind{
	KindTrial, KindContinuation2, KindContinuation3,
	KindContinuation4, KindContinuation5, KindContinuation6, KindFollowUp,
}

func (k SessionKind) Valid() bool {
	for _, v := range SessionKinds {
		if k == v {
			return true
		}
	}
	return false
}

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionPostponed SessionStatus = "postponed"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled, SessionPostponed:
		return true
	}
	return false
}

// Active means the session still occupies the calendar: scheduled or
// postponed (a postponed session returns to scheduled once rebooked).
func (s SessionStatus) Active() bool {
	return s == SessionScheduled || s == SessionPostponed
}

const (
	SessionColID          = "Session ID"
	SessionColClientID    = "Client ID"
	SessionColKind        = "Session Kind"
	SessionColScheduledAt = "Scheduled At"
	SessionColMeetingURL  = "Meeting URL"
	SessionColStatus      = "Status"
	SessionColCompletedAt = "Completed At"
	SessionColRecord      = "Record"
	SessionColRemarks     = "Remarks"
	SessionColEventID     = "Calendar Event ID"
)

var SessionSchema = store.Schema{
	Sheet:    "sessions",
	IDPrefix: "SS",
	Headers: []string{
		SessionColID, SessionColClientID, SessionColKind, SessionColScheduledAt,
		SessionColMeetingURL, SessionColStatus, SessionColCompletedAt,
		SessionColRecord, SessionColRemarks, SessionColEventID,
	},
}

type Session struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"clientId"`
	Kind        SessionKind   `json:"kind"`
	ScheduledAt time.Time     `json:"scheduledAt"`
	MeetingURL  string        `json:"meetingUrl"`
	Status      SessionStatus `json:"status"`
	CompletedAt time.Time     `json:"completedAt"`
	Record      string        `json:"record"`
	Remarks     string        `json:"remarks"`
	// EventID is the external calendar event created for this session; it is
	// persisted so later updates address the event directly instead of
	// searching by title in a time window.
	EventID string `json:"calendarEventId"`
}

func (s *Session) ToRecord() store.Record {
	completedAt := ""
	if !s.CompletedAt.IsZero() {
		completedAt = utils.FormatDateTime(s.CompletedAt)
	}
	return store.Record{
		SessionColID:          s.ID,
		SessionColClientID:    s.ClientID,
		SessionColKind:        string(s.Kind),
		SessionColScheduledAt: utils.FormatDateTime(s.ScheduledAt),
		SessionColMeetingURL:  s.MeetingURL,
		SessionColStatus:      string(s.Status),
		SessionColCompletedAt: completedAt,
		SessionColRecord:      s.Record,
		SessionColRemarks:     s.Remarks,
		SessionColEventID:     s.EventID,
	}
}

func SessionFromRecord(rec store.Record) *Session {
	scheduledAt, _ := utils.ParseDateTime(rec[SessionColScheduledAt])
	completedAt, _ := utils.ParseDateTime(rec[SessionColCompletedAt])
	return &Session{
		ID:          rec[SessionColID],
		ClientID:    rec[SessionColClientID],
		Kind:        SessionKind(rec[SessionColKind]),
		ScheduledAt: scheduledAt,
		MeetingURL:  rec[SessionColMeetingURL],
		Status:      SessionStatus(rec[SessionColStatus]),
		CompletedAt: completedAt,
		Record:      rec[SessionColRecord],
		Remarks:     rec[SessionColRemarks],
		EventID:     rec[SessionColEventID],
	}
}
