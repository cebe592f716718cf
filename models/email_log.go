// models/email_log.go
package models

import (
	"time"

	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

type EmailCategory string

const (
	CategoryTrialInvite       EmailCategory = "trial_invite"
	CategorySessionConfirm    EmailCategory = "session_confirm"
	CategoryReminder          EmailCategory = "reminder"
	CategoryPaymentInvite     EmailCategory = "payment_invite"
	CategoryPaymentConfirm    EmailCategory = "payment_confirm"
	CategoryContinuationOffer EmailCategory = "continuation_offer"
	CategoryReceiptSent       EmailCategory = "receipt_sent"
	CategoryNextSchedule      EmailCategory = "next_schedule"
	CategoryOther             EmailCategory = "other"
)

type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
	DeliveryDraft  DeliveryStatus = "draft"
)

const (
	EmailColID        = "Email ID"
	EmailColSentAt    = "Sent At"
	EmailColClientID  = "Client ID"
	EmailColRecipient = "Recipient"
	EmailColSubject   = "Subject"
	EmailColCategory  = "Category"
	EmailColStatus    = "Status"
	EmailColError     = "Error"
)

var EmailLogSchema = store.Schema{
	Sheet:    "email_log",
	IDPrefix: "EM",
	Headers: []string{
		EmailColID, EmailColSentAt, EmailColClientID, EmailColRecipient,
		EmailColSubject, EmailColCategory, EmailColStatus, EmailColError,
	},
}

// EmailLog rows are append-only; failures keep the original subject and carry
// the error message in their own column.
type EmailLog struct {
	ID        string         `json:"id"`
	SentAt    time.Time      `json:"sentAt"`
	ClientID  string         `json:"clientId"`
	Recipient string         `json:"recipient"`
	Subject   string         `json:"subject"`
	Category  EmailCategory  `json:"category"`
	Status    DeliveryStatus `json:"status"`
	Error     string         `json:"error,omitempty"`
}

func (e *EmailLog) ToRecord() store.Record {
	return store.Record{
		EmailColID:        e.ID,
		EmailColSentAt:    utils.FormatDateTime(e.SentAt),
		EmailColClientID:  e.ClientID,
		EmailColRecipient: e.Recipient,
		EmailColSubject:   e.Subject,
		EmailColCategory:  string(e.Category),
		EmailColStatus:    string(e.Status),
		EmailColError:     e.Error,
	}
}

func EmailLogFromRecord(rec store.Record) *EmailLog {
	sentAt, _ := utils.ParseDateTime(rec[EmailColSentAt])
	return &EmailLog{
		ID:        rec[EmailColID],
		SentAt:    sentAt,
		ClientID:  rec[EmailColClientID],
		Recipient: rec[EmailColRecipient],
		Subject:   rec[EmailColSubject],
		Category:  EmailCategory(rec[EmailColCategory]),
		Status:    DeliveryStatus(rec[EmailColStatus]),
		Error:     rec[EmailColError],
	}
}
