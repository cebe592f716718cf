// services/email_service.go
package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"coachdesk-backend/apperr"
	"coachdesk-backend/mailer"
	"coachdesk-backend/models"
	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

type EmailService struct {
	records  *store.RecordStore
	clients  *ClientService
	sessions *SessionService
	payments *PaymentService
	settings *store.SettingsStore
	sender   mailer.Sender
}

func NewEmailService(sheet store.Sheet, clients *ClientService, sessions *SessionService, payments *PaymentService, settings *store.SettingsStore, sender mailer.Sender) *EmailService {
	return &EmailService{
		records:  store.NewRecordStore(sheet, models.EmailLogSchema),
		clients:  clients,
		sessions: sessions,
		payments: payments,
		settings: settings,
		sender:   sender,
	}
}

type SendInput struct {
	ClientID string               `json:"clientId" binding:"required"`
	Subject  string               `json:"subject" binding:"required"`
	Body     string               `json:"body" binding:"required"`
	Category models.EmailCategory `json:"category"`
	HTML     bool                 `json:"html"`
}

// Send delivers one mail to a client and appends a log row either way: a
// failed delivery is logged with its error and the failure is returned to
// the caller.
func (s *EmailService) Send(ctx context.Context, input SendInput) (*models.EmailLog, error) {
	client, err := s.clients.FindByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if input.Category == "" {
		input.Category = models.CategoryOther
	}
	return s.deliver(ctx, client, input.Category, input.Subject, input.Body, mailer.Options{HTML: input.HTML})
}

func (s *EmailService) deliver(ctx context.Context, client *models.Client, category models.EmailCategory, subject, body string, opts mailer.Options) (*models.EmailLog, error) {
	entry := &models.EmailLog{
		SentAt:    time.Now(),
		ClientID:  client.ID,
		Recipient: client.Email,
		Subject:   subject,
		Category:  category,
	}
	sendErr := s.sender.Send(ctx, client.Email, subject, body, opts)
	if sendErr != nil {
		entry.Status = models.DeliveryFailed
		entry.Error = sendErr.Error()
	} else {
		entry.Status = models.DeliverySent
	}
	stored, err := s.records.Append(entry.ToRecord())
	if err != nil {
		return nil, err
	}
	logged := models.EmailLogFromRecord(stored)
	if sendErr != nil {
		return logged, apperr.Externalf(sendErr, "send mail to %s", client.Email)
	}
	return logged, nil
}

// templateVars assembles the replacement set shared by all built-in
// templates. Session and payment details are optional.
func (s *EmailService) templateVars(client *models.Client, session *models.Session, payment *models.Payment) map[string]string {
	vars := map[string]string{
		"ClientName":  client.Name,
		"ServiceName": s.settings.Get("SERVICE_NAME", "Coaching"),
		"SenderName":  s.settings.Get("MAIL_SENDER_NAME", s.settings.Get("SERVICE_NAME", "Coaching")),
		"BankInfo":    s.settings.Get("BANK_INFO", ""),
		"MeetingLine": "",
	}
	if session != nil {
		vars["SessionDate"] = utils.FormatDate(session.ScheduledAt)
		vars["SessionTime"] = session.ScheduledAt.Format("15:04")
		if session.MeetingURL != "" {
			vars["MeetingLine"] = "Join online: " + session.MeetingURL + "\n"
		}
	}
	if payment != nil {
		vars["LineItem"] = lineItemLabel(payment.LineItem)
		vars["Amount"] = "¥" + payment.Amount.Formatted()
	}
	return vars
}

func (s *EmailService) renderFor(category models.EmailCategory, vars map[string]string) (subject, body string, err error) {
	tpl, ok := emailTemplates[category]
	if !ok {
		return "", "", apperr.Validationf("no template for category %q", category)
	}
	return renderTemplate(tpl.Subject, vars), renderTemplate(tpl.Body, vars), nil
}

// SendSessionNotice mails a session-based template (trial invite, booking
// confirmation, or reminder) for one session.
func (s *EmailService) SendSessionNotice(ctx context.Context, sessionID string, category models.EmailCategory) (*models.EmailLog, error) {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(session.ClientID)
	if err != nil {
		return nil, err
	}
	subject, body, err := s.renderFor(category, s.templateVars(client, session, nil))
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, client, category, subject, body, mailer.Options{})
}

// SendPaymentInvite mails bank-transfer details for an unpaid payment.
func (s *EmailService) SendPaymentInvite(ctx context.Context, paymentID string) (*models.EmailLog, error) {
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentUnpaid {
		return nil, apperr.Validationf("payment %s is %s; invites go to unpaid payments", paymentID, payment.Status)
	}
	client, err := s.clients.FindByID(payment.ClientID)
	if err != nil {
		return nil, err
	}
	subject, body, err := s.renderFor(models.CategoryPaymentInvite, s.templateVars(client, nil, payment))
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, client, models.CategoryPaymentInvite, subject, body, mailer.Options{})
}

// SendPaymentConfirmation acknowledges a received payment.
func (s *EmailService) SendPaymentConfirmation(ctx context.Context, paymentID string) (*models.EmailLog, error) {
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentPaid {
		return nil, apperr.Validationf("payment %s is %s; confirmations go to paid payments", paymentID, payment.Status)
	}
	client, err := s.clients.FindByID(payment.ClientID)
	if err != nil {
		return nil, err
	}
	subject, body, err := s.renderFor(models.CategoryPaymentConfirm, s.templateVars(client, nil, payment))
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, client, models.CategoryPaymentConfirm, subject, body, mailer.Options{})
}

// SendContinuationOffer mails the full-program offer to a client who has
// finished the trial. The quoted fee comes from the CONTINUATION_FEE setting.
func (s *EmailService) SendContinuationOffer(ctx context.Context, clientID string) (*models.EmailLog, error) {
	client, err := s.clients.FindByID(clientID)
	if err != nil {
		return nil, err
	}
	vars := s.templateVars(client, nil, nil)
	vars["LineItem"] = lineItemLabel(models.LineItemContinuationFee)
	vars["Amount"] = "¥" + models.Amount(s.settings.GetInt("CONTINUATION_FEE", 214000)).Formatted()
	subject, body, err := s.renderFor(models.CategoryContinuationOffer, vars)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, client, models.CategoryContinuationOffer, subject, body, mailer.Options{})
}

// SendReceipt attaches the exported receipt PDF and mails it to the payer.
func (s *EmailService) SendReceipt(ctx context.Context, paymentID, pdfPath string) (*models.EmailLog, error) {
	payment, err := s.payments.FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(payment.ClientID)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, apperr.Externalf(err, "read receipt %s", pdfPath)
	}
	subject, body, err := s.renderFor(models.CategoryReceiptSent, s.templateVars(client, nil, payment))
	if err != nil {
		return nil, err
	}
	opts := mailer.Options{Attachments: []mailer.Attachment{{
		Filename: filepath.Base(pdfPath),
		MIMEType: "application/pdf",
		Content:  content,
	}}}
	return s.deliver(ctx, client, models.CategoryReceiptSent, subject, body, opts)
}

// ReminderResult is the per-session outcome of a reminder batch.
type ReminderResult struct {
	SessionID string `json:"sessionId"`
	Recipient string `json:"recipient,omitempty"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// SendSessionReminders mails a reminder for every active session scheduled
// on the day daysAhead days from now. One bad session (unresolvable client,
// relay refusal) is reported in its result and does not stop the batch.
func (s *EmailService) SendSessionReminders(ctx context.Context, daysAhead int) ([]ReminderResult, error) {
	day := utils.BeginningOfDay(time.Now().AddDate(0, 0, daysAhead))
	sessions, err := s.sessions.ScheduledBetween(day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	results := make([]ReminderResult, 0, len(sessions))
	for _, session := range sessions {
		result := ReminderResult{SessionID: session.ID}
		client, err := s.clients.FindByID(session.ClientID)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.Recipient = client.Email
		subject, body, err := s.renderFor(models.CategoryReminder, s.templateVars(client, session, nil))
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		if _, err := s.deliver(ctx, client, models.CategoryReminder, subject, body, mailer.Options{}); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.Sent = true
		results = append(results, result)
	}
	return results, nil
}

// SendTomorrowReminders is the daily scheduled batch.
func (s *EmailService) SendTomorrowReminders(ctx context.Context) ([]ReminderResult, error) {
	return s.SendSessionReminders(ctx, 1)
}

// ClientHistory returns one client's mail log newest first.
func (s *EmailService) ClientHistory(clientID string) ([]*models.EmailLog, error) {
	logs, err := s.Logs(clientID, "")
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// Logs lists the mail log, optionally filtered by client and category.
func (s *EmailService) Logs(clientID string, category models.EmailCategory) ([]*models.EmailLog, error) {
	recs, err := s.records.ListAll(func(rec store.Record) bool {
		if clientID != "" && rec[models.EmailColClientID] != clientID {
			return false
		}
		if category != "" && rec[models.EmailColCategory] != string(category) {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	logs := make([]*models.EmailLog, len(recs))
	for i, rec := range recs {
		logs[i] = models.EmailLogFromRecord(rec)
	}
	return logs, nil
}
