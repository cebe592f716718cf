package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"coachdesk-backend/calendar"
	"coachdesk-backend/documents"
	"coachdesk-backend/mailer"
	"coachdesk-backend/models"
	"coachdesk-backend/store"
)

// stubSender records deliveries in memory; flipping fail makes every send
// bounce.
type stubSender struct {
	mu   sync.Mutex
	fail bool
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
	Opts    mailer.Options
}

func (s *stubSender) Send(_ context.Context, to, subject, body string, opts mailer.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("relay refused connection")
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: body, Opts: opts})
	return nil
}

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *stubSender) last() sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

// testEnv wires every service against an in-memory sheet, a synthetic
// calendar and a stub mail relay.
type testEnv struct {
	sheet    *store.MemorySheet
	settings *store.SettingsStore
	cal      *calendar.Synthetic
	sender   *stubSender
	docs     *documents.LocalStore
	docsRoot string

	clients   *ClientService
	sessions  *SessionService
	payments  *PaymentService
	emails    *EmailService
	dashboard *DashboardService
}

const testReceiptTemplate = `RECEIPT
No: {{ReceiptNo}}
Client: {{ClientName}}
Item: {{LineItem}}
Amount: {{Amount}}
Date: {{PaidDate}}
{{ServiceName}}`

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	sheet := store.NewMemorySheet()
	for _, schema := range []store.Schema{
		models.ClientSchema, models.SessionSchema, models.PaymentSchema,
		models.EmailLogSchema, store.SettingsSchema,
	} {
		if err := sheet.Define(schema.Sheet, schema.Headers); err != nil {
			t.Fatalf("define %s: %v", schema.Sheet, err)
		}
	}

	settings := store.NewSettingsStore(sheet)
	cal := calendar.NewSynthetic()
	sender := &stubSender{}
	docsRoot := t.TempDir()
	docs := documents.NewLocalStore(docsRoot, map[string]string{
		ReceiptTemplate: testReceiptTemplate,
	})

	clients := NewClientService(sheet)
	sessions := NewSessionService(sheet, clients, settings, cal)
	payments := NewPaymentService(sheet, clients, settings, docs)
	emails := NewEmailService(sheet, clients, sessions, payments, settings, sender)

	return &testEnv{
		sheet:     sheet,
		settings:  settings,
		cal:       cal,
		sender:    sender,
		docs:      docs,
		docsRoot:  docsRoot,
		clients:   clients,
		sessions:  sessions,
		payments:  payments,
		emails:    emails,
		dashboard: NewDashboardService(clients, sessions, payments),
	}
}

func (e *testEnv) addClient(t *testing.T, name string, status models.ClientStatus, format models.SessionFormat) *models.Client {
	t.Helper()
	client, err := e.clients.Create(ClientInput{
		Name:            name,
		Email:           name + "@example.com",
		Status:          status,
		PreferredFormat: format,
	})
	if err != nil {
		t.Fatalf("create client %s: %v", name, err)
	}
	return client
}
