// services/seed_service.go
package services

import (
	"fmt"
	"math/rand"
	"time"

	"coachdesk-backend/models"
	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

// SeedService populates the sheets with plausible practice data for demos
// and manual testing. It writes rows directly so seeding does not create
// calendar events or send mail.
type SeedService struct {
	clients  *store.RecordStore
	sessions *store.RecordStore
	payments *store.RecordStore
	emails   *store.RecordStore
	settings *store.SettingsStore
	rng      *rand.Rand
}

func NewSeedService(sheet store.Sheet) *SeedService {
	return &SeedService{
		clients:  store.NewRecordStore(sheet, models.ClientSchema),
		sessions: store.NewRecordStore(sheet, models.SessionSchema),
		payments: store.NewRecordStore(sheet, models.PaymentSchema),
		emails:   store.NewRecordStore(sheet, models.EmailLogSchema),
		settings: store.NewSettingsStore(sheet),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type SeedResult struct {
	Clients  int `json:"clients"`
	Sessions int `json:"sessions"`
	Payments int `json:"payments"`
	Emails   int `json:"emails"`
}

var seedNames = []struct {
	Name string
	Kana string
}{
	{"Tanaka Hanako", "タナカ ハナコ"},
	{"Suzuki Ichiro", "スズキ イチロウ"},
	{"Sato Yuki", "サトウ ユキ"},
	{"Takahashi Mei", "タカハシ メイ"},
	{"Ito Kenta", "イトウ ケンタ"},
	{"Watanabe Aoi", "ワタナベ アオイ"},
	{"Yamamoto Sora", "ヤマモト ソラ"},
	{"Nakamura Rin", "ナカムラ リン"},
	{"Kobayashi Daiki", "コバヤシ ダイキ"},
	{"Kato Miyu", "カトウ ミユ"},
}

// weightedStatus reproduces the funnel shape of a running practice: most
// seeded clients are contracted, the edges are thin.
func (s *SeedService) weightedStatus() models.ClientStatus {
	roll := s.rng.Intn(100)
	switch {
	case roll < 10:
		return models.StatusInquiry
	case roll < 30:
		return models.StatusPreTrial
	case roll < 45:
		return models.StatusTrialDone
	case roll < 85:
		return models.StatusContracted
	case roll < 95:
		return models.StatusCompleted
	default:
		return models.StatusDiscontinued
	}
}

func (s *SeedService) weightedFormat() models.SessionFormat {
	roll := s.rng.Intn(100)
	switch {
	case roll < 70:
		return models.FormatOnline
	case roll < 95:
		return models.FormatInPerson
	default:
		return models.FormatUndecided
	}
}

// sessionSlot picks a start time on the given day inside business hours:
// half-hour slots from 09:00 through 17:00.
func (s *SeedService) sessionSlot(day time.Time) time.Time {
	slot := s.rng.Intn(17)
	return time.Date(day.Year(), day.Month(), day.Day(), 9+slot/2, (slot%2)*30, 0, 0, time.Local)
}

// sessionGap is the spacing between consecutive sessions: two to four weeks.
func (s *SeedService) sessionGap() int {
	return 14 + s.rng.Intn(15)
}

// sessionCount says how far along the kind sequence a client of this status
// has come. Contracted clients are mid-program.
func (s *SeedService) sessionCount(status models.ClientStatus) int {
	switch status {
	case models.StatusInquiry:
		return 0
	case models.StatusPreTrial, models.StatusTrialDone:
		return 1
	case models.StatusContracted:
		return 2 + s.rng.Intn(5)
	case models.StatusCompleted:
		return len(models.SessionKinds)
	case models.StatusDiscontinued:
		return 1 + s.rng.Intn(3)
	}
	return 0
}

// Seed creates n clients with status-appropriate session and payment
// history.
func (s *SeedService) Seed(n int) (*SeedResult, error) {
	result := &SeedResult{}
	for i := 0; i < n; i++ {
		person := seedNames[i%len(seedNames)]
		status := s.weightedStatus()
		client := &models.Client{
			CreatedAt:       time.Now().AddDate(0, 0, -s.rng.Intn(180)),
			Email:           fmt.Sprintf("client%d@example.com", i+1),
			Name:            person.Name,
			NameKana:        person.Kana,
			Gender:          []models.Gender{models.GenderFemale, models.GenderMale, models.GenderOther}[s.rng.Intn(3)],
			BirthDate:       fmt.Sprintf("%d-%02d-%02d", 1960+s.rng.Intn(40), 1+s.rng.Intn(12), 1+s.rng.Intn(28)),
			Phone:           fmt.Sprintf("090%08d", s.rng.Intn(100000000)),
			PreferredFormat: s.weightedFormat(),
			Status:          status,
			Notes:           "seeded",
		}
		stored, err := s.clients.Append(client.ToRecord())
		if err != nil {
			return result, err
		}
		clientID := stored[models.ClientColID]
		result.Clients++

		sessions, err := s.seedSessions(clientID, status)
		if err != nil {
			return result, err
		}
		result.Sessions += sessions

		payments, err := s.seedPayments(clientID, status)
		if err != nil {
			return result, err
		}
		result.Payments += payments

		emails, err := s.seedEmails(clientID, client.Email, status)
		if err != nil {
			return result, err
		}
		result.Emails += emails
	}
	return result, nil
}

func (s *SeedService) seedSessions(clientID string, status models.ClientStatus) (int, error) {
	count := s.sessionCount(status)
	if count == 0 {
		return 0, nil
	}

	// Walk backwards from now so a pre_trial client's single session lands in
	// the future and everyone else's history lands in the past.
	start := time.Now().AddDate(0, 0, -s.sessionGap()*(count-1))
	if status == models.StatusPreTrial {
		start = time.Now().AddDate(0, 0, 3+s.rng.Intn(11))
	} else {
		start = start.AddDate(0, 0, -7)
	}

	created := 0
	for i := 0; i < count; i++ {
		day := start.AddDate(0, 0, s.sessionGap()*i)
		scheduledAt := s.sessionSlot(day)
		session := &models.Session{
			ClientID:    clientID,
			Kind:        models.SessionKinds[i],
			ScheduledAt: scheduledAt,
			Status:      models.SessionScheduled,
		}
		if scheduledAt.Before(time.Now()) {
			session.Status = models.SessionCompleted
			session.CompletedAt = scheduledAt.Add(30 * time.Minute)
			session.Record = "seeded session record"
		}
		if _, err := s.sessions.Append(session.ToRecord()); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *SeedService) seedPayments(clientID string, status models.ClientStatus) (int, error) {
	type plan struct {
		item   string
		amount models.Amount
		paid   bool
	}
	trialFee := models.Amount(s.settings.GetInt("TRIAL_FEE", 6000))
	continuationFee := models.Amount(s.settings.GetInt("CONTINUATION_FEE", 214000))

	var plans []plan
	switch status {
	case models.StatusTrialDone, models.StatusDiscontinued:
		plans = []plan{{models.LineItemTrialFee, trialFee, true}}
	case models.StatusContracted:
		plans = []plan{
			{models.LineItemTrialFee, trialFee, true},
			{models.LineItemContinuationFee, continuationFee, s.rng.Intn(2) == 0},
		}
	case models.StatusCompleted:
		plans = []plan{
			{models.LineItemTrialFee, trialFee, true},
			{models.LineItemContinuationFee, continuationFee, true},
		}
	}

	created := 0
	for _, p := range plans {
		payment := &models.Payment{
			ClientID:      clientID,
			RegisteredAt:  time.Now().AddDate(0, 0, -s.rng.Intn(90)),
			LineItem:      p.item,
			Amount:        p.amount,
			Status:        models.PaymentUnpaid,
			ReceiptStatus: models.ReceiptNotIssued,
		}
		if p.paid {
			payment.Status = models.PaymentPaid
			payment.PaidAt = payment.RegisteredAt.AddDate(0, 0, 1+s.rng.Intn(7))
			if status == models.StatusCompleted {
				payment.ReceiptStatus = models.ReceiptIssued
			}
		}
		if _, err := s.payments.Append(payment.ToRecord()); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedEmails mirrors the mail a client at this stage would have received.
func (s *SeedService) seedEmails(clientID, recipient string, status models.ClientStatus) (int, error) {
	var categories []models.EmailCategory
	switch status {
	case models.StatusPreTrial:
		categories = []models.EmailCategory{models.CategoryTrialInvite}
	case models.StatusTrialDone:
		categories = []models.EmailCategory{models.CategoryTrialInvite, models.CategoryPaymentInvite}
	case models.StatusContracted:
		categories = []models.EmailCategory{
			models.CategoryTrialInvite, models.CategoryPaymentInvite,
			models.CategorySessionConfirm, models.CategoryReminder,
		}
	case models.StatusCompleted:
		categories = []models.EmailCategory{
			models.CategorySessionConfirm, models.CategoryReceiptSent, models.CategoryNextSchedule,
		}
	case models.StatusDiscontinued:
		categories = []models.EmailCategory{models.CategoryTrialInvite}
	}

	serviceName := s.settings.Get("SERVICE_NAME", "Coaching")
	created := 0
	for i, category := range categories {
		subject := renderTemplate(emailTemplates[category].Subject, map[string]string{
			"ServiceName": serviceName,
			"SessionDate": utils.FormatDate(time.Now().AddDate(0, 0, 7)),
			"SessionTime": "10:00",
			"LineItem":    "Trial Session Fee",
		})
		entry := &models.EmailLog{
			SentAt:    time.Now().AddDate(0, 0, -s.sessionGap()*(len(categories)-i)),
			ClientID:  clientID,
			Recipient: recipient,
			Subject:   subject,
			Category:  category,
			Status:    models.DeliverySent,
		}
		if _, err := s.emails.Append(entry.ToRecord()); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
