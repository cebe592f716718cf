// services/payment_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"coachdesk-backend/apperr"
	"coachdesk-backend/documents"
	"coachdesk-backend/models"
	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

// ReceiptTemplate is the document template receipts are rendered from. The
// document store resolves it from its templates folder, falling back to the
// built-in copy registered at startup.
const ReceiptTemplate = "receipt.txt"

// receiptFolderName builds the per-client export folder, e.g.
// "MEC_CL7345912040042_Tanaka_Hanako".
func receiptFolderName(client *models.Client) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, client.Name)
	return fmt.Sprintf("MEC_%s_%s", client.ID, name)
}

// receiptNumber derives the printed receipt number from the payment: year of
// payment plus the tail of the payment ID, e.g. R2026040042.
func receiptNumber(payment *models.Payment) string {
	tail := payment.ID
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return fmt.Sprintf("R%d%s", payment.PaidAt.Year(), tail)
}

type PaymentService struct {
	records  *store.RecordStore
	clients  *ClientService
	settings *store.SettingsStore
	docs     documents.Store
}

func NewPaymentService(sheet store.Sheet, clients *ClientService, settings *store.SettingsStore, docs documents.Store) *PaymentService {
	return &PaymentService{
		records:  store.NewRecordStore(sheet, models.PaymentSchema),
		clients:  clients,
		settings: settings,
		docs:     docs,
	}
}

type PaymentInput struct {
	ClientID string        `json:"clientId" binding:"required"`
	LineItem string        `json:"lineItem" binding:"required"`
	Amount   models.Amount `json:"amount"`
	Notes    string        `json:"notes"`
}

// lineItemLabel maps internal line-item names to the wording printed on
// receipts. Unknown items print as-is.
func lineItemLabel(item string) string {
	switch item {
	case models.LineItemTrialFee:
		return "Trial Session Fee"
	case models.LineItemContinuationFee:
		return "Continuation Program Fee"
	}
	return item
}

// defaultAmount resolves the configured fee for the known line items.
func (s *PaymentService) defaultAmount(lineItem string) (models.Amount, bool) {
	switch lineItem {
	case models.LineItemTrialFee:
		return models.Amount(s.settings.GetInt("TRIAL_FEE", 6000)), true
	case models.LineItemContinuationFee:
		return models.Amount(s.settings.GetInt("CONTINUATION_FEE", 214000)), true
	}
	return 0, false
}

// Register records a new unpaid payment. An omitted amount falls back to the
// configured fee for the line item.
func (s *PaymentService) Register(input PaymentInput) (*models.Payment, error) {
	client, err := s.clients.FindByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	amount := input.Amount
	if amount == 0 {
		def, ok := s.defaultAmount(input.LineItem)
		if !ok {
			return nil, apperr.Validationf("amount is required for line item %q", input.LineItem)
		}
		amount = def
	}
	if amount <= 0 {
		return nil, apperr.Validationf("amount must be positive, got %d", amount)
	}

	payment := &models.Payment{
		ClientID:      client.ID,
		RegisteredAt:  time.Now(),
		LineItem:      input.LineItem,
		Amount:        amount,
		Status:        models.PaymentUnpaid,
		ReceiptStatus: models.ReceiptNotIssued,
		Notes:         input.Notes,
	}
	stored, err := s.records.Append(payment.ToRecord())
	if err != nil {
		return nil, err
	}
	return models.PaymentFromRecord(stored), nil
}

// RegisterTrialFee books the configured trial fee for a client.
func (s *PaymentService) RegisterTrialFee(clientID string) (*models.Payment, error) {
	return s.Register(PaymentInput{ClientID: clientID, LineItem: models.LineItemTrialFee})
}

// RegisterContinuationFee books the configured continuation-program fee.
func (s *PaymentService) RegisterContinuationFee(clientID string) (*models.Payment, error) {
	return s.Register(PaymentInput{ClientID: clientID, LineItem: models.LineItemContinuationFee})
}

func (s *PaymentService) FindByID(id string) (*models.Payment, error) {
	rec, err := s.records.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFoundf("payment %s not found", id)
	}
	return models.PaymentFromRecord(rec), nil
}

func (s *PaymentService) FindAll(clientID string, status models.PaymentStatus) ([]*models.Payment, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.Validationf("invalid payment status %q", status)
	}
	recs, err := s.records.ListAll(func(rec store.Record) bool {
		if clientID != "" && rec[models.PaymentColClientID] != clientID {
			return false
		}
		if status != "" && rec[models.PaymentColStatus] != string(status) {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	payments := make([]*models.Payment, len(recs))
	for i, rec := range recs {
		payments[i] = models.PaymentFromRecord(rec)
	}
	return payments, nil
}

// MarkPaid stamps the payment as paid. A zero paidAt means now; a non-zero
// one records the actual bank-transfer date. Marking an already-paid payment
// is a no-op; a cancelled payment cannot be paid.
func (s *PaymentService) MarkPaid(id string, paidAt time.Time) (*models.Payment, error) {
	payment, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	switch payment.Status {
	case models.PaymentPaid:
		return payment, nil
	case models.PaymentCancelled:
		return nil, apperr.Validationf("payment %s is cancelled", id)
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	updated, err := s.records.UpdateBy(id, store.Record{
		models.PaymentColStatus: string(models.PaymentPaid),
		models.PaymentColPaidAt: utils.FormatDateTime(paidAt),
	})
	if err != nil {
		return nil, err
	}
	return models.PaymentFromRecord(updated), nil
}

func (s *PaymentService) Cancel(id string) (*models.Payment, error) {
	payment, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.PaymentPaid {
		return nil, apperr.Validationf("payment %s is already paid and cannot be cancelled", id)
	}
	updated, err := s.records.UpdateBy(id, store.Record{
		models.PaymentColStatus: string(models.PaymentCancelled),
	})
	if err != nil {
		return nil, err
	}
	return models.PaymentFromRecord(updated), nil
}

type PaymentPatch struct {
	Amount        *models.Amount        `json:"amount"`
	ReceiptStatus *models.ReceiptStatus `json:"receiptStatus"`
	Notes         *string               `json:"notes"`
}

func (s *PaymentService) Update(id string, patch PaymentPatch) (*models.Payment, error) {
	partial := store.Record{}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, apperr.Validationf("amount must be positive, got %d", *patch.Amount)
		}
		partial[models.PaymentColAmount] = patch.Amount.String()
	}
	if patch.ReceiptStatus != nil {
		if !patch.ReceiptStatus.Valid() {
			return nil, apperr.Validationf("invalid receipt status %q", *patch.ReceiptStatus)
		}
		partial[models.PaymentColReceiptStatus] = string(*patch.ReceiptStatus)
	}
	if patch.Notes != nil {
		partial[models.PaymentColNotes] = *patch.Notes
	}
	updated, err := s.records.UpdateBy(id, partial)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFoundf("payment %s not found", id)
	}
	return models.PaymentFromRecord(updated), nil
}

// Delete physically removes the payment row. Nothing references payments, so
// there is no dependency check.
func (s *PaymentService) Delete(id string) error {
	ok, err := s.records.DeleteBy(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFoundf("payment %s not found", id)
	}
	return nil
}

// GenerateReceipt renders the receipt template for a paid payment, exports
// it as a PDF, and marks the receipt issued. The scoped working copy is
// trashed whether the export succeeds or not.
func (s *PaymentService) GenerateReceipt(id string) (string, error) {
	payment, err := s.FindByID(id)
	if err != nil {
		return "", err
	}
	if payment.Status != models.PaymentPaid {
		return "", apperr.Validationf("payment %s is %s; receipts are issued for paid payments only", id, payment.Status)
	}
	client, err := s.clients.FindByID(payment.ClientID)
	if err != nil {
		return "", err
	}

	receiptNo := receiptNumber(payment)
	doc, err := s.docs.CopyTemplate(ReceiptTemplate, receiptNo)
	if err != nil {
		return "", err
	}
	defer s.docs.Trash(doc.WorkDir)

	doc.Replace("ClientName", client.Name)
	doc.Replace("LineItem", lineItemLabel(payment.LineItem))
	doc.Replace("Amount", "¥"+payment.Amount.Formatted())
	doc.Replace("PaidDate", utils.FormatDate(payment.PaidAt))
	doc.Replace("ReceiptNo", receiptNo)
	doc.Replace("ServiceName", s.settings.Get("SERVICE_NAME", "Coaching"))
	doc.Replace("BusinessAddress", s.settings.Get("BUSINESS_ADDRESS", ""))
	doc.Replace("BusinessPhone", s.settings.Get("BUSINESS_PHONE", ""))

	folder, err := s.docs.EnsureFolder(receiptFolderName(client))
	if err != nil {
		return "", err
	}
	path, err := s.docs.ExportPDF(doc, folder, receiptNo+".pdf")
	if err != nil {
		return "", err
	}

	if _, err := s.records.UpdateBy(id, store.Record{
		models.PaymentColReceiptStatus: string(models.ReceiptIssued),
	}); err != nil {
		return "", err
	}
	return path, nil
}

type MonthSales struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Total models.Amount `json:"total"`
	Count int           `json:"count"`
}

// MonthlySales totals paid payments whose paid time falls inside the month.
// The interval is half-open: the first instant of the next month is out.
func (s *PaymentService) MonthlySales(year int, month time.Month) (*MonthSales, error) {
	start, end := utils.MonthRange(year, month)
	payments, err := s.FindAll("", models.PaymentPaid)
	if err != nil {
		return nil, err
	}
	sales := &MonthSales{Year: year, Month: month}
	for _, p := range payments {
		if !p.PaidAt.Before(start) && p.PaidAt.Before(end) {
			sales.Total += p.Amount
			sales.Count++
		}
	}
	return sales, nil
}

// YearlySales returns twelve monthly totals, January through December.
func (s *PaymentService) YearlySales(year int) ([]*MonthSales, error) {
	payments, err := s.FindAll("", models.PaymentPaid)
	if err != nil {
		return nil, err
	}
	months := make([]*MonthSales, 12)
	for m := time.January; m <= time.December; m++ {
		months[m-1] = &MonthSales{Year: year, Month: m}
	}
	for _, p := range payments {
		if p.PaidAt.Year() == year {
			sales := months[p.PaidAt.Month()-1]
			sales.Total += p.Amount
			sales.Count++
		}
	}
	return months, nil
}
