package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"coachdesk-backend/apperr"
	"coachdesk-backend/models"
	"coachdesk-backend/store"
)

func TestPaymentService_RegisterUsesConfiguredFee(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "hanako", models.StatusTrialDone, models.FormatOnline)
	env.settings.Put("TRIAL_FEE", "8000", "")

	payment, err := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemTrialFee})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if payment.Amount != 8000 {
		t.Fatalf("expected configured fee 8000, got %d", payment.Amount)
	}
	if payment.Status != models.PaymentUnpaid {
		t.Fatalf("expected unpaid, got %q", payment.Status)
	}
	if payment.ReceiptStatus != models.ReceiptNotIssued {
		t.Fatalf("expected not_issued, got %q", payment.ReceiptStatus)
	}
}

func TestPaymentService_RegisterExplicitAmountWins(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "ichiro", models.StatusContracted, models.FormatOnline)

	payment, err := env.payments.Register(PaymentInput{
		ClientID: client.ID, LineItem: models.LineItemContinuationFee, Amount: 200000,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if payment.Amount != 200000 {
		t.Fatalf("expected 200000, got %d", payment.Amount)
	}
}

func TestPaymentService_RegisterUnknownItemNeedsAmount(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "yuki", models.StatusContracted, models.FormatOnline)

	if _, err := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: "workshop_fee"}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: "workshop_fee", Amount: 12000}); err != nil {
		t.Fatalf("explicit amount should pass: %v", err)
	}
}

func TestPaymentService_MarkPaidLifecycle(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "mei", models.StatusContracted, models.FormatOnline)
	payment, _ := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemTrialFee})

	paid, err := env.payments.MarkPaid(payment.ID, time.Time{})
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != models.PaymentPaid || paid.PaidAt.IsZero() {
		t.Fatalf("expected paid with timestamp, got %q %s", paid.Status, paid.PaidAt)
	}

	// Idempotent.
	again, err := env.payments.MarkPaid(payment.ID, time.Time{})
	if err != nil {
		t.Fatalf("second mark paid: %v", err)
	}
	if !again.PaidAt.Equal(paid.PaidAt) {
		t.Fatal("paid timestamp changed on repeat")
	}

	// A paid payment cannot be cancelled.
	if _, err := env.payments.Cancel(payment.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPaymentService_GenerateReceipt(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "sora", models.StatusContracted, models.FormatOnline)
	payment, _ := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemTrialFee})
	env.payments.MarkPaid(payment.ID, time.Time{})

	path, err := env.payments.GenerateReceipt(payment.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if filepath.Ext(path) != ".pdf" {
		t.Fatalf("expected pdf path, got %q", path)
	}
	if !strings.Contains(path, "MEC_"+client.ID) {
		t.Fatalf("expected per-client folder in path, got %q", path)
	}
	base := filepath.Base(path)
	if base[0] != 'R' {
		t.Fatalf("expected R-prefixed receipt number, got %q", base)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read receipt: %v", err)
	}
	if !strings.HasPrefix(string(raw), "%PDF-") {
		t.Fatal("exported file is not a PDF")
	}

	after, _ := env.payments.FindByID(payment.ID)
	if after.ReceiptStatus != models.ReceiptIssued {
		t.Fatalf("expected issued, got %q", after.ReceiptStatus)
	}

	// The scoped work area is cleaned up.
	entries, err := os.ReadDir(os.TempDir())
	if err == nil {
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), "coachdesk_work_") {
				t.Fatalf("work dir %s left behind", e.Name())
			}
		}
	}
}

func TestPaymentService_ReceiptForUnpaidRejected(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "rin", models.StatusContracted, models.FormatOnline)
	payment, _ := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemTrialFee})

	if _, err := env.payments.GenerateReceipt(payment.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	after, _ := env.payments.FindByID(payment.ID)
	if after.ReceiptStatus != models.ReceiptNotIssued {
		t.Fatalf("receipt status changed on rejected issue: %q", after.ReceiptStatus)
	}
	if after.Status != models.PaymentUnpaid {
		t.Fatalf("payment status changed on rejected issue: %q", after.Status)
	}
}

// paidPayment inserts a paid payment row directly so the PaidAt instant is
// controlled by the test.
func paidPayment(t *testing.T, env *testEnv, clientID string, amount models.Amount, paidAt time.Time) {
	t.Helper()
	records := store.NewRecordStore(env.sheet, models.PaymentSchema)
	p := &models.Payment{
		ClientID:      clientID,
		RegisteredAt:  paidAt.AddDate(0, 0, -3),
		LineItem:      models.LineItemTrialFee,
		Amount:        amount,
		Status:        models.PaymentPaid,
		PaidAt:        paidAt,
		ReceiptStatus: models.ReceiptNotIssued,
	}
	if _, err := records.Append(p.ToRecord()); err != nil {
		t.Fatalf("append payment: %v", err)
	}
}

func TestPaymentService_MonthlySalesBoundaries(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "a", models.StatusContracted, models.FormatOnline)

	// Storage granularity is one minute, so the last storable instant of
	// March is 23:59.
	endOfMarch := time.Date(2026, 3, 31, 23, 59, 0, 0, time.Local)
	firstOfApril := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	paidPayment(t, env, client.ID, 6000, endOfMarch)
	paidPayment(t, env, client.ID, 214000, firstOfApril)

	march, err := env.payments.MonthlySales(2026, time.March)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if march.Total != 6000 || march.Count != 1 {
		t.Fatalf("march: expected 6000/1, got %d/%d", march.Total, march.Count)
	}

	april, _ := env.payments.MonthlySales(2026, time.April)
	if april.Total != 214000 || april.Count != 1 {
		t.Fatalf("april: expected 214000/1, got %d/%d", april.Total, april.Count)
	}
}

func TestPaymentService_UnpaidExcludedFromSales(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "b", models.StatusContracted, models.FormatOnline)
	paidPayment(t, env, client.ID, 6000, time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local))
	env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemContinuationFee})

	may, err := env.payments.MonthlySales(2026, time.May)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if may.Total != 6000 {
		t.Fatalf("unpaid payment leaked into sales: %d", may.Total)
	}
}

func TestPaymentService_YearlySalesTwelveMonths(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "c", models.StatusContracted, models.FormatOnline)
	paidPayment(t, env, client.ID, 6000, time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local))
	paidPayment(t, env, client.ID, 214000, time.Date(2026, 12, 15, 10, 0, 0, 0, time.Local))
	paidPayment(t, env, client.ID, 9999, time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local))

	year, err := env.payments.YearlySales(2026)
	if err != nil {
		t.Fatalf("yearly: %v", err)
	}
	if len(year) != 12 {
		t.Fatalf("expected 12 months, got %d", len(year))
	}
	if year[0].Total != 6000 {
		t.Fatalf("january: expected 6000, got %d", year[0].Total)
	}
	if year[11].Total != 214000 {
		t.Fatalf("december: expected 214000, got %d", year[11].Total)
	}
	var total models.Amount
	for _, m := range year {
		total += m.Total
	}
	if total != 220000 {
		t.Fatalf("other years leaked in: total %d", total)
	}
}

func TestPaymentService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "hanako", models.StatusContracted, models.FormatOnline)
	payment, _ := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemTrialFee})

	amount := models.Amount(7500)
	receipt := models.ReceiptNotRequired
	updated, err := env.payments.Update(payment.ID, PaymentPatch{Amount: &amount, ReceiptStatus: &receipt})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 7500 || updated.ReceiptStatus != models.ReceiptNotRequired {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Status != models.PaymentUnpaid {
		t.Fatalf("status should be untouched, got %q", updated.Status)
	}

	bad := models.Amount(-1)
	if _, err := env.payments.Update(payment.ID, PaymentPatch{Amount: &bad}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}

	if err := env.payments.Delete(payment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.payments.FindByID(payment.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := env.payments.Delete(payment.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}

func TestPaymentService_MarkPaidWithExplicitDate(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "aoi", models.StatusContracted, models.FormatOnline)
	payment, _ := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemTrialFee})

	transferred := time.Date(2026, time.March, 3, 14, 30, 0, 0, time.Local)
	paid, err := env.payments.MarkPaid(payment.ID, transferred)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !paid.PaidAt.Equal(transferred) {
		t.Fatalf("expected paid at %s, got %s", transferred, paid.PaidAt)
	}

	// The stored date survives a reload.
	after, _ := env.payments.FindByID(payment.ID)
	if !after.PaidAt.Equal(transferred) {
		t.Fatalf("stored paid at %s, want %s", after.PaidAt, transferred)
	}
}

func TestPaymentService_ReceiptFailureCleansWorkDir(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "miyu", models.StatusContracted, models.FormatOnline)
	payment, _ := env.payments.Register(PaymentInput{ClientID: client.ID, LineItem: models.LineItemTrialFee})
	env.payments.MarkPaid(payment.ID, time.Time{})

	// A plain file where the client folder belongs makes the export fail
	// after the working copy already exists.
	blocker := filepath.Join(env.docsRoot, receiptFolderName(client))
	if err := os.WriteFile(blocker, []byte("in the way"), 0o644); err != nil {
		t.Fatalf("plant blocker: %v", err)
	}

	if _, err := env.payments.GenerateReceipt(payment.ID); !apperr.IsExternal(err) {
		t.Fatalf("expected external error, got %v", err)
	}

	entries, err := os.ReadDir(os.TempDir())
	if err == nil {
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), "coachdesk_work_") {
				t.Fatalf("work dir %s left behind after failure", e.Name())
			}
		}
	}

	after, _ := env.payments.FindByID(payment.ID)
	if after.ReceiptStatus != models.ReceiptNotIssued {
		t.Fatalf("receipt status changed on failed issue: %q", after.ReceiptStatus)
	}
}
