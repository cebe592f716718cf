package models

import (
	"time"

	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

// Line items are named payment categories. The set is extensible; these are
// the two the practice bills today.
const (
	LineItemTrialFee        = "trial_fee"
	LineItemContinuationFee = "continuation_fee"
)

type PaymentStatus string

const (
	PaymentUnpaid    PaymentStatus = "unpaid"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

type ReceiptStatus string

const (
	ReceiptNotIssued   ReceiptStatus = "not_issued"
	ReceiptIssued      ReceiptStatus = "issued"
	ReceiptNotRequired ReceiptStatus = "not_required"
)

func (s ReceiptStatus) Valid() bool {
	switch s {
	case ReceiptNotIssued, ReceiptIssued, ReceiptNotRequired:
		return true
	}
	return false
}

const (
	PaymentColID            = "Payment ID"
	PaymentColClientID      = "Client ID"
	PaymentColRegisteredAt  = "Registered At"
	PaymentColLineItem      = "Line Item"
	PaymentColAmount        = "Amount"
	PaymentColStatus        = "Status"
	PaymentColPaidAt        = "Paid At"
	PaymentColReceiptStatus = "Receipt Status"
	PaymentColNotes         = "Notes"
)

var PaymentSchema = store.Schema{
	Sheet:    "payments",
	IDPrefix: "PY",
	Headers: []string{
		PaymentColID, PaymentColClientID, PaymentColRegisteredAt,
		PaymentColLineItem, PaymentColAmount, PaymentColStatus,
		PaymentColPaidAt, PaymentColReceiptStatus, PaymentColNotes,
	},
}

type Payment struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"clientId"`
	RegisteredAt  time.Time     `json:"registeredAt"`
	LineItem      string        `json:"lineItem"`
	Amount        Amount        `json:"amount"`
	Status        PaymentStatus `json:"status"`
	PaidAt        time.Time     `json:"paidAt"`
	ReceiptStatus ReceiptStatus `json:"receiptStatus"`
	Notes         string        `json:"notes"`
}

func (p *Payment) ToRecord() store.Record {
	paidAt := ""
	if !p.PaidAt.IsZero() {
		paidAt = utils.FormatDateTime(p.PaidAt)
	}
	return store.Record{
		PaymentColID:            p.ID,
		PaymentColClientID:      p.ClientID,
		PaymentColRegisteredAt:  utils.FormatDateTime(p.RegisteredAt),
		PaymentColLineItem:      p.LineItem,
		PaymentColAmount:        p.Amount.String(),
		PaymentColStatus:        string(p.Status),
		PaymentColPaidAt:        paidAt,
		PaymentColReceiptStatus: string(p.ReceiptStatus),
		PaymentColNotes:         p.Notes,
	}
}

func PaymentFromRecord(rec store.Record) *Payment {
	registeredAt, _ := utils.ParseDateTime(rec[PaymentColRegisteredAt])
	paidAt, _ := utils.ParseDateTime(rec[PaymentColPaidAt])
	amount, _ := ParseAmount(rec[PaymentColAmount])
	return &Payment{
		ID:            rec[PaymentColID],
		ClientID:      rec[PaymentColClientID],
		RegisteredAt:  registeredAt,
		LineItem:      rec[PaymentColLineItem],
		Amount:        amount,
		Status:        PaymentStatus(rec[PaymentColStatus]),
		PaidAt:        paidAt,
		ReceiptStatus: ReceiptStatus(rec[PaymentColReceiptStatus]),
		Notes:         rec[PaymentColNotes],
	}
}
