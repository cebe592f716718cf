// controllers/payment.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"coachdesk-backend/models"
	"coachdesk-backend/services"
	"coachdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// PaymentController handles payment registration, status changes, receipts
// and sales reports.
type PaymentController struct {
	Payments *services.PaymentService
	Emails   *services.EmailService
}

func NewPaymentController(payments *services.PaymentService, emails *services.EmailService) *PaymentController {
	return &PaymentController{Payments: payments, Emails: emails}
}

// CreatePayment registers a new unpaid payment
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var input services.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := pc.Payments.Register(input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists payments; supports ?clientId= and ?status=
func (pc *PaymentController) GetPayments(c *gin.Context) {
	payments, err := pc.Payments.FindAll(c.Query("clientId"), models.PaymentStatus(c.Query("status")))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetPayment retrieves one payment by ID
func (pc *PaymentController) GetPayment(c *gin.Context) {
	payment, err := pc.Payments.FindByID(c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// MarkPaidInput optionally carries the actual transfer date
type MarkPaidInput struct {
	PaidAt string `json:"paidAt"`
}

// MarkPaid stamps a payment as paid; body may carry the bank-transfer date
func (pc *PaymentController) MarkPaid(c *gin.Context) {
	var input MarkPaidInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}

	var paidAt time.Time
	if input.PaidAt != "" {
		parsed, err := utils.ParseDateTime(input.PaidAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid paidAt: "+err.Error())
			return
		}
		paidAt = parsed
	}

	payment, err := pc.Payments.MarkPaid(c.Param("id"), paidAt)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// UpdatePayment applies a partial update to amount, receipt status or notes
func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	var patch services.PaymentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := pc.Payments.Update(c.Param("id"), patch)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// DeletePayment removes a payment row outright
func (pc *PaymentController) DeletePayment(c *gin.Context) {
	if err := pc.Payments.Delete(c.Param("id")); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// CancelPayment cancels an unpaid payment
func (pc *PaymentController) CancelPayment(c *gin.Context) {
	payment, err := pc.Payments.Cancel(c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GenerateReceipt renders the receipt PDF for a paid payment and optionally
// mails it (?send=true)
func (pc *PaymentController) GenerateReceipt(c *gin.Context) {
	id := c.Param("id")

	path, err := pc.Payments.GenerateReceipt(id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	if c.Query("send") == "true" {
		entry, err := pc.Emails.SendReceipt(c.Request.Context(), id, path)
		if err != nil {
			// Receipt exists; report the delivery failure alongside it.
			c.JSON(http.StatusOK, gin.H{"path": path, "mailed": false, "mailError": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"path": path, "mailed": true, "emailLog": entry})
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

// GetMonthlySales returns the paid total for ?year=&month= (defaults: now)
func (pc *PaymentController) GetMonthlySales(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year parameter")
			return
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month parameter")
			return
		}
		month = time.Month(parsed)
	}

	sales, err := pc.Payments.MonthlySales(year, month)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, sales)
}

// GetYearlySales returns twelve monthly totals for ?year= (default: now)
func (pc *PaymentController) GetYearlySales(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year parameter")
			return
		}
		year = parsed
	}

	sales, err := pc.Payments.YearlySales(year)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "months": sales})
}
