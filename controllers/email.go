// controllers/email.go
package controllers

import (
	"net/http"

	"coachdesk-backend/models"
	"coachdesk-backend/services"
	"coachdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// EmailController handles outbound mail and the delivery log.
type EmailController struct {
	Emails *services.EmailService
}

func NewEmailController(emails *services.EmailService) *EmailController {
	return &EmailController{Emails: emails}
}

// SessionNoticeInput selects the session-based template to send
type SessionNoticeInput struct {
	SessionID string               `json:"sessionId" binding:"required"`
	Category  models.EmailCategory `json:"category" binding:"required"`
}

// PaymentInviteInput names the unpaid payment to invite for
type PaymentInviteInput struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// PaymentConfirmInput names the paid payment to acknowledge
type PaymentConfirmInput struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// ContinuationOfferInput names the client to offer the full program to
type ContinuationOfferInput struct {
	ClientID string `json:"clientId" binding:"required"`
}

// SendEmail delivers a free-form mail to a client and logs it
func (ec *EmailController) SendEmail(c *gin.Context) {
	var input services.SendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ec.Emails.Send(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// SendSessionNotice mails a trial invite, booking confirmation or reminder
// for one session
func (ec *EmailController) SendSessionNotice(c *gin.Context) {
	var input SessionNoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ec.Emails.SendSessionNotice(c.Request.Context(), input.SessionID, input.Category)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// SendPaymentInvite mails bank-transfer details for an unpaid payment
func (ec *EmailController) SendPaymentInvite(c *gin.Context) {
	var input PaymentInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ec.Emails.SendPaymentInvite(c.Request.Context(), input.PaymentID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// SendPaymentConfirmation acknowledges a received payment by mail
func (ec *EmailController) SendPaymentConfirmation(c *gin.Context) {
	var input PaymentConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ec.Emails.SendPaymentConfirmation(c.Request.Context(), input.PaymentID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// SendContinuationOffer mails the full-program offer to a trial-done client
func (ec *EmailController) SendContinuationOffer(c *gin.Context) {
	var input ContinuationOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ec.Emails.SendContinuationOffer(c.Request.Context(), input.ClientID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetClientHistory returns one client's mail history, newest first
func (ec *EmailController) GetClientHistory(c *gin.Context) {
	logs, err := ec.Emails.ClientHistory(c.Param("clientId"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// GetEmailLogs lists the delivery log; supports ?clientId= and ?category=
func (ec *EmailController) GetEmailLogs(c *gin.Context) {
	logs, err := ec.Emails.Logs(c.Query("clientId"), models.EmailCategory(c.Query("category")))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
