// controllers/session.go
package controllers

import (
	"net/http"
	"strconv"

	"coachdesk-backend/services"
	"coachdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// SessionController handles scheduling endpoints.
type SessionController struct {
	Sessions *services.SessionService
	Emails   *services.EmailService
}

func NewSessionController(sessions *services.SessionService, emails *services.EmailService) *SessionController {
	return &SessionController{Sessions: sessions, Emails: emails}
}

// RescheduleInput carries the new start time for an existing session
type RescheduleInput struct {
	ScheduledAt string `json:"scheduledAt" binding:"required"`
}

// CompleteInput carries the session record written at completion
type CompleteInput struct {
	Record string `json:"record"`
}

// ScheduleSession books a session and its calendar event
func (sc *SessionController) ScheduleSession(c *gin.Context) {
	var input services.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := sc.Sessions.Schedule(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSessions lists sessions; supports ?clientId= and ?active=true
func (sc *SessionController) GetSessions(c *gin.Context) {
	sessions, err := sc.Sessions.FindAll(c.Query("clientId"), c.Query("active") == "true")
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetSession retrieves one session by ID
func (sc *SessionController) GetSession(c *gin.Context) {
	session, err := sc.Sessions.FindByID(c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// UpdateSession applies a partial update (status, record, remarks)
func (sc *SessionController) UpdateSession(c *gin.Context) {
	var patch services.SessionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := sc.Sessions.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// RescheduleSession moves a session and its calendar event to a new time
func (sc *SessionController) RescheduleSession(c *gin.Context) {
	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := sc.Sessions.Reschedule(c.Request.Context(), c.Param("id"), input.ScheduledAt)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// CancelSession cancels a session and removes its calendar event
func (sc *SessionController) CancelSession(c *gin.Context) {
	session, err := sc.Sessions.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// CompleteSession marks a session done and stores its record
func (sc *SessionController) CompleteSession(c *gin.Context) {
	var input CompleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := sc.Sessions.Complete(c.Param("id"), input.Record)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SendReminders triggers the reminder batch manually; ?days= overrides the
// default next-day window
func (sc *SessionController) SendReminders(c *gin.Context) {
	days := 1
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	results, err := sc.Emails.SendSessionReminders(c.Request.Context(), days)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	sent := 0
	for _, r := range results {
		if r.Sent {
			sent++
		}
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "total": len(results), "results": results})
}
