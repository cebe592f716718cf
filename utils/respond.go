// utils/respond.go
package utils

import (
	"net/http"

	"coachdesk-backend/apperr"

	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithAppError maps the error taxonomy onto HTTP statuses: validation
// 400, not-found 404, configuration and external failures 500/502.
func RespondWithAppError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case apperr.KindNotFound:
		RespondWithError(c, http.StatusNotFound, err.Error())
	case apperr.KindExternal:
		RespondWithError(c, http.StatusBadGateway, err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
