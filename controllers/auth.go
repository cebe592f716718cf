// controllers/auth.go
package controllers

import (
	"net/http"
	"os"

	"coachdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthController authenticates the single operator account. There is no user
// table: the operator's email and bcrypt password hash come from the
// environment.
type AuthController struct{}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks the operator credentials and issues a JWT
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	operatorEmail := os.Getenv("OPERATOR_EMAIL")
	passwordHash := os.Getenv("OPERATOR_PASSWORD_HASH")
	if operatorEmail == "" || passwordHash == "" {
		utils.RespondWithError(c, http.StatusInternalServerError, "Operator account not configured")
		return
	}

	if input.Email != operatorEmail || !utils.CheckPasswordHash(input.Password, passwordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(operatorEmail)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": operatorEmail})
}

// Me returns the authenticated operator identity
func (ac *AuthController) Me(c *gin.Context) {
	operator, exists := c.Get("operator")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Operator not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": operator})
}
