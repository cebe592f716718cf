// controllers/settings.go
package controllers

import (
	"net/http"

	"coachdesk-backend/models"
	"coachdesk-backend/store"
	"coachdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// SettingsController exposes the settings sheet.
type SettingsController struct {
	Settings *store.SettingsStore
}

func NewSettingsController(settings *store.SettingsStore) *SettingsController {
	return &SettingsController{Settings: settings}
}

type PutSettingInput struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

// GetSettings lists every setting row
func (sc *SettingsController) GetSettings(c *gin.Context) {
	recs, err := sc.Settings.All()
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	settings := make([]models.Setting, len(recs))
	for i, rec := range recs {
		settings[i] = models.SettingFromRecord(rec)
	}
	c.JSON(http.StatusOK, settings)
}

// PutSetting creates or updates one setting
func (sc *SettingsController) PutSetting(c *gin.Context) {
	var input PutSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := sc.Settings.Put(input.Key, input.Value, input.Description); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": input.Key, "value": input.Value})
}
