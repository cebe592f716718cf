// controllers/dashboard.go
package controllers

import (
	"net/http"

	"coachdesk-backend/services"
	"coachdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the aggregated practice overview.
type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

// GetDashboard returns the status summary, today's and upcoming sessions,
// outstanding payments and current-month sales
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	overview, err := dc.Dashboard.Overview()
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
