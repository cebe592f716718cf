// controllers/client.go
package controllers

import (
	"net/http"

	"coachdesk-backend/services"
	"coachdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// ClientController handles client intake and lifecycle endpoints.
type ClientController struct {
	Clients *services.ClientService
}

func NewClientController(clients *services.ClientService) *ClientController {
	return &ClientController{Clients: clients}
}

// CreateClient registers a new client
func (cc *ClientController) CreateClient(c *gin.Context) {
	var input services.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := cc.Clients.Create(input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients lists clients; ?active=true narrows to clients still in the funnel
func (cc *ClientController) GetClients(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	clients, err := cc.Clients.FindAll(activeOnly)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves one client by ID
func (cc *ClientController) GetClient(c *gin.Context) {
	client, err := cc.Clients.FindByID(c.Param("id"))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient applies a partial update to a client
func (cc *ClientController) UpdateClient(c *gin.Context) {
	var patch services.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := cc.Clients.Update(c.Param("id"), patch)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// GetStatusSummary returns client counts per status
func (cc *ClientController) GetStatusSummary(c *gin.Context) {
	summary, err := cc.Clients.StatusSummary()
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
