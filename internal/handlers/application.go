package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nst-sdc/skillfest-server/internal/models"
	"github.com/nst-sdc/skillfest-server/internal/services"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

type submitApplicationRequest struct {
	Login  string `json:"login"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Year   string `json:"year"`
	Branch string `json:"branch"`
	Reason string `json:"reason"`
}

// SubmitApplication accepts one fresher-application form submission
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	app := models.NewApplication(req.Login, req.Name, req.Email, req.Year, req.Branch, req.Reason)
	if err := h.applicationService.SubmitApplication(app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, app)
}
