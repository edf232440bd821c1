package handlers

import (
	"net/http"

	"resonance/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Status func() utils.HealthStatus
}

// Health handles GET /health with the latest dependency snapshot.
func (h *HealthHandler) Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	if h.Status != nil {
		status = h.Status()
	}
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, utils.Envelope{Success: status.Healthy(), Data: status})
}
