package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Health *services.HealthService
}

func NewHealthController(h *services.HealthService) *HealthController {
	return &HealthController{Health: h}
}

func (hc *HealthController) Latest(c *gin.Context) {
	uid := c.GetUint("userID")
	metric := c.Param("metric")
	if metric == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "metric required"})
		return
	}
	// never fails: degrades to a labeled synthetic reading
	c.JSON(http.StatusOK, hc.Health.Latest(c.Request.Context(), uid, metric))
}
