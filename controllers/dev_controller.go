// controllers/dev_controller.go
package controllers

import (
	"net/http"
	"os"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// MintDevToken issues a JWT for local testing. Auth flows proper live in the
// identity provider, not here; this exists so the API can be exercised without
// one. Disabled unless DEV_TOKEN_ENABLED=true.
func MintDevToken(c *gin.Context) {
	if os.Getenv("DEV_TOKEN_ENABLED") != "true" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var body struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	if body.Role == "" {
		body.Role = models.RolePatient
	}

	token, err := utils.GenerateJWT(body.UserID, body.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
