package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	Assistant *services.AssistantService
}

func NewAssistantController(a *services.AssistantService) *AssistantController {
	return &AssistantController{Assistant: a}
}

func (ac *AssistantController) Ask(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := ac.Assistant.Ask(uid, body.Question)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
