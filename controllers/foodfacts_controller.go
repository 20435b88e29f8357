package controllers

import (
	"errors"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type FoodFactsController struct {
	Facts *services.FoodFactsService
}

func NewFoodFactsController(f *services.FoodFactsService) *FoodFactsController {
	return &FoodFactsController{Facts: f}
}

func (fc *FoodFactsController) Lookup(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode required"})
		return
	}

	product, err := fc.Facts.Lookup(barcode)
	if err != nil {
		if errors.Is(err, services.ErrStaleResponse) {
			// a newer lookup for this barcode superseded us
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
		return
	}

	out := gin.H{"product": product}
	if s, ok := product.PanelSummary("nutriscore"); ok {
		out["nutriscore_summary"] = s
	}
	if s, ok := product.PanelSummary("nova"); ok {
		out["nova_summary"] = s
	}
	c.JSON(http.StatusOK, out)
}
