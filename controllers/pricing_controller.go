package controllers

import (
	"net/http"

	"tolvuleiga/models"
	"tolvuleiga/services"

	"github.com/gin-gonic/gin"
)

// PricingController exposes the quote endpoint so every page prices through
// the one engine instead of recomputing locally.
type PricingController struct {
	orders *services.OrderService
}

func NewPricingController(orders *services.OrderService) *PricingController {
	return &PricingController{orders: orders}
}

func (pc *PricingController) Quote(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ógild beiðni", "details": err.Error()})
		return
	}

	quote, err := pc.orders.Quote(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": quote, "success": true})
}
