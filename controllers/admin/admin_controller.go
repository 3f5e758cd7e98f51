package admin

import (
	"errors"
	"net/http"
	"strconv"

	"tolvuleiga/models"
	"tolvuleiga/services"
	"tolvuleiga/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController backs the operator console: order management, receipt
// regeneration, reminders and extension-request review.
type AdminController struct {
	db       *gorm.DB
	orders   *services.OrderService
	cache    *services.DocumentCache
	notifier *services.Notifier
}

func NewAdminController(db *gorm.DB, orders *services.OrderService, cache *services.DocumentCache, notifier *services.Notifier) *AdminController {
	return &AdminController{db: db, orders: orders, cache: cache, notifier: notifier}
}

// ListOrders returns all orders, optionally filtered by status.
func (ac *AdminController) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}

	orders, total, err := ac.orders.ListAll(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		ac.respondError(c, err)
		return
	}

	responses := make([]models.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, models.NewOrderResponse(&orders[i]))
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(http.StatusOK, gin.H{
		"result": models.OrderListResponse{
			Orders:     responses,
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
		"success": true,
	})
}

// SetStatus applies an operator-chosen status. Legacy Icelandic labels are
// accepted and normalized.
func (ac *AdminController) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ógild beiðni", "details": err.Error()})
		return
	}

	order, err := ac.orders.SetStatus(c.Request.Context(), c.Param("order_id"), req.Status)
	if err != nil {
		ac.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  models.NewOrderResponse(order),
		"success": true,
		"message": "Staða uppfærð",
	})
}

// DeleteOrder removes the order and, best effort, its cached receipt.
func (ac *AdminController) DeleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	if err := ac.orders.Delete(c.Request.Context(), orderID); err != nil {
		ac.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{"order_id": orderID},
		"success": true,
		"message": "Pöntun eytt",
	})
}

// RegenerateReceipt renders, stores and signs a fresh receipt synchronously;
// used after an admin edits an order.
func (ac *AdminController) RegenerateReceipt(c *gin.Context) {
	_, url, err := ac.cache.Regenerate(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		ac.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{"url": url},
		"success": true,
		"message": "Kvittun endurgerð",
	})
}

// SendReminder triggers the rental-end reminder for one order.
func (ac *AdminController) SendReminder(c *gin.Context) {
	if err := ac.notifier.SendReminder(c.Request.Context(), c.Param("order_id")); err != nil {
		ac.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Áminning send"})
}

// ListExtensionRequests returns extension requests, pending first.
func (ac *AdminController) ListExtensionRequests(c *gin.Context) {
	var requests []models.ExtensionRequest
	query := ac.db.WithContext(c.Request.Context()).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gat ekki sótt beiðnir"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": requests, "success": true})
}

func (ac *AdminController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pöntun fannst ekki"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.LogError(err, c.Request.Method+" "+c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kerfisvilla"})
	}
}
