package controllers

import (
	"net/http"
	"strconv"

	"tolvuleiga/models"
	"tolvuleiga/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles the customer-facing order endpoints.
type OrderController struct {
	orders   *services.OrderService
	cache    *services.DocumentCache
	notifier *services.Notifier
}

func NewOrderController(orders *services.OrderService, cache *services.DocumentCache, notifier *services.Notifier) *OrderController {
	return &OrderController{orders: orders, cache: cache, notifier: notifier}
}

// CreateOrder prices the selection, persists the order and responds. The
// confirmation/welcome emails run in the background; an email failure never
// turns a created order into a checkout error.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ógild beiðni", "details": err.Error()})
		return
	}

	order, quote, err := oc.orders.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	go oc.notifier.NotifyNewOrder(order.ID, userID)

	c.JSON(http.StatusCreated, gin.H{
		"result": gin.H{
			"order": models.NewOrderResponse(order),
			"quote": quote,
		},
		"success": true,
		"message": "Pöntun móttekin",
	})
}

// GetMyOrders lists the authenticated customer's orders with pagination.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, limit := pagination(c)
	orders, total, err := oc.orders.ListByCustomer(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": orderList(orders, total, page, limit), "success": true})
}

// GetOrderByID returns one order. Customers can only fetch their own.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := oc.orders.Get(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.CustomerID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fannst ekki"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": models.NewOrderResponse(order), "success": true})
}

// GetReceipt streams the receipt PDF through the document cache.
func (oc *OrderController) GetReceipt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := oc.orders.Get(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.CustomerID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fannst ekki"})
		return
	}

	data, filename, err := oc.cache.GetDocument(c.Request.Context(), order.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "application/pdf", data)
}

// RequestExtension records a pending extension request for the order.
func (oc *OrderController) RequestExtension(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.ExtensionRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ógild beiðni", "details": err.Error()})
		return
	}

	ext, err := oc.notifier.RequestExtension(c.Request.Context(), c.Param("order_id"), userID, req.Months)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":  ext,
		"success": true,
		"message": "Beiðni um framlengingu móttekin",
	})
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func orderList(orders []models.Order, total int64, page, limit int) models.OrderListResponse {
	responses := make([]models.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, models.NewOrderResponse(&orders[i]))
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return models.OrderListResponse{
		Orders:     responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
