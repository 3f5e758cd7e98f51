package controllers

import (
	"net/http"

	"tolvuleiga/models"
	"tolvuleiga/services"

	"github.com/gin-gonic/gin"
)

// ContactController relays contact-form submissions to the admin inbox.
type ContactController struct {
	notifier *services.Notifier
}

func NewContactController(notifier *services.Notifier) *ContactController {
	return &ContactController{notifier: notifier}
}

func (cc *ContactController) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ógild beiðni", "details": err.Error()})
		return
	}

	if err := cc.notifier.RelayContactMessage(c.Request.Context(), c.ClientIP(), req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Skilaboð móttekin"})
}
