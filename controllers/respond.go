package controllers

import (
	"errors"
	"net/http"

	"tolvuleiga/services"
	"tolvuleiga/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Fannst ekki"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Of margar fyrirspurnir, reyndu aftur síðar", "rate_limited": true})
	default:
		utils.LogError(err, c.Request.Method+" "+c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kerfisvilla, reyndu aftur"})
	}
}

// currentUserID returns the authenticated user id set by the JWT middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Ekki innskráð(ur)"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kerfisvilla við auðkenningu"})
		return "", false
	}
	return id, true
}
