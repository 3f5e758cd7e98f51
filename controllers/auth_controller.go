package controllers

import (
	"net/http"
	"os"

	"tolvuleiga/models"
	"tolvuleiga/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthController is the seam to the external identity provider: it exchanges
// a verified profile for a session token. Verification itself (OTP, OAuth,
// whatever the front door uses) happens outside this service.
type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type sessionRequest struct {
	Email      string `json:"email" binding:"required"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// CreateSession finds or creates the customer for a verified email and
// returns a signed session token. Profile fields update on every call so the
// checkout always has a current delivery profile.
func (ac *AuthController) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ógild beiðni", "details": err.Error()})
		return
	}

	var user models.User
	err := ac.db.WithContext(c.Request.Context()).Where("email = ?", req.Email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			ID:    uuid.NewString(),
			Email: req.Email,
			Role:  "user",
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kerfisvilla"})
		return
	}

	user.Name = req.Name
	user.NationalID = req.NationalID
	user.Phone = req.Phone
	user.Address = req.Address
	user.City = req.City
	user.PostalCode = req.PostalCode

	if err := ac.db.WithContext(c.Request.Context()).Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kerfisvilla"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, os.Getenv("JWT_SECRET"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gat ekki búið til aðgangslykil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  gin.H{"token": token, "user": user},
		"success": true,
	})
}
