package controllers

import (
	"net/http"
	"time"

	"tolvuleiga/models"
	"tolvuleiga/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const productImageURLTTL = 2 * time.Minute

// ProductController serves the read-only catalogue: PCs, consoles and their
// signed image locations.
type ProductController struct {
	db         *gorm.DB
	storage    services.ObjectStorage
	imgBuckets map[string]string
}

func NewProductController(db *gorm.DB, storage services.ObjectStorage, imgBuckets map[string]string) *ProductController {
	return &ProductController{db: db, storage: storage, imgBuckets: imgBuckets}
}

func (pc *ProductController) ListPCs(c *gin.Context) {
	var pcs []models.PC
	if err := pc.db.WithContext(c.Request.Context()).Order("price_isk ASC").Find(&pcs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gat ekki sótt vörulista"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": pcs, "success": true})
}

func (pc *ProductController) ListConsoles(c *gin.Context) {
	var consoles []models.Console
	if err := pc.db.WithContext(c.Request.Context()).Order("price_isk ASC").Find(&consoles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gat ekki sótt vörulista"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": consoles, "success": true})
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	kind := c.Param("kind")
	id := c.Param("id")

	switch kind {
	case models.ProductKindPC:
		var item models.PC
		if err := pc.db.WithContext(c.Request.Context()).First(&item, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vara fannst ekki"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": item, "success": true})
	case models.ProductKindConsole:
		var item models.Console
		if err := pc.db.WithContext(c.Request.Context()).First(&item, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vara fannst ekki"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": item, "success": true})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Óþekkt vörutegund"})
	}
}

// GetImageURL signs a short-lived URL for the product's first stored image:
// list the product's folder, pick the first object, sign it.
func (pc *ProductController) GetImageURL(c *gin.Context) {
	kind := c.Param("kind")
	id := c.Param("id")

	bucket, ok := pc.imgBuckets[kind]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Óþekkt vörutegund"})
		return
	}

	folder := pc.imageFolder(c, kind, id)
	if folder == "" {
		return
	}

	keys, err := pc.storage.ListFolder(c.Request.Context(), bucket, folder+"/")
	if err != nil || len(keys) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Engin mynd fannst"})
		return
	}

	url, err := pc.storage.SignedURL(c.Request.Context(), bucket, keys[0], productImageURLTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gat ekki undirritað slóð"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"url": url, "ttl_seconds": int(productImageURLTTL.Seconds())}, "success": true})
}

func (pc *ProductController) imageFolder(c *gin.Context, kind, id string) string {
	switch kind {
	case models.ProductKindPC:
		var item models.PC
		if err := pc.db.WithContext(c.Request.Context()).First(&item, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vara fannst ekki"})
			return ""
		}
		return item.ImageFolder
	case models.ProductKindConsole:
		var item models.Console
		if err := pc.db.WithContext(c.Request.Context()).First(&item, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vara fannst ekki"})
			return ""
		}
		return item.ImageFolder
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Óþekkt vörutegund"})
	return ""
}
