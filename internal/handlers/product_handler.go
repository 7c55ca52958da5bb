package handlers

import (
	"errors"
	"net/http"

	"designmecha-mes/config"
	"designmecha-mes/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListProductsHandler returns products with their standard routings, which
// the plan draft endpoint expands into default compositions.
func ListProductsHandler(c *gin.Context) {
	var products []models.Product
	var totalRows int64

	query := config.DB.Model(&models.Product{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}
	if err := query.
		Preload("Partner").
		Preload("StandardProcesses", func(db *gorm.DB) *gorm.DB { return db.Order("product_processes.sequence") }).
		Preload("StandardProcesses.Process").
		Order("name").
		Scopes(Paginate(c)).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, products, totalRows))
}

// GetProductHandler returns one product with its routing.
func GetProductHandler(c *gin.Context) {
	var product models.Product
	err := config.DB.
		Preload("Partner").
		Preload("StandardProcesses", func(db *gorm.DB) *gorm.DB { return db.Order("product_processes.sequence") }).
		Preload("StandardProcesses.Process").
		First(&product, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListProcessesHandler returns the process catalog.
func ListProcessesHandler(c *gin.Context) {
	var processes []models.Process
	if err := config.DB.Order("name").Find(&processes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch processes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": processes})
}

// ListPartnersHandler returns business partners, optionally filtered by the
// role encoded in their partner_types column.
func ListPartnersHandler(c *gin.Context) {
	var partners []models.Partner
	query := config.DB.Model(&models.Partner{})
	if role := c.Query("type"); role != "" {
		query = query.Where("partner_types LIKE ?", "%"+role+"%")
	}
	if err := query.Order("name").Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": partners})
}

// ListStaffHandler returns workers assignable to internal steps.
func ListStaffHandler(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Order("name").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": staff})
}

// ListEquipmentHandler returns equipment assignable to internal steps.
func ListEquipmentHandler(c *gin.Context) {
	var equipment []models.Equipment
	if err := config.DB.Order("name").Find(&equipment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": equipment})
}
