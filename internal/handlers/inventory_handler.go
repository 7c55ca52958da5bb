package handlers

import (
	"errors"
	"net/http"
	"time"

	"designmecha-mes/config"
	"designmecha-mes/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListStocksHandler returns stock rows with their products.
func ListStocksHandler(c *gin.Context) {
	var stocks []models.Stock
	var totalRows int64

	query := config.DB.Model(&models.Stock{})
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count stocks"})
		return
	}
	if err := query.Preload("Product").Order("id").Scopes(Paginate(c)).Find(&stocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stocks"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, stocks, totalRows))
}

// GetStockHandler returns one stock row.
func GetStockHandler(c *gin.Context) {
	var stock models.Stock
	if err := config.DB.Preload("Product").First(&stock, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}
	c.JSON(http.StatusOK, stock)
}

// UpdateStockHandler corrects a stock row by hand: location moves and
// count adjustments from physical stocktaking. Plan transitions keep their
// own arithmetic; this endpoint is for the warehouse, not the planner.
func UpdateStockHandler(c *gin.Context) {
	var body struct {
		CurrentQuantity *int    `json:"currentQuantity"`
		Location        *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var stock models.Stock
	if err := config.DB.First(&stock, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}

	updates := map[string]interface{}{}
	if body.CurrentQuantity != nil {
		if *body.CurrentQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentQuantity cannot be negative"})
			return
		}
		updates["current_quantity"] = *body.CurrentQuantity
	}
	if body.Location != nil {
		updates["location"] = *body.Location
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, stock)
		return
	}

	if err := config.DB.Model(&stock).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}
	c.JSON(http.StatusOK, stock)
}

type stockProductionPayload struct {
	ProductID  uint    `json:"productId" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	TargetDate *string `json:"targetDate"`
	Note       string  `json:"note"`
}

// CreateStockProductionHandler opens a replenishment request with an SP
// number and reserves the in-production quantity up front; plan lifecycle
// transitions settle it later.
func CreateStockProductionHandler(c *gin.Context) {
	var payload stockProductionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	productionNo, err := nextDocumentNo(tx, &models.StockProduction{}, "production_no", "SP")
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue production number"})
		return
	}

	sp := models.StockProduction{
		ProductionNo: productionNo,
		ProductID:    payload.ProductID,
		Quantity:     payload.Quantity,
		RequestDate:  time.Now(),
		TargetDate:   parseDatePtr(payload.TargetDate),
		Status:       models.StockProductionPending,
		Note:         payload.Note,
	}
	if err := tx.Create(&sp).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stock production request"})
		return
	}

	if err := adjustStock(tx, sp.ProductID, 0, sp.Quantity); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reserve in-production stock"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusCreated, sp)
}

// ListStockProductionsHandler returns replenishment requests, newest first.
// unplanned=true keeps only PENDING requests with no open plan, the pool
// the planning screen draws from.
func ListStockProductionsHandler(c *gin.Context) {
	var productions []models.StockProduction
	var totalRows int64

	query := config.DB.Model(&models.StockProduction{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("unplanned") == "true" {
		query = query.
			Where("status = ?", models.StockProductionPending).
			Where("NOT EXISTS (SELECT 1 FROM production_plans pp WHERE pp.stock_production_id = stock_productions.id AND pp.status <> ?)",
				models.ProductionCanceled)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count stock production requests"})
		return
	}
	if err := query.
		Preload("Product").
		Order("request_date DESC, id DESC").
		Scopes(Paginate(c)).
		Find(&productions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock production requests"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, productions, totalRows))
}

// CancelStockProductionHandler cancels a request that is not yet in
// production and releases its reservation.
func CancelStockProductionHandler(c *gin.Context) {
	var sp models.StockProduction
	if err := config.DB.First(&sp, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock production request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock production request"})
		return
	}
	if sp.Status != models.StockProductionPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending requests can be canceled"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	if err := tx.Model(&sp).Update("status", models.StockProductionCancelled).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel request"})
		return
	}
	if err := adjustStock(tx, sp.ProductID, 0, -sp.Quantity); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release in-production stock"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusOK, sp)
}
