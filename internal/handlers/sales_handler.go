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

type salesOrderItemPayload struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unitPrice"`
	Note      string  `json:"note"`
}

type salesOrderPayload struct {
	PartnerID    uint                    `json:"partnerId" binding:"required"`
	OrderDate    string                  `json:"orderDate"`
	DeliveryDate *string                 `json:"deliveryDate"`
	Note         string                  `json:"note"`
	Items        []salesOrderItemPayload `json:"items" binding:"required,min=1"`
}

// CreateSalesOrderHandler registers a customer order with an SO number.
func CreateSalesOrderHandler(c *gin.Context) {
	var payload salesOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderDate := time.Now()
	if payload.OrderDate != "" {
		parsed, err := time.Parse(planDateLayout, payload.OrderDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderDate must be YYYY-MM-DD"})
			return
		}
		orderDate = parsed
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	orderNo, err := nextDocumentNo(tx, &models.SalesOrder{}, "order_no", "SO")
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue order number"})
		return
	}

	order := models.SalesOrder{
		OrderNo:      orderNo,
		PartnerID:    payload.PartnerID,
		OrderDate:    orderDate,
		DeliveryDate: parseDatePtr(payload.DeliveryDate),
		Note:         payload.Note,
		Status:       models.OrderPending,
	}
	for _, in := range payload.Items {
		order.Items = append(order.Items, models.SalesOrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Note:      in.Note,
			Status:    models.OrderItemPending,
		})
		order.TotalAmount += float64(in.Quantity) * in.UnitPrice
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sales order"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListSalesOrdersHandler returns sales orders, newest first. unplanned=true
// keeps only confirmed orders that no open plan covers yet, which is what
// the planning screen offers as sources.
func ListSalesOrdersHandler(c *gin.Context) {
	var orders []models.SalesOrder
	var totalRows int64

	query := config.DB.Model(&models.SalesOrder{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("unplanned") == "true" {
		query = query.
			Where("status = ?", models.OrderConfirmed).
			Where("NOT EXISTS (SELECT 1 FROM production_plans pp WHERE pp.order_id = sales_orders.id AND pp.status <> ?)",
				models.ProductionCanceled)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count sales orders"})
		return
	}
	if err := query.
		Preload("Partner").
		Preload("Items.Product").
		Order("order_date DESC, id DESC").
		Scopes(Paginate(c)).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales orders"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, orders, totalRows))
}

// GetSalesOrderHandler returns one sales order with lines and partner.
func GetSalesOrderHandler(c *gin.Context) {
	var order models.SalesOrder
	if err := config.DB.Preload("Partner").Preload("Items.Product").First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sales order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateSalesOrderStatusHandler patches the header status. Confirming an
// order is what makes it eligible for production planning.
func UpdateSalesOrderStatusHandler(c *gin.Context) {
	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch body.Status {
	case models.OrderPending, models.OrderConfirmed, models.OrderCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	var order models.SalesOrder
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sales order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales order"})
		return
	}
	if err := config.DB.Model(&order).Update("status", body.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sales order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteSalesOrderHandler removes an order that has no plan against it.
func DeleteSalesOrderHandler(c *gin.Context) {
	var order models.SalesOrder
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sales order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales order"})
		return
	}

	var planned int64
	if err := config.DB.Model(&models.ProductionPlan{}).
		Where("order_id = ? AND status <> ?", order.ID, models.ProductionCanceled).
		Count(&planned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check related plans"})
		return
	}
	if planned > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order has a production plan; delete the plan first"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.SalesOrderItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order items"})
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sales order"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sales order deleted"})
}
