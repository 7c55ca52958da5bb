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

type purchaseOrderItemPayload struct {
	ProductID            uint    `json:"productId" binding:"required"`
	ProductionPlanItemID *uint   `json:"productionPlanItemId"`
	Quantity             int     `json:"quantity"`
	UnitPrice            float64 `json:"unitPrice"`
	Note                 string  `json:"note"`
}

type purchaseOrderPayload struct {
	PartnerID    *uint                      `json:"partnerId"`
	OrderDate    string                     `json:"orderDate"`
	DeliveryDate *string                    `json:"deliveryDate"`
	Note         string                     `json:"note"`
	Items        []purchaseOrderItemPayload `json:"items" binding:"required,min=1"`
}

// markLinkedItemsInProgress moves the plan items a new sub-order executes,
// and their plans, out of PLANNED.
func markLinkedItemsInProgress(tx *gorm.DB, planItemIDs []uint) error {
	if len(planItemIDs) == 0 {
		return nil
	}
	if err := tx.Model(&models.ProductionPlanItem{}).
		Where("id IN ? AND status = ?", planItemIDs, models.ProductionPlanned).
		Update("status", models.ProductionInProgress).Error; err != nil {
		return err
	}
	var planIDs []uint
	if err := tx.Model(&models.ProductionPlanItem{}).
		Where("id IN ?", planItemIDs).
		Distinct().Pluck("plan_id", &planIDs).Error; err != nil {
		return err
	}
	return tx.Model(&models.ProductionPlan{}).
		Where("id IN ? AND status = ?", planIDs, models.ProductionPlanned).
		Update("status", models.ProductionInProgress).Error
}

// CreatePurchaseOrderHandler places a materials order. Lines created from a
// plan's pending PURCHASE steps carry the plan-item link, which flips those
// steps (and their plan) to IN_PROGRESS.
func CreatePurchaseOrderHandler(c *gin.Context) {
	var payload purchaseOrderPayload
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

	orderNo, err := nextDocumentNo(tx, &models.PurchaseOrder{}, "order_no", "PO")
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue order number"})
		return
	}

	order := models.PurchaseOrder{
		OrderNo:      orderNo,
		PartnerID:    payload.PartnerID,
		OrderDate:    orderDate,
		DeliveryDate: parseDatePtr(payload.DeliveryDate),
		Note:         payload.Note,
		Status:       models.PurchaseOrdered,
	}
	for _, in := range payload.Items {
		order.Items = append(order.Items, models.PurchaseOrderItem{
			ProductID:            in.ProductID,
			ProductionPlanItemID: in.ProductionPlanItemID,
			Quantity:             in.Quantity,
			UnitPrice:            in.UnitPrice,
			Note:                 in.Note,
		})
		order.TotalAmount += float64(in.Quantity) * in.UnitPrice
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		return
	}

	planItemIDs := make([]uint, 0)
	for _, in := range payload.Items {
		if in.ProductionPlanItemID != nil {
			planItemIDs = append(planItemIDs, *in.ProductionPlanItemID)
		}
	}
	if err := markLinkedItemsInProgress(tx, planItemIDs); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance linked plan items"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	invalidateBoardCache()
	c.JSON(http.StatusCreated, order)
}

// ListPurchaseOrdersHandler returns purchase orders, newest first.
func ListPurchaseOrdersHandler(c *gin.Context) {
	var orders []models.PurchaseOrder
	var totalRows int64

	query := config.DB.Model(&models.PurchaseOrder{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count purchase orders"})
		return
	}
	if err := query.
		Preload("Partner").
		Preload("Items.Product").
		Order("order_date DESC, id DESC").
		Scopes(Paginate(c)).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase orders"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, orders, totalRows))
}

// UpdatePurchaseOrderStatusHandler patches the order status. Moving into a
// fulfilled state is what clears the dependency gate for linked plan steps.
func UpdatePurchaseOrderStatusHandler(c *gin.Context) {
	var body struct {
		Status models.PurchaseStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch body.Status {
	case models.PurchasePending, models.PurchaseOrdered, models.PurchasePartial, models.PurchaseCompleted, models.PurchaseCanceled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase order status"})
		return
	}

	var order models.PurchaseOrder
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase order"})
		return
	}
	if err := config.DB.Model(&order).Update("status", body.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purchase order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeletePurchaseOrderHandler removes the order and its lines. Linked plan
// steps fall back to PLANNED so they reappear as pending purchase items.
func DeletePurchaseOrderHandler(c *gin.Context) {
	var order models.PurchaseOrder
	if err := config.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase order"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	planItemIDs := make([]uint, 0)
	for _, line := range order.Items {
		if line.ProductionPlanItemID != nil {
			planItemIDs = append(planItemIDs, *line.ProductionPlanItemID)
		}
	}
	if len(planItemIDs) > 0 {
		if err := tx.Model(&models.ProductionPlanItem{}).
			Where("id IN ?", planItemIDs).
			Update("status", models.ProductionPlanned).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset linked plan items"})
			return
		}
	}

	if err := tx.Where("purchase_order_id = ?", order.ID).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase order items"})
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase order"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase order deleted"})
}

type outsourcingOrderItemPayload struct {
	ProductID            *uint   `json:"productId"`
	ProductionPlanItemID *uint   `json:"productionPlanItemId"`
	Quantity             int     `json:"quantity"`
	UnitPrice            float64 `json:"unitPrice"`
	Note                 string  `json:"note"`
}

type outsourcingOrderPayload struct {
	PartnerID    *uint                         `json:"partnerId"`
	OrderDate    string                        `json:"orderDate"`
	DeliveryDate *string                       `json:"deliveryDate"`
	Note         string                        `json:"note"`
	Items        []outsourcingOrderItemPayload `json:"items" binding:"required,min=1"`
}

// CreateOutsourcingOrderHandler places a processing order with a
// subcontractor, linking its lines back to the plan steps they execute.
func CreateOutsourcingOrderHandler(c *gin.Context) {
	var payload outsourcingOrderPayload
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

	orderNo, err := nextDocumentNo(tx, &models.OutsourcingOrder{}, "order_no", "OS")
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue order number"})
		return
	}

	order := models.OutsourcingOrder{
		OrderNo:      orderNo,
		PartnerID:    payload.PartnerID,
		OrderDate:    orderDate,
		DeliveryDate: parseDatePtr(payload.DeliveryDate),
		Note:         payload.Note,
		Status:       models.OutsourcingOrdered,
	}
	for _, in := range payload.Items {
		order.Items = append(order.Items, models.OutsourcingOrderItem{
			ProductID:            in.ProductID,
			ProductionPlanItemID: in.ProductionPlanItemID,
			Quantity:             in.Quantity,
			UnitPrice:            in.UnitPrice,
			Note:                 in.Note,
			Status:               models.OutsourcingOrdered,
		})
		order.TotalAmount += float64(in.Quantity) * in.UnitPrice
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create outsourcing order"})
		return
	}

	planItemIDs := make([]uint, 0)
	for _, in := range payload.Items {
		if in.ProductionPlanItemID != nil {
			planItemIDs = append(planItemIDs, *in.ProductionPlanItemID)
		}
	}
	if err := markLinkedItemsInProgress(tx, planItemIDs); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance linked plan items"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	invalidateBoardCache()
	c.JSON(http.StatusCreated, order)
}

// ListOutsourcingOrdersHandler returns outsourcing orders, newest first.
func ListOutsourcingOrdersHandler(c *gin.Context) {
	var orders []models.OutsourcingOrder
	var totalRows int64

	query := config.DB.Model(&models.OutsourcingOrder{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count outsourcing orders"})
		return
	}
	if err := query.
		Preload("Partner").
		Preload("Items.Product").
		Order("order_date DESC, id DESC").
		Scopes(Paginate(c)).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch outsourcing orders"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, orders, totalRows))
}

// UpdateOutsourcingOrderStatusHandler patches the order status and cascades
// it to the order's lines, which is what the dependency gate reads.
func UpdateOutsourcingOrderStatusHandler(c *gin.Context) {
	var body struct {
		Status models.OutsourcingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch body.Status {
	case models.OutsourcingPending, models.OutsourcingOrdered, models.OutsourcingCompleted, models.OutsourcingCanceled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid outsourcing order status"})
		return
	}

	var order models.OutsourcingOrder
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Outsourcing order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch outsourcing order"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	if err := tx.Model(&order).Update("status", body.Status).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update outsourcing order"})
		return
	}
	if err := tx.Model(&models.OutsourcingOrderItem{}).
		Where("outsourcing_order_id = ?", order.ID).
		Update("status", body.Status).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update outsourcing lines"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOutsourcingOrderHandler removes the order and its lines; linked
// plan steps fall back to PLANNED.
func DeleteOutsourcingOrderHandler(c *gin.Context) {
	var order models.OutsourcingOrder
	if err := config.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Outsourcing order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch outsourcing order"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	planItemIDs := make([]uint, 0)
	for _, line := range order.Items {
		if line.ProductionPlanItemID != nil {
			planItemIDs = append(planItemIDs, *line.ProductionPlanItemID)
		}
	}
	if len(planItemIDs) > 0 {
		if err := tx.Model(&models.ProductionPlanItem{}).
			Where("id IN ?", planItemIDs).
			Update("status", models.ProductionPlanned).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset linked plan items"})
			return
		}
	}

	if err := tx.Where("outsourcing_order_id = ?", order.ID).Delete(&models.OutsourcingOrderItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete outsourcing order items"})
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete outsourcing order"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Outsourcing order deleted"})
}
