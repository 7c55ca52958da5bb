package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"designmecha-mes/config"
	"designmecha-mes/internal/planner"
	"designmecha-mes/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// groupQuantities collapses plan items to one produced quantity per product.
// All items of a group carry the same quantity, so the first one wins.
func groupQuantities(items []models.ProductionPlanItem) map[uint]int {
	out := make(map[uint]int)
	for _, item := range items {
		if _, ok := out[item.ProductID]; !ok {
			out[item.ProductID] = item.Quantity
		}
	}
	return out
}

// reservationDeltas returns, per product, how far the in-production
// reservation must move when a plan's quantities change from before to
// after. A product on one side only counts from or to zero; unchanged
// products are omitted.
func reservationDeltas(before, after map[uint]int) map[uint]int {
	deltas := make(map[uint]int)
	for productID, qty := range after {
		if d := qty - before[productID]; d != 0 {
			deltas[productID] = d
		}
	}
	for productID, qty := range before {
		if _, ok := after[productID]; !ok && qty != 0 {
			deltas[productID] = -qty
		}
	}
	return deltas
}

// applyStockDelta is the single place stock arithmetic happens. The
// in-production floor at zero guards against drift from records predating
// reservation tracking.
func applyStockDelta(current, inProduction, currentDelta, inProductionDelta int) (int, int) {
	current += currentDelta
	inProduction += inProductionDelta
	if inProduction < 0 {
		inProduction = 0
	}
	return current, inProduction
}

// adjustStock applies a delta to one product's stock row, creating the row
// on first touch.
func adjustStock(tx *gorm.DB, productID uint, currentDelta, inProductionDelta int) error {
	var stock models.Stock
	err := tx.Where("product_id = ?", productID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stock = models.Stock{ProductID: productID}
		if err := tx.Create(&stock).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	stock.CurrentQuantity, stock.InProductionQuantity = applyStockDelta(
		stock.CurrentQuantity, stock.InProductionQuantity, currentDelta, inProductionDelta)
	return tx.Model(&stock).Updates(map[string]interface{}{
		"current_quantity":       stock.CurrentQuantity,
		"in_production_quantity": stock.InProductionQuantity,
	}).Error
}

// purchaseAdvances picks the linked purchase orders a completion must drag
// to COMPLETED: those not yet in a fulfilled status. Each order id appears
// once however many lines point at it.
func purchaseAdvances(items []models.ProductionPlanItem) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for i := range items {
		for _, line := range items[i].PurchaseOrderItems {
			if line.PurchaseOrder == nil || line.PurchaseOrder.Status.Fulfilled() || seen[line.PurchaseOrderID] {
				continue
			}
			seen[line.PurchaseOrderID] = true
			ids = append(ids, line.PurchaseOrderID)
		}
	}
	return ids
}

// outsourcingAdvances is the OUTSOURCING twin, returning lagging line ids
// and order ids separately since lines carry their own status.
func outsourcingAdvances(items []models.ProductionPlanItem) (lineIDs, orderIDs []uint) {
	seenOrder := make(map[uint]bool)
	for i := range items {
		for _, line := range items[i].OutsourcingOrderItems {
			if line.Status != models.OutsourcingCompleted {
				lineIDs = append(lineIDs, line.ID)
			}
			if line.OutsourcingOrder != nil && line.OutsourcingOrder.Status != models.OutsourcingCompleted && !seenOrder[line.OutsourcingOrderID] {
				seenOrder[line.OutsourcingOrderID] = true
				orderIDs = append(orderIDs, line.OutsourcingOrderID)
			}
		}
	}
	return lineIDs, orderIDs
}

// purchaseResets picks the linked purchase orders a revert must roll back:
// only those completion itself advanced, per the AutoCompleted marker. An
// order the purchasing desk fulfilled on its own is never touched.
func purchaseResets(items []models.ProductionPlanItem) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for i := range items {
		for _, line := range items[i].PurchaseOrderItems {
			if line.PurchaseOrder == nil || !line.PurchaseOrder.AutoCompleted || seen[line.PurchaseOrderID] {
				continue
			}
			seen[line.PurchaseOrderID] = true
			ids = append(ids, line.PurchaseOrderID)
		}
	}
	return ids
}

// outsourcingResets is the OUTSOURCING twin of purchaseResets.
func outsourcingResets(items []models.ProductionPlanItem) (lineIDs, orderIDs []uint) {
	seenOrder := make(map[uint]bool)
	for i := range items {
		for _, line := range items[i].OutsourcingOrderItems {
			if line.AutoCompleted {
				lineIDs = append(lineIDs, line.ID)
			}
			if line.OutsourcingOrder != nil && line.OutsourcingOrder.AutoCompleted && !seenOrder[line.OutsourcingOrderID] {
				seenOrder[line.OutsourcingOrderID] = true
				orderIDs = append(orderIDs, line.OutsourcingOrderID)
			}
		}
	}
	return lineIDs, orderIDs
}

// applyCreateSideEffects runs inside the create transaction. Order-sourced
// plans move the order's matching lines into production and reserve
// in-production stock; replenishment-sourced plans only advance the request
// (its own creation already reserved the stock).
func applyCreateSideEffects(tx *gorm.DB, plan *models.ProductionPlan, items []models.ProductionPlanItem) error {
	if plan.OrderID != nil {
		productIDs := make([]uint, 0)
		for productID := range groupQuantities(items) {
			productIDs = append(productIDs, productID)
		}
		if err := tx.Model(&models.SalesOrderItem{}).
			Where("order_id = ? AND product_id IN ? AND status = ?", *plan.OrderID, productIDs, models.OrderItemPending).
			Update("status", models.OrderItemInProduction).Error; err != nil {
			return fmt.Errorf("failed to advance sales order items: %w", err)
		}
		for productID, qty := range groupQuantities(items) {
			if err := adjustStock(tx, productID, 0, qty); err != nil {
				return fmt.Errorf("failed to reserve in-production stock: %w", err)
			}
		}
	}
	if plan.StockProductionID != nil {
		if err := tx.Model(&models.StockProduction{}).
			Where("id = ?", *plan.StockProductionID).
			Update("status", models.StockProductionInProgress).Error; err != nil {
			return fmt.Errorf("failed to advance stock production request: %w", err)
		}
	}
	return nil
}

// CompleteProductionPlanHandler finishes a plan. Unfulfilled purchase or
// outsourcing dependencies block with a DEPENDENCY_WARNING conflict unless
// force=true; the override then auto-advances the lagging sub-orders. In
// one transaction: derived costs are snapshotted, items and sub-orders are
// completed, finished goods land in stock, and the source is closed out.
func CompleteProductionPlanHandler(c *gin.Context) {
	var plan models.ProductionPlan
	if err := planScope(config.DB).First(&plan, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production plan"})
		return
	}
	if plan.Status == models.ProductionCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan is already completed"})
		return
	}
	if plan.Status == models.ProductionCanceled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Canceled plans cannot be completed"})
		return
	}

	flags := planner.CheckDependencies(plan.Items)
	if len(flags) > 0 && c.Query("force") != "true" {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "DEPENDENCY_WARNING",
			"error": "Plan has unfulfilled dependencies",
			"flags": flags,
		})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	// Snapshot the sub-order cost before anything moves.
	for i := range plan.Items {
		item := &plan.Items[i]
		if item.CourseType == models.CoursePurchase || item.CourseType == models.CourseOutsourcing {
			cost := item.DerivedCost()
			if err := tx.Model(item).Update("cost", cost).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to snapshot step cost"})
				return
			}
		}
	}

	// Drag lagging sub-orders to COMPLETED so the records agree with
	// reality, marking each one so revert knows completion did it.
	if ids := purchaseAdvances(plan.Items); len(ids) > 0 {
		if err := tx.Model(&models.PurchaseOrder{}).Where("id IN ?", ids).
			Updates(map[string]interface{}{"status": models.PurchaseCompleted, "auto_completed": true}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance purchase orders"})
			return
		}
	}
	lineIDs, orderIDs := outsourcingAdvances(plan.Items)
	if len(lineIDs) > 0 {
		if err := tx.Model(&models.OutsourcingOrderItem{}).Where("id IN ?", lineIDs).
			Updates(map[string]interface{}{"status": models.OutsourcingCompleted, "auto_completed": true}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance outsourcing lines"})
			return
		}
	}
	if len(orderIDs) > 0 {
		if err := tx.Model(&models.OutsourcingOrder{}).Where("id IN ?", orderIDs).
			Updates(map[string]interface{}{"status": models.OutsourcingCompleted, "auto_completed": true}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance outsourcing orders"})
			return
		}
	}

	if err := tx.Model(&models.ProductionPlanItem{}).
		Where("plan_id = ?", plan.ID).
		Update("status", models.ProductionCompleted).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete plan items"})
		return
	}

	for productID, qty := range groupQuantities(plan.Items) {
		if err := adjustStock(tx, productID, qty, -qty); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
	}

	if plan.OrderID != nil {
		productIDs := make([]uint, 0)
		for productID := range groupQuantities(plan.Items) {
			productIDs = append(productIDs, productID)
		}
		if err := tx.Model(&models.SalesOrderItem{}).
			Where("order_id = ? AND product_id IN ? AND status IN ?", *plan.OrderID, productIDs,
				[]models.OrderItemStatus{models.OrderItemPending, models.OrderItemInProduction}).
			Update("status", models.OrderItemCompleted).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete sales order items"})
			return
		}
	}
	if plan.StockProductionID != nil {
		if err := tx.Model(&models.StockProduction{}).
			Where("id = ?", *plan.StockProductionID).
			Update("status", models.StockProductionCompleted).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete stock production request"})
			return
		}
	}

	if err := tx.Model(&plan).Update("status", models.ProductionCompleted).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete plan"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	invalidateBoardCache()
	FeedHub.Publish(PlanEvent{Type: "completed", PlanID: plan.ID, Status: models.ProductionCompleted, Operator: c.GetString("operator")})

	var updated models.ProductionPlan
	if err := planScope(config.DB).First(&updated, plan.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan completed but could not be reloaded"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RevertProductionPlanHandler undoes a completion: finished goods leave
// stock, the source reopens, auto-advanced sub-orders fall back to ORDERED
// and the plan returns to IN_PROGRESS. Only COMPLETED plans can revert.
func RevertProductionPlanHandler(c *gin.Context) {
	var plan models.ProductionPlan
	if err := planScope(config.DB).First(&plan, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production plan"})
		return
	}
	if plan.Status != models.ProductionCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only completed plans can be reverted"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := revertCompletionEffects(tx, &plan); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := tx.Model(&models.ProductionPlanItem{}).
		Where("plan_id = ?", plan.ID).
		Update("status", models.ProductionInProgress).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen plan items"})
		return
	}
	if err := tx.Model(&plan).Update("status", models.ProductionInProgress).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen plan"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	invalidateBoardCache()
	FeedHub.Publish(PlanEvent{Type: "reverted", PlanID: plan.ID, Status: models.ProductionInProgress, Operator: c.GetString("operator")})

	var updated models.ProductionPlan
	if err := planScope(config.DB).First(&updated, plan.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan reverted but could not be reloaded"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// revertCompletionEffects rolls back what completion did: stock, source
// statuses and completed sub-orders. Shared by revert and by deleting a
// completed plan.
func revertCompletionEffects(tx *gorm.DB, plan *models.ProductionPlan) error {
	for productID, qty := range groupQuantities(plan.Items) {
		if err := adjustStock(tx, productID, -qty, qty); err != nil {
			return fmt.Errorf("failed to roll back stock: %w", err)
		}
	}

	if plan.OrderID != nil {
		productIDs := make([]uint, 0)
		for productID := range groupQuantities(plan.Items) {
			productIDs = append(productIDs, productID)
		}
		if err := tx.Model(&models.SalesOrderItem{}).
			Where("order_id = ? AND product_id IN ? AND status = ?", *plan.OrderID, productIDs, models.OrderItemCompleted).
			Update("status", models.OrderItemInProduction).Error; err != nil {
			return fmt.Errorf("failed to reopen sales order items: %w", err)
		}
	}
	if plan.StockProductionID != nil {
		if err := tx.Model(&models.StockProduction{}).
			Where("id = ?", *plan.StockProductionID).
			Update("status", models.StockProductionInProgress).Error; err != nil {
			return fmt.Errorf("failed to reopen stock production request: %w", err)
		}
	}

	// Roll back only the sub-orders completion auto-advanced. A COMPLETED
	// status without the marker means the counterparty really delivered;
	// that record stays.
	if ids := purchaseResets(plan.Items); len(ids) > 0 {
		if err := tx.Model(&models.PurchaseOrder{}).Where("id IN ?", ids).
			Updates(map[string]interface{}{"status": models.PurchaseOrdered, "auto_completed": false}).Error; err != nil {
			return fmt.Errorf("failed to roll back purchase orders: %w", err)
		}
	}
	lineIDs, orderIDs := outsourcingResets(plan.Items)
	if len(lineIDs) > 0 {
		if err := tx.Model(&models.OutsourcingOrderItem{}).Where("id IN ?", lineIDs).
			Updates(map[string]interface{}{"status": models.OutsourcingOrdered, "auto_completed": false}).Error; err != nil {
			return fmt.Errorf("failed to roll back outsourcing lines: %w", err)
		}
	}
	if len(orderIDs) > 0 {
		if err := tx.Model(&models.OutsourcingOrder{}).Where("id IN ?", orderIDs).
			Updates(map[string]interface{}{"status": models.OutsourcingOrdered, "auto_completed": false}).Error; err != nil {
			return fmt.Errorf("failed to roll back outsourcing orders: %w", err)
		}
	}
	return nil
}

// DeleteProductionPlanHandler removes a plan. A completed plan is first
// reverted so stock and source records stay consistent. Linked sub-orders
// are deleted with delete_related_orders=true, otherwise only detached.
func DeleteProductionPlanHandler(c *gin.Context) {
	var plan models.ProductionPlan
	if err := planScope(config.DB).First(&plan, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production plan"})
		return
	}

	deleteRelated := c.Query("delete_related_orders") == "true"

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if plan.Status == models.ProductionCompleted {
		if err := revertCompletionEffects(tx, &plan); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	// Reopen the source. Order lines fall back to PENDING so the order can
	// be planned again; the replenishment request does the same.
	if plan.OrderID != nil {
		productIDs := make([]uint, 0)
		for productID := range groupQuantities(plan.Items) {
			productIDs = append(productIDs, productID)
		}
		if err := tx.Model(&models.SalesOrderItem{}).
			Where("order_id = ? AND product_id IN ? AND status = ?", *plan.OrderID, productIDs, models.OrderItemInProduction).
			Update("status", models.OrderItemPending).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset sales order items"})
			return
		}
		for productID, qty := range groupQuantities(plan.Items) {
			if err := adjustStock(tx, productID, 0, -qty); err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release in-production stock"})
				return
			}
		}
	}
	if plan.StockProductionID != nil {
		if err := tx.Model(&models.StockProduction{}).
			Where("id = ?", *plan.StockProductionID).
			Update("status", models.StockProductionPending).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset stock production request"})
			return
		}
	}

	itemIDs := make([]uint, 0, len(plan.Items))
	for _, item := range plan.Items {
		itemIDs = append(itemIDs, item.ID)
	}

	if len(itemIDs) > 0 {
		if deleteRelated {
			if err := deleteLinkedOrders(tx, itemIDs); err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		} else {
			// Keep the sub-orders but cut the links; they become standalone
			// purchasing records.
			if err := tx.Model(&models.PurchaseOrderItem{}).
				Where("production_plan_item_id IN ?", itemIDs).
				Update("production_plan_item_id", nil).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach purchase order items"})
				return
			}
			if err := tx.Model(&models.OutsourcingOrderItem{}).
				Where("production_plan_item_id IN ?", itemIDs).
				Update("production_plan_item_id", nil).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach outsourcing order items"})
				return
			}
		}

		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.ProductionPlanItem{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan items"})
			return
		}
	}

	if err := tx.Delete(&models.ProductionPlan{}, plan.ID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	invalidateBoardCache()
	FeedHub.Publish(PlanEvent{Type: "deleted", PlanID: plan.ID, Operator: c.GetString("operator")})

	c.JSON(http.StatusOK, gin.H{"message": "Production plan deleted"})
}

// deleteLinkedOrders removes every purchase and outsourcing order that has
// at least one line pointing into the given plan items, lines included.
func deleteLinkedOrders(tx *gorm.DB, itemIDs []uint) error {
	var poIDs []uint
	if err := tx.Model(&models.PurchaseOrderItem{}).
		Where("production_plan_item_id IN ?", itemIDs).
		Distinct().Pluck("purchase_order_id", &poIDs).Error; err != nil {
		return fmt.Errorf("failed to find linked purchase orders: %w", err)
	}
	if len(poIDs) > 0 {
		if err := tx.Where("purchase_order_id IN ?", poIDs).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete purchase order items: %w", err)
		}
		if err := tx.Delete(&models.PurchaseOrder{}, poIDs).Error; err != nil {
			return fmt.Errorf("failed to delete purchase orders: %w", err)
		}
	}

	var osoIDs []uint
	if err := tx.Model(&models.OutsourcingOrderItem{}).
		Where("production_plan_item_id IN ?", itemIDs).
		Distinct().Pluck("outsourcing_order_id", &osoIDs).Error; err != nil {
		return fmt.Errorf("failed to find linked outsourcing orders: %w", err)
	}
	if len(osoIDs) > 0 {
		if err := tx.Where("outsourcing_order_id IN ?", osoIDs).Delete(&models.OutsourcingOrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete outsourcing order items: %w", err)
		}
		if err := tx.Delete(&models.OutsourcingOrder{}, osoIDs).Error; err != nil {
			return fmt.Errorf("failed to delete outsourcing orders: %w", err)
		}
	}
	return nil
}
