package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"designmecha-mes/config"
	"designmecha-mes/internal/planner"
	"designmecha-mes/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const planDateLayout = "2006-01-02"

// planItemPayload is one step row as the plan editor submits it.
type planItemPayload struct {
	ID            uint                    `json:"id"`
	ProductID     uint                    `json:"productId"`
	ProcessName   string                  `json:"processName"`
	Sequence      int                     `json:"sequence"`
	CourseType    models.CourseType       `json:"courseType"`
	Quantity      int                     `json:"quantity"`
	PartnerName   string                  `json:"partnerName"`
	WorkerID      *uint                   `json:"workerId"`
	EquipmentID   *uint                   `json:"equipmentId"`
	EstimatedTime float64                 `json:"estimatedTime"`
	Cost          float64                 `json:"cost"`
	StartDate     *string                 `json:"startDate"`
	EndDate       *string                 `json:"endDate"`
	Status        models.ProductionStatus `json:"status"`
	Note          string                  `json:"note"`
}

// planPayload is the full create/update body for a plan.
type planPayload struct {
	PlanDate          string            `json:"planDate"`
	OrderID           *uint             `json:"orderId"`
	StockProductionID *uint             `json:"stockProductionId"`
	Items             []planItemPayload `json:"items"`
}

func (p *planPayload) toItems() []models.ProductionPlanItem {
	items := make([]models.ProductionPlanItem, 0, len(p.Items))
	for _, in := range p.Items {
		item := models.ProductionPlanItem{
			ID:            in.ID,
			ProductID:     in.ProductID,
			ProcessName:   in.ProcessName,
			Sequence:      in.Sequence,
			CourseType:    in.CourseType,
			Quantity:      in.Quantity,
			PartnerName:   in.PartnerName,
			WorkerID:      in.WorkerID,
			EquipmentID:   in.EquipmentID,
			EstimatedTime: in.EstimatedTime,
			Cost:          in.Cost,
			Status:        in.Status,
			Note:          in.Note,
		}
		if in.CourseType == "" {
			item.CourseType = models.CourseInternal
		}
		if in.Status == "" {
			item.Status = models.ProductionPlanned
		}
		item.StartDate = parseDatePtr(in.StartDate)
		item.EndDate = parseDatePtr(in.EndDate)
		items = append(items, item)
	}
	return items
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(planDateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

// planScope preloads everything list and detail views need, including the
// sub-order links the dependency gate inspects.
func planScope(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("production_plan_items.id ASC") }).
		Preload("Items.Product").
		Preload("Items.Worker").
		Preload("Items.Equipment").
		Preload("Items.PurchaseOrderItems.PurchaseOrder").
		Preload("Items.OutsourcingOrderItems.OutsourcingOrder").
		Preload("Order.Partner").
		Preload("Order.Items").
		Preload("StockProduction.Product")
}

// ListProductionPlansHandler returns plans, newest first. status=open keeps
// PLANNED and IN_PROGRESS (the "in progress" tab shows both),
// status=completed keeps COMPLETED, any other value filters exactly.
func ListProductionPlansHandler(c *gin.Context) {
	var plans []models.ProductionPlan
	var totalRows int64

	query := config.DB.Model(&models.ProductionPlan{})
	switch c.Query("status") {
	case "":
	case "open":
		query = query.Where("status IN ?", []models.ProductionStatus{models.ProductionPlanned, models.ProductionInProgress})
	case "completed":
		query = query.Where("status = ?", models.ProductionCompleted)
	default:
		query = query.Where("status = ?", c.Query("status"))
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count production plans"})
		return
	}

	if err := planScope(query).Order("plan_date DESC, id DESC").Scopes(Paginate(c)).Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production plans"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, plans, totalRows))
}

// GetProductionPlanHandler returns one plan with all links.
func GetProductionPlanHandler(c *gin.Context) {
	var plan models.ProductionPlan
	if err := planScope(config.DB).First(&plan, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DraftProductionPlanHandler seeds a draft composition for an unplanned
// source via the routing defaulter. Nothing is persisted; the editor takes
// the returned items as its starting point.
func DraftProductionPlanHandler(c *gin.Context) {
	orderID := uintQuery(c, "order_id")
	stockProductionID := uintQuery(c, "stock_production_id")

	if (orderID == nil) == (stockProductionID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide exactly one of order_id and stock_production_id"})
		return
	}

	var lines []planner.SourceLine
	if orderID != nil {
		var order models.SalesOrder
		if err := config.DB.Preload("Items.Product").First(&order, *orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sales order not found"})
			return
		}
		for _, item := range order.Items {
			lines = append(lines, sourceLineFor(item.ProductID, item.Product, item.Quantity))
		}
	} else {
		var sp models.StockProduction
		if err := config.DB.Preload("Product").First(&sp, *stockProductionID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock production request not found"})
			return
		}
		lines = append(lines, sourceLineFor(sp.ProductID, sp.Product, sp.Quantity))
	}

	routings, err := loadRoutings(lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load standard routings"})
		return
	}

	composition := planner.BuildComposition(time.Now(), orderID, stockProductionID, lines, routings)
	c.JSON(http.StatusOK, gin.H{
		"planDate": time.Now().Format(planDateLayout),
		"items":    composition.Flatten(),
	})
}

func sourceLineFor(productID uint, product *models.Product, quantity int) planner.SourceLine {
	line := planner.SourceLine{ProductID: productID, Quantity: quantity}
	if product != nil {
		line.ProductName = product.Name
		line.ProductSpec = product.Specification
		line.ProductUnit = product.Unit
	}
	return line
}

// loadRoutings resolves the standard routing of every product in the draft,
// including each entry's process definition and equipment binding.
func loadRoutings(lines []planner.SourceLine) (map[uint][]planner.RoutingEntry, error) {
	productIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}

	var routings []models.ProductProcess
	if err := config.DB.Preload("Process").
		Where("product_id IN ?", productIDs).
		Order("product_id, sequence").
		Find(&routings).Error; err != nil {
		return nil, err
	}

	out := make(map[uint][]planner.RoutingEntry)
	for _, pp := range routings {
		entry := planner.RoutingEntry{
			Sequence:      pp.Sequence,
			EstimatedTime: pp.EstimatedTime,
			PartnerName:   pp.PartnerName,
			CourseType:    pp.CourseType,
		}
		if pp.Process != nil {
			entry.ProcessName = pp.Process.Name
			entry.HourlyRate = pp.Process.HourlyRate
			entry.CostFormula = pp.Process.CostFormula
			if entry.CourseType == "" {
				entry.CourseType = pp.Process.CourseType
			}
		}
		if pp.EquipmentName != "" {
			var eq models.Equipment
			if err := config.DB.Where("name = ?", pp.EquipmentName).First(&eq).Error; err == nil {
				id := eq.ID
				entry.EquipmentID = &id
			}
		}
		out[pp.ProductID] = append(out[pp.ProductID], entry)
	}
	return out, nil
}

// CreateProductionPlanHandler persists a composed draft as a PLANNED plan.
// Validation failures reject before any write; a second non-canceled plan
// for the same source is a 409 with code PLAN_EXISTS, which callers treat
// as "someone else already planned this, refresh".
func CreateProductionPlanHandler(c *gin.Context) {
	var payload planPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	planDate, err := time.Parse(planDateLayout, payload.PlanDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planDate is required (YYYY-MM-DD)"})
		return
	}

	composition := planner.FromItems(planDate, payload.OrderID, payload.StockProductionID, payload.toItems())
	if err := composition.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	// One non-canceled plan per source, checked inside the transaction so a
	// concurrent create surfaces as a conflict, not a duplicate.
	var existing int64
	dup := tx.Model(&models.ProductionPlan{}).Where("status <> ?", models.ProductionCanceled)
	if payload.OrderID != nil {
		dup = dup.Where("order_id = ?", *payload.OrderID)
	} else if payload.StockProductionID != nil {
		dup = dup.Where("stock_production_id = ?", *payload.StockProductionID)
	} else {
		dup = dup.Where("1 = 0")
	}
	if err := dup.Count(&existing).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for existing plan"})
		return
	}
	if existing > 0 {
		tx.Rollback()
		c.JSON(http.StatusConflict, gin.H{"code": "PLAN_EXISTS", "error": "A plan already exists for this source"})
		return
	}

	plan := models.ProductionPlan{
		PlanDate:          planDate,
		OrderID:           payload.OrderID,
		StockProductionID: payload.StockProductionID,
		Status:            models.ProductionPlanned,
	}
	if err := tx.Create(&plan).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create production plan"})
		return
	}

	items := composition.Flatten()
	for i := range items {
		items[i].ID = 0
		items[i].PlanID = plan.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan items"})
		return
	}

	if err := applyCreateSideEffects(tx, &plan, items); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	invalidateBoardCache()
	FeedHub.Publish(PlanEvent{Type: "created", PlanID: plan.ID, Status: plan.Status, Operator: c.GetString("operator")})

	var created models.ProductionPlan
	if err := planScope(config.DB).First(&created, plan.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan created but could not be reloaded"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProductionPlanHandler replaces a plan's composition. Items keep
// their identity (and status) when the payload carries their id; items
// missing from the payload are removed; new rows are created. Completed
// plans are immutable until reverted.
func UpdateProductionPlanHandler(c *gin.Context) {
	var plan models.ProductionPlan
	if err := config.DB.Preload("Items").First(&plan, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch production plan"})
		return
	}
	if plan.Status == models.ProductionCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completed plans cannot be edited; revert first"})
		return
	}

	var payload planPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	planDate, err := time.Parse(planDateLayout, payload.PlanDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planDate is required (YYYY-MM-DD)"})
		return
	}

	composition := planner.FromItems(planDate, plan.OrderID, plan.StockProductionID, payload.toItems())
	if err := composition.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	incoming := composition.Flatten()

	current := make(map[uint]models.ProductionPlanItem, len(plan.Items))
	for _, item := range plan.Items {
		current[item.ID] = item
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Model(&plan).Update("plan_date", planDate).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	// Order-sourced plans reserved in-production stock at create; quantity
	// edits move that reservation along so complete, revert and delete keep
	// applying exact inverses.
	if plan.OrderID != nil {
		for productID, delta := range reservationDeltas(groupQuantities(plan.Items), groupQuantities(incoming)) {
			if err := adjustStock(tx, productID, 0, delta); err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust in-production stock"})
				return
			}
		}
	}

	keep := make(map[uint]bool)
	for i := range incoming {
		item := &incoming[i]
		item.PlanID = plan.ID
		if existing, ok := current[item.ID]; item.ID != 0 && ok {
			if item.Status == "" {
				item.Status = existing.Status
			}
			keep[item.ID] = true
			if err := tx.Model(&models.ProductionPlanItem{ID: item.ID}).Select(
				"product_id", "process_name", "sequence", "course_type", "quantity",
				"partner_name", "worker_id", "equipment_id", "estimated_time", "cost",
				"start_date", "end_date", "status", "note",
			).Updates(item).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan item"})
				return
			}
		} else {
			item.ID = 0
			if err := tx.Create(item).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan item"})
				return
			}
		}
	}

	for id := range current {
		if !keep[id] {
			if err := tx.Delete(&models.ProductionPlanItem{}, id).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove plan item"})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	invalidateBoardCache()
	FeedHub.Publish(PlanEvent{Type: "updated", PlanID: plan.ID, Status: plan.Status, Operator: c.GetString("operator")})

	var updated models.ProductionPlan
	if err := planScope(config.DB).First(&updated, plan.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan updated but could not be reloaded"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ReorderPlanItemsHandler moves one step within its product group and
// renumbers that group 1..N. Cross-group moves and out-of-range positions
// are no-ops returning the unchanged plan.
func ReorderPlanItemsHandler(c *gin.Context) {
	var body struct {
		ProductID uint `json:"productId" binding:"required"`
		From      int  `json:"from"`
		To        int  `json:"to"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completed plans cannot be edited; revert first"})
		return
	}

	composition := planner.FromItems(plan.PlanDate, plan.OrderID, plan.StockProductionID, plan.Items)
	if !composition.Move(body.ProductID, body.From, body.To) {
		// A drag that ended nowhere valid; nothing changed.
		c.JSON(http.StatusOK, plan)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	for _, item := range composition.Flatten() {
		if item.ID == 0 {
			continue
		}
		if err := tx.Model(&models.ProductionPlanItem{ID: item.ID}).Update("sequence", item.Sequence).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to renumber plan items"})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	var updated models.ProductionPlan
	if err := planScope(config.DB).First(&updated, plan.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan reordered but could not be reloaded"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdatePlanItemStatusHandler patches one item's status. Only INTERNAL
// steps are settable here: outsourced and purchased steps derive their
// status from the linked sub-order. The patch is local and never cascades
// to the plan's own status.
func UpdatePlanItemStatusHandler(c *gin.Context) {
	var body struct {
		Status models.ProductionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch body.Status {
	case models.ProductionPlanned, models.ProductionInProgress, models.ProductionCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item status"})
		return
	}

	var item models.ProductionPlanItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan item"})
		return
	}
	if item.CourseType != models.CourseInternal {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status of outsourced/purchased steps follows their sub-order"})
		return
	}

	if err := config.DB.Model(&item).Update("status", body.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item status"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// PendingPurchaseItemsHandler lists PURCHASE steps of non-canceled plans
// that no purchase order line has picked up yet.
func PendingPurchaseItemsHandler(c *gin.Context) {
	pendingItems(c, models.CoursePurchase,
		"LEFT JOIN purchase_order_items poi ON poi.production_plan_item_id = production_plan_items.id",
		"poi.id IS NULL")
}

// PendingOutsourcingItemsHandler is the OUTSOURCING twin.
func PendingOutsourcingItemsHandler(c *gin.Context) {
	pendingItems(c, models.CourseOutsourcing,
		"LEFT JOIN outsourcing_order_items ooi ON ooi.production_plan_item_id = production_plan_items.id",
		"ooi.id IS NULL")
}

func pendingItems(c *gin.Context, courseType models.CourseType, joinClause, nullClause string) {
	var items []models.ProductionPlanItem
	err := config.DB.
		Joins("JOIN production_plans ON production_plans.id = production_plan_items.plan_id").
		Joins(joinClause).
		Where("production_plan_items.course_type = ?", courseType).
		Where("production_plans.status <> ?", models.ProductionCanceled).
		Where(nullClause).
		Preload("Product").
		Preload("Plan.Order.Partner").
		Preload("Plan.StockProduction").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending items"})
		return
	}
	if items == nil {
		items = make([]models.ProductionPlanItem, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// boardPlan is one open plan row on the board.
type boardPlan struct {
	ID       uint                    `json:"id"`
	PlanDate string                  `json:"planDate"`
	Status   models.ProductionStatus `json:"status"`
	Source   string                  `json:"source"`
}

// boardSummary is the production board snapshot cached in Redis.
type boardSummary struct {
	Planned     int64       `json:"planned"`
	InProgress  int64       `json:"inProgress"`
	Completed   int64       `json:"completed"`
	OpenPlans   []boardPlan `json:"openPlans"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

const boardCacheKey = "production:board"

// ProductionBoardHandler serves status counts plus the open plans for the
// live board, cached for 30 seconds. A malformed cache entry counts as a
// miss, never as a failure.
func ProductionBoardHandler(c *gin.Context) {
	if config.RDB != nil {
		cached, err := config.RDB.Get(config.Ctx, boardCacheKey).Result()
		if err == nil {
			var summary boardSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				c.JSON(http.StatusOK, summary)
				return
			}
		}
	}

	var summary boardSummary
	counts := map[models.ProductionStatus]*int64{
		models.ProductionPlanned:    &summary.Planned,
		models.ProductionInProgress: &summary.InProgress,
		models.ProductionCompleted:  &summary.Completed,
	}
	for status, dest := range counts {
		if err := config.DB.Model(&models.ProductionPlan{}).Where("status = ?", status).Count(dest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build production board"})
			return
		}
	}

	var open []models.ProductionPlan
	if err := config.DB.
		Preload("Order").
		Preload("StockProduction").
		Where("status IN ?", []models.ProductionStatus{models.ProductionPlanned, models.ProductionInProgress}).
		Order("plan_date, id").
		Find(&open).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build production board"})
		return
	}
	summary.OpenPlans = make([]boardPlan, 0, len(open))
	for i := range open {
		summary.OpenPlans = append(summary.OpenPlans, boardPlan{
			ID:       open[i].ID,
			PlanDate: open[i].PlanDate.Format(planDateLayout),
			Status:   open[i].Status,
			Source:   sourceLabel(&open[i]),
		})
	}
	summary.GeneratedAt = time.Now()

	if config.RDB != nil {
		if data, err := json.Marshal(summary); err == nil {
			config.RDB.Set(config.Ctx, boardCacheKey, data, 30*time.Second)
		}
	}
	c.JSON(http.StatusOK, summary)
}

func invalidateBoardCache() {
	if config.RDB != nil {
		config.RDB.Del(config.Ctx, boardCacheKey)
	}
}

func uintQuery(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}
