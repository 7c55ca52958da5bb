package models

import "time"

// ProductionStatus is shared by plan headers and plan items.
type ProductionStatus string

const (
	ProductionPlanned    ProductionStatus = "PLANNED"
	ProductionInProgress ProductionStatus = "IN_PROGRESS"
	ProductionCompleted  ProductionStatus = "COMPLETED"
	ProductionCanceled   ProductionStatus = "CANCELED"
)

// Open reports whether the status counts as "in progress" for list views.
// PLANNED and IN_PROGRESS are both open.
func (s ProductionStatus) Open() bool {
	return s == ProductionPlanned || s == ProductionInProgress
}

// ProductionPlan is one production plan. Exactly one of OrderID and
// StockProductionID is set: a plan is driven either by a sales order or by
// an internal replenishment request, never both. At most one non-canceled
// plan may exist per source; the create handler enforces that inside its
// transaction and reports a PLAN_EXISTS conflict.
type ProductionPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PlanDate          time.Time        `gorm:"column:plan_date;not null"        json:"planDate"`
	OrderID           *uint            `gorm:"column:order_id;index"            json:"orderId,omitempty"`
	StockProductionID *uint            `gorm:"column:stock_production_id;index" json:"stockProductionId,omitempty"`
	Status            ProductionStatus `gorm:"column:status;default:'PLANNED'"  json:"status"`

	Order           *SalesOrder          `gorm:"foreignKey:OrderID"           json:"order,omitempty"`
	StockProduction *StockProduction     `gorm:"foreignKey:StockProductionID" json:"stockProduction,omitempty"`
	Items           []ProductionPlanItem `gorm:"foreignKey:PlanID"            json:"items,omitempty"`
}

func (ProductionPlan) TableName() string { return "production_plans" }

// ProductionPlanItem is one process step of one product within a plan.
// Sequence is 1-based within the group of items sharing ProductID, not
// globally unique. Quantity is shared by all items of the same product in
// one plan; the edit layer keeps the group in sync.
type ProductionPlanItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PlanID    uint `gorm:"column:plan_id;index;not null" json:"planId"`
	ProductID uint `gorm:"column:product_id;not null"    json:"productId"`

	ProcessName string     `gorm:"column:process_name;not null" json:"processName"`
	Sequence    int        `gorm:"column:sequence;not null"     json:"sequence"`
	CourseType  CourseType `gorm:"column:course_type;default:'INTERNAL'" json:"courseType"`
	Quantity    int        `gorm:"column:quantity;default:1"    json:"quantity"`

	// Execution binding: INTERNAL items use WorkerID/EquipmentID, the other
	// course types carry a free-text partner name.
	PartnerName string `gorm:"column:partner_name" json:"partnerName"`
	WorkerID    *uint  `gorm:"column:worker_id"    json:"workerId,omitempty"`
	EquipmentID *uint  `gorm:"column:equipment_id" json:"equipmentId,omitempty"`

	EstimatedTime float64    `gorm:"column:estimated_time" json:"estimatedTime"`
	Cost          float64    `gorm:"column:cost"           json:"cost"`
	StartDate     *time.Time `gorm:"column:start_date"     json:"startDate,omitempty"`
	EndDate       *time.Time `gorm:"column:end_date"       json:"endDate,omitempty"`

	Status ProductionStatus `gorm:"column:status;default:'PLANNED'" json:"status"`
	Note   string           `gorm:"column:note"                     json:"note"`

	Plan      *ProductionPlan `gorm:"foreignKey:PlanID"      json:"plan,omitempty"`
	Product   *Product        `gorm:"foreignKey:ProductID"   json:"product,omitempty"`
	Worker    *Staff          `gorm:"foreignKey:WorkerID"    json:"worker,omitempty"`
	Equipment *Equipment      `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`

	// Populated by the purchasing subsystem; read-only here, consumed by
	// the dependency gate and for derived cost.
	PurchaseOrderItems    []PurchaseOrderItem    `gorm:"foreignKey:ProductionPlanItemID" json:"purchaseOrderItems,omitempty"`
	OutsourcingOrderItems []OutsourcingOrderItem `gorm:"foreignKey:ProductionPlanItemID" json:"outsourcingOrderItems,omitempty"`
}

func (ProductionPlanItem) TableName() string { return "production_plan_items" }

// DerivedCost returns the authoritative cost of the item. For OUTSOURCING
// and PURCHASE items that is the sum of linked sub-order lines; the stored
// Cost field is only authoritative for INTERNAL items.
func (i *ProductionPlanItem) DerivedCost() float64 {
	switch i.CourseType {
	case CoursePurchase:
		var total float64
		for _, line := range i.PurchaseOrderItems {
			total += float64(line.Quantity) * line.UnitPrice
		}
		if total > 0 {
			return total
		}
	case CourseOutsourcing:
		var total float64
		for _, line := range i.OutsourcingOrderItems {
			total += float64(line.Quantity) * line.UnitPrice
		}
		if total > 0 {
			return total
		}
	}
	return i.Cost
}
