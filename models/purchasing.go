package models

import "time"

// PurchaseStatus is the state machine of a purchase order. COMPLETED and
// PARTIAL both count as fulfilled for dependency gating.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "PENDING"
	PurchaseOrdered   PurchaseStatus = "ORDERED"
	PurchasePartial   PurchaseStatus = "PARTIAL"
	PurchaseCompleted PurchaseStatus = "COMPLETED"
	PurchaseCanceled  PurchaseStatus = "CANCELED"
)

// Fulfilled reports whether goods have arrived (fully or partially).
func (s PurchaseStatus) Fulfilled() bool {
	return s == PurchaseCompleted || s == PurchasePartial
}

// OutsourcingStatus is the state machine of an outsourcing order. Only
// COMPLETED counts as fulfilled.
type OutsourcingStatus string

const (
	OutsourcingPending   OutsourcingStatus = "PENDING"
	OutsourcingOrdered   OutsourcingStatus = "ORDERED"
	OutsourcingCompleted OutsourcingStatus = "COMPLETED"
	OutsourcingCanceled  OutsourcingStatus = "CANCELED"
)

// PurchaseOrder is a materials order placed with a supplier.
type PurchaseOrder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	OrderNo      string         `gorm:"column:order_no;uniqueIndex" json:"orderNo"`
	PartnerID    *uint          `gorm:"column:partner_id"           json:"partnerId,omitempty"`
	OrderDate    time.Time      `gorm:"column:order_date;not null"  json:"orderDate"`
	DeliveryDate *time.Time     `gorm:"column:delivery_date"        json:"deliveryDate,omitempty"`
	TotalAmount  float64        `gorm:"column:total_amount"         json:"totalAmount"`
	Note         string         `gorm:"column:note"                 json:"note"`
	Status       PurchaseStatus `gorm:"column:status;default:'PENDING'" json:"status"`

	// AutoCompleted is set when a plan completion dragged this order to
	// COMPLETED. Reverting that plan rolls back only marked orders; a
	// delivery the purchasing desk confirmed itself stays confirmed.
	AutoCompleted bool `gorm:"column:auto_completed;default:false" json:"-"`

	Partner *Partner            `gorm:"foreignKey:PartnerID"       json:"partner,omitempty"`
	Items   []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

// PurchaseOrderItem is one line of a purchase order. When it was generated
// from a plan's pending PURCHASE step it links back to that plan item.
type PurchaseOrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PurchaseOrderID      uint  `gorm:"column:purchase_order_id;index;not null" json:"purchaseOrderId"`
	ProductionPlanItemID *uint `gorm:"column:production_plan_item_id;index"    json:"productionPlanItemId,omitempty"`
	ProductID            uint  `gorm:"column:product_id;not null"              json:"productId"`

	Quantity         int     `gorm:"column:quantity"          json:"quantity"`
	UnitPrice        float64 `gorm:"column:unit_price"        json:"unitPrice"`
	ReceivedQuantity int     `gorm:"column:received_quantity" json:"receivedQuantity"`
	Note             string  `gorm:"column:note"              json:"note"`

	PurchaseOrder *PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"purchaseOrder,omitempty"`
	Product       *Product       `gorm:"foreignKey:ProductID"       json:"product,omitempty"`
}

func (PurchaseOrderItem) TableName() string { return "purchase_order_items" }

// OutsourcingOrder is a processing order placed with a subcontractor.
type OutsourcingOrder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	OrderNo      string            `gorm:"column:order_no;uniqueIndex" json:"orderNo"`
	PartnerID    *uint             `gorm:"column:partner_id"           json:"partnerId,omitempty"`
	OrderDate    time.Time         `gorm:"column:order_date;not null"  json:"orderDate"`
	DeliveryDate *time.Time        `gorm:"column:delivery_date"        json:"deliveryDate,omitempty"`
	TotalAmount  float64           `gorm:"column:total_amount"         json:"totalAmount"`
	Note         string            `gorm:"column:note"                 json:"note"`
	Status       OutsourcingStatus `gorm:"column:status;default:'PENDING'" json:"status"`

	// Same marker as PurchaseOrder.AutoCompleted.
	AutoCompleted bool `gorm:"column:auto_completed;default:false" json:"-"`

	Partner *Partner               `gorm:"foreignKey:PartnerID"          json:"partner,omitempty"`
	Items   []OutsourcingOrderItem `gorm:"foreignKey:OutsourcingOrderID" json:"items,omitempty"`
}

func (OutsourcingOrder) TableName() string { return "outsourcing_orders" }

// OutsourcingOrderItem is one line of an outsourcing order, normally linked
// to the plan item it executes.
type OutsourcingOrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OutsourcingOrderID   uint  `gorm:"column:outsourcing_order_id;index;not null" json:"outsourcingOrderId"`
	ProductionPlanItemID *uint `gorm:"column:production_plan_item_id;index"       json:"productionPlanItemId,omitempty"`
	ProductID            *uint `gorm:"column:product_id"                          json:"productId,omitempty"`

	Quantity  int               `gorm:"column:quantity"   json:"quantity"`
	UnitPrice float64           `gorm:"column:unit_price" json:"unitPrice"`
	Note      string            `gorm:"column:note"       json:"note"`
	Status    OutsourcingStatus `gorm:"column:status;default:'PENDING'" json:"status"`

	// Line-level twin of the order marker; lines carry their own status.
	AutoCompleted bool `gorm:"column:auto_completed;default:false" json:"-"`

	OutsourcingOrder *OutsourcingOrder `gorm:"foreignKey:OutsourcingOrderID" json:"outsourcingOrder,omitempty"`
	Product          *Product          `gorm:"foreignKey:ProductID"          json:"product,omitempty"`
}

func (OutsourcingOrderItem) TableName() string { return "outsourcing_order_items" }
