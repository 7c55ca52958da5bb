package models

import "time"

// OrderStatus is the header-level status of a sales order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderItemStatus tracks one sales-order line through production and
// delivery. Production plan transitions move it between PENDING,
// IN_PRODUCTION and COMPLETED; delivery moves it to SHIPPED.
type OrderItemStatus string

const (
	OrderItemPending      OrderItemStatus = "PENDING"
	OrderItemInProduction OrderItemStatus = "IN_PRODUCTION"
	OrderItemCompleted    OrderItemStatus = "COMPLETED"
	OrderItemShipped      OrderItemStatus = "SHIPPED"
)

// SalesOrder is a customer order header.
type SalesOrder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	OrderNo      string      `gorm:"column:order_no;uniqueIndex" json:"orderNo"`
	PartnerID    uint        `gorm:"column:partner_id;not null"  json:"partnerId"`
	OrderDate    time.Time   `gorm:"column:order_date"           json:"orderDate"`
	DeliveryDate *time.Time  `gorm:"column:delivery_date"        json:"deliveryDate,omitempty"`
	TotalAmount  float64     `gorm:"column:total_amount"         json:"totalAmount"`
	Note         string      `gorm:"column:note"                 json:"note"`
	Status       OrderStatus `gorm:"column:status;default:'PENDING'" json:"status"`

	Partner *Partner         `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Items   []SalesOrderItem `gorm:"foreignKey:OrderID"   json:"items,omitempty"`
}

func (SalesOrder) TableName() string { return "sales_orders" }

// SalesOrderItem is one product line of a sales order.
type SalesOrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID   uint `gorm:"column:order_id;index;not null"  json:"orderId"`
	ProductID uint `gorm:"column:product_id;not null"      json:"productId"`

	UnitPrice         float64         `gorm:"column:unit_price"         json:"unitPrice"`
	Quantity          int             `gorm:"column:quantity;not null"  json:"quantity"`
	DeliveredQuantity int             `gorm:"column:delivered_quantity" json:"deliveredQuantity"`
	Status            OrderItemStatus `gorm:"column:status;default:'PENDING'" json:"status"`
	Note              string          `gorm:"column:note"               json:"note"`

	Order   *SalesOrder `gorm:"foreignKey:OrderID"   json:"-"`
	Product *Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (SalesOrderItem) TableName() string { return "sales_order_items" }
