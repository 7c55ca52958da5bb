package models

import "time"

// StockProductionStatus tracks an internal replenishment request.
type StockProductionStatus string

const (
	StockProductionPending    StockProductionStatus = "PENDING"
	StockProductionInProgress StockProductionStatus = "IN_PROGRESS"
	StockProductionCompleted  StockProductionStatus = "COMPLETED"
	StockProductionCancelled  StockProductionStatus = "CANCELLED"
)

// Stock is the on-hand state of one product. CurrentQuantity is the usable
// quantity; InProductionQuantity is what open plans are expected to yield.
type Stock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`

	ProductID            uint   `gorm:"column:product_id;uniqueIndex;not null" json:"productId"`
	CurrentQuantity      int    `gorm:"column:current_quantity"       json:"currentQuantity"`
	InProductionQuantity int    `gorm:"column:in_production_quantity" json:"inProductionQuantity"`
	Location             string `gorm:"column:location"               json:"location"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Stock) TableName() string { return "stocks" }

// StockProduction is a replenishment request: production without a sales
// order behind it. It plays the same source role for a plan as an order.
type StockProduction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ProductionNo string `gorm:"column:production_no;uniqueIndex" json:"productionNo"`
	ProductID    uint   `gorm:"column:product_id;not null"       json:"productId"`
	Quantity     int    `gorm:"column:quantity;not null"         json:"quantity"`

	RequestDate time.Time             `gorm:"column:request_date" json:"requestDate"`
	TargetDate  *time.Time            `gorm:"column:target_date"  json:"targetDate,omitempty"`
	Status      StockProductionStatus `gorm:"column:status;default:'PENDING'" json:"status"`
	Note        string                `gorm:"column:note"         json:"note"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (StockProduction) TableName() string { return "stock_productions" }
