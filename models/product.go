package models

// CourseType is the execution mode of a process step.
type CourseType string

const (
	CourseInternal    CourseType = "INTERNAL"    // in-house labor/equipment
	CourseOutsourcing CourseType = "OUTSOURCING" // external processor
	CoursePurchase    CourseType = "PURCHASE"    // bought material
)

// Product is a manufactured or purchased item.
type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PartnerID     *uint  `gorm:"column:partner_id;index" json:"partnerId,omitempty"`
	Name          string `gorm:"index;not null"          json:"name"`
	Specification string `gorm:"column:specification"    json:"specification"`
	Material      string `gorm:"column:material"         json:"material"`
	Unit          string `gorm:"column:unit;default:'EA'" json:"unit"`
	Note          string `gorm:"column:note"             json:"note"`

	Partner           *Partner         `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	StandardProcesses []ProductProcess `gorm:"foreignKey:ProductID" json:"standardProcesses,omitempty"`
}

func (Product) TableName() string { return "products" }

// Process is a named manufacturing operation. HourlyRate and CostFormula
// drive the default cost of internal steps; the formula (when set) is a
// govaluate expression over quantity, estimated_time and rate.
type Process struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string     `gorm:"uniqueIndex;not null"     json:"name"`
	CourseType  CourseType `gorm:"column:course_type;default:'INTERNAL'" json:"courseType"`
	HourlyRate  float64    `gorm:"column:hourly_rate"       json:"hourlyRate"`
	CostFormula string     `gorm:"column:cost_formula"      json:"costFormula"`
	Description string     `gorm:"column:description"       json:"description"`
}

func (Process) TableName() string { return "processes" }

// ProductProcess is one entry of a product's standard routing: the ordered
// list of process steps used to seed a new production plan.
type ProductProcess struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint `gorm:"column:product_id;index" json:"productId"`
	ProcessID uint `gorm:"column:process_id"       json:"processId"`

	Sequence      int     `gorm:"column:sequence;not null" json:"sequence"`
	EstimatedTime float64 `gorm:"column:estimated_time"    json:"estimatedTime"`

	// Defaults carried into new plan items. CourseType overrides the process
	// default when non-empty.
	PartnerName   string     `gorm:"column:partner_name"   json:"partnerName"`
	EquipmentName string     `gorm:"column:equipment_name" json:"equipmentName"`
	CourseType    CourseType `gorm:"column:course_type"    json:"courseType"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
	Process *Process `gorm:"foreignKey:ProcessID" json:"process,omitempty"`
}

func (ProductProcess) TableName() string { return "product_processes" }
