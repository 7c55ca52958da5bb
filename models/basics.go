package models

// Partner is a business counterpart: customer, supplier or subcontractor.
// A partner may act as several types at once, so the types are stored as a
// JSON list rather than a single enum column.
type Partner struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name               string `gorm:"index;not null"                      json:"name"`
	PartnerTypes       string `gorm:"column:partner_types;default:'[\"CUSTOMER\"]'" json:"partnerTypes"`
	RegistrationNumber string `gorm:"column:registration_number"          json:"registrationNumber"`
	Representative     string `gorm:"column:representative"               json:"representative"`
	Address            string `gorm:"column:address"                      json:"address"`
	Phone              string `gorm:"column:phone"                        json:"phone"`
	Email              string `gorm:"column:email"                        json:"email"`
}

func (Partner) TableName() string { return "partners" }

// Staff is a shop-floor worker. Internal process steps may reference one.
type Staff struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null"   json:"name"`
	Role     string `json:"role"`
	MainDuty string `gorm:"column:main_duty" json:"mainDuty"`
	Phone    string `json:"phone"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"isActive"`
}

func (Staff) TableName() string { return "staff" }

// Equipment is a machine or work center for internal process steps.
type Equipment struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null"   json:"name"`
	Note string `json:"note"`
}

func (Equipment) TableName() string { return "equipment" }
