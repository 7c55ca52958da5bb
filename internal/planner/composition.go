// internal/planner/composition.go
//
// The in-memory editing model for a production plan. While an operator is
// composing a plan the canonical structure is an ordered set of product
// groups, each holding that product's process steps; the flat item list the
// store wants only exists at submit time.
package planner

import (
	"strconv"
	"strings"
	"time"

	"designmecha-mes/models"
)

// Execution is the course-type variant of a step. Each variant carries only
// the fields that mode actually uses.
type Execution interface {
	CourseType() models.CourseType
}

// Internal is in-house work, optionally bound to a worker and a machine.
type Internal struct {
	WorkerID    *uint
	EquipmentID *uint
}

func (Internal) CourseType() models.CourseType { return models.CourseInternal }

// Outsourced is work sent to an external processor. PartnerName is free
// text, not a foreign key.
type Outsourced struct {
	PartnerName string
}

func (Outsourced) CourseType() models.CourseType { return models.CourseOutsourcing }

// Purchased is bought material supplied by a vendor.
type Purchased struct {
	PartnerName string
}

func (Purchased) CourseType() models.CourseType { return models.CoursePurchase }

// Step is one process step under editing. ID is the persisted item id, zero
// for steps added in this session.
type Step struct {
	ID            uint
	ProcessName   string
	Sequence      int
	Quantity      int
	EstimatedTime float64
	Cost          float64
	StartDate     *time.Time
	EndDate       *time.Time
	Status        models.ProductionStatus
	Note          string
	Execution     Execution
}

// Group is the ordered step list of one product within the plan.
type Group struct {
	ProductID   uint
	ProductName string
	ProductSpec string
	ProductUnit string
	Steps       []*Step
}

// Quantity is the group's shared quantity, read from the first step.
func (g *Group) Quantity() int {
	if len(g.Steps) == 0 {
		return 0
	}
	return g.Steps[0].Quantity
}

// MaxSequence returns the highest sequence value currently in the group.
// After deletions this can exceed len(Steps); gaps are tolerated until the
// next reorder.
func (g *Group) MaxSequence() int {
	max := 0
	for _, s := range g.Steps {
		if s.Sequence > max {
			max = s.Sequence
		}
	}
	return max
}

func (g *Group) setQuantity(qty int) {
	for _, s := range g.Steps {
		s.Quantity = qty
	}
}

// Composition is a plan under editing: header fields plus product groups in
// first-encounter order.
type Composition struct {
	PlanDate          time.Time
	OrderID           *uint
	StockProductionID *uint

	groups map[uint]*Group
	order  []uint
}

func NewComposition(planDate time.Time) *Composition {
	return &Composition{
		PlanDate: planDate,
		groups:   make(map[uint]*Group),
	}
}

// FromItems rebuilds a composition from persisted plan items, partitioning
// by product in first-encounter order and sorting each group by its stored
// sequence values.
func FromItems(planDate time.Time, orderID, stockProductionID *uint, items []models.ProductionPlanItem) *Composition {
	c := NewComposition(planDate)
	c.OrderID = orderID
	c.StockProductionID = stockProductionID

	for i := range items {
		it := &items[i]
		name, spec, unit := "", "", ""
		if it.Product != nil {
			name, spec, unit = it.Product.Name, it.Product.Specification, it.Product.Unit
		}
		g := c.ensureGroup(it.ProductID, name, spec, unit)

		step := &Step{
			ID:            it.ID,
			ProcessName:   it.ProcessName,
			Sequence:      it.Sequence,
			Quantity:      it.Quantity,
			EstimatedTime: it.EstimatedTime,
			Cost:          it.Cost,
			StartDate:     it.StartDate,
			EndDate:       it.EndDate,
			Status:        it.Status,
			Note:          it.Note,
			Execution:     executionFor(it.CourseType, it.PartnerName, it.WorkerID, it.EquipmentID),
		}

		// Insert keeping the group ordered by stored sequence.
		pos := len(g.Steps)
		for j, s := range g.Steps {
			if step.Sequence < s.Sequence {
				pos = j
				break
			}
		}
		g.Steps = append(g.Steps, nil)
		copy(g.Steps[pos+1:], g.Steps[pos:])
		g.Steps[pos] = step
	}
	return c
}

func executionFor(ct models.CourseType, partner string, workerID, equipmentID *uint) Execution {
	switch ct {
	case models.CourseOutsourcing:
		return Outsourced{PartnerName: partner}
	case models.CoursePurchase:
		return Purchased{PartnerName: partner}
	default:
		return Internal{WorkerID: workerID, EquipmentID: equipmentID}
	}
}

func (c *Composition) ensureGroup(productID uint, name, spec, unit string) *Group {
	if g, ok := c.groups[productID]; ok {
		return g
	}
	g := &Group{ProductID: productID, ProductName: name, ProductSpec: spec, ProductUnit: unit}
	c.groups[productID] = g
	c.order = append(c.order, productID)
	return g
}

// Group returns the product's group, or nil when the product is not part of
// the plan.
func (c *Composition) Group(productID uint) *Group {
	return c.groups[productID]
}

// Groups returns all groups in first-encounter order.
func (c *Composition) Groups() []*Group {
	out := make([]*Group, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.groups[id])
	}
	return out
}

// AddProcess appends a blank step to the product's group: sequence is the
// group's max + 1, quantity is the group's shared quantity, and the step
// defaults to INTERNAL with zeroed cost and time.
func (c *Composition) AddProcess(productID uint, name, spec, unit string) *Step {
	g := c.ensureGroup(productID, name, spec, unit)
	step := &Step{
		Sequence:  g.MaxSequence() + 1,
		Quantity:  g.Quantity(),
		Status:    models.ProductionPlanned,
		Execution: Internal{},
	}
	g.Steps = append(g.Steps, step)
	return step
}

// RemoveItem deletes the step at pos in the product's group. Remaining
// siblings keep their sequence values; only a reorder renumbers.
func (c *Composition) RemoveItem(productID uint, pos int) bool {
	g := c.groups[productID]
	if g == nil || pos < 0 || pos >= len(g.Steps) {
		return false
	}
	g.Steps = append(g.Steps[:pos], g.Steps[pos+1:]...)
	return true
}

// EditField mutates one field of the step at pos. Numeric fields coerce
// invalid input to zero. Quantity edits write through the whole group so
// the shared-quantity invariant cannot diverge.
func (c *Composition) EditField(productID uint, pos int, field, value string) bool {
	g := c.groups[productID]
	if g == nil || pos < 0 || pos >= len(g.Steps) {
		return false
	}
	s := g.Steps[pos]

	switch field {
	case "process_name":
		s.ProcessName = value
	case "note":
		s.Note = value
	case "estimated_time":
		s.EstimatedTime = coerceFloat(value)
	case "cost":
		s.Cost = coerceFloat(value)
	case "quantity":
		g.setQuantity(coerceInt(value))
	case "course_type":
		s.Execution = switchCourse(s.Execution, models.CourseType(value))
	case "partner_name":
		switch ex := s.Execution.(type) {
		case Outsourced:
			ex.PartnerName = value
			s.Execution = ex
		case Purchased:
			ex.PartnerName = value
			s.Execution = ex
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// switchCourse changes the execution variant, carrying the partner name
// across the two external modes.
func switchCourse(ex Execution, to models.CourseType) Execution {
	partner := ""
	switch prev := ex.(type) {
	case Outsourced:
		partner = prev.PartnerName
	case Purchased:
		partner = prev.PartnerName
	}
	switch to {
	case models.CourseOutsourcing:
		return Outsourced{PartnerName: partner}
	case models.CoursePurchase:
		return Purchased{PartnerName: partner}
	default:
		return Internal{}
	}
}

// ValidationError rejects a composition before any remote call.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrNoPlanDate       = ValidationError("plan date is required")
	ErrNoItems          = ValidationError("plan has no items")
	ErrItemNoProduct    = ValidationError("every item needs a product")
	ErrAmbiguousSource  = ValidationError("plan must reference an order or a stock production, not both")
	ErrQuantityDiverged = ValidationError("all steps of a product must share one quantity")
)

// Validate checks the composition for submit: a plan date, at least one
// step, every step under a real product, an unambiguous source, and one
// quantity per product group.
func (c *Composition) Validate() error {
	if c.PlanDate.IsZero() {
		return ErrNoPlanDate
	}
	if c.OrderID != nil && c.StockProductionID != nil {
		return ErrAmbiguousSource
	}
	total := 0
	for _, id := range c.order {
		g := c.groups[id]
		if g.ProductID == 0 {
			return ErrItemNoProduct
		}
		for _, s := range g.Steps {
			if s.Quantity != g.Quantity() {
				return ErrQuantityDiverged
			}
		}
		total += len(g.Steps)
	}
	if total == 0 {
		return ErrNoItems
	}
	return nil
}

// Flatten produces the persistence payload: groups in first-encounter
// order, steps in group order, sequence values as currently held (gaps from
// deletions survive).
func (c *Composition) Flatten() []models.ProductionPlanItem {
	var out []models.ProductionPlanItem
	for _, id := range c.order {
		g := c.groups[id]
		for _, s := range g.Steps {
			item := models.ProductionPlanItem{
				ID:            s.ID,
				ProductID:     g.ProductID,
				ProcessName:   s.ProcessName,
				Sequence:      s.Sequence,
				CourseType:    s.Execution.CourseType(),
				Quantity:      s.Quantity,
				EstimatedTime: s.EstimatedTime,
				Cost:          s.Cost,
				StartDate:     s.StartDate,
				EndDate:       s.EndDate,
				Status:        s.Status,
				Note:          s.Note,
			}
			if item.Status == "" {
				item.Status = models.ProductionPlanned
			}
			switch ex := s.Execution.(type) {
			case Internal:
				item.WorkerID = ex.WorkerID
				item.EquipmentID = ex.EquipmentID
			case Outsourced:
				item.PartnerName = ex.PartnerName
			case Purchased:
				item.PartnerName = ex.PartnerName
			}
			out = append(out, item)
		}
	}
	return out
}

func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func coerceFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
