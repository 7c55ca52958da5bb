package planner

import (
	"sort"
	"time"

	"designmecha-mes/models"
)

// DefaultProcessName labels the single fallback step emitted for products
// without a standard routing.
const DefaultProcessName = "기본 공정"

// SourceLine is one {product, quantity} line of a plan's source: a sales
// order item, or the single line of a stock production request.
type SourceLine struct {
	ProductID   uint
	ProductName string
	ProductSpec string
	ProductUnit string
	Quantity    int
}

// RoutingEntry is one entry of a product's standard routing, already
// resolved against its process definition.
type RoutingEntry struct {
	Sequence      int
	ProcessName   string
	CourseType    models.CourseType
	EstimatedTime float64
	PartnerName   string
	EquipmentID   *uint
	HourlyRate    float64
	CostFormula   string
}

// BuildComposition seeds a draft plan from its source lines. Products with
// a standard routing get one step per routing entry, ordered by the
// routing's declared sequence and renumbered 1..N per product; products
// without one get exactly one INTERNAL fallback step. Pure and idempotent:
// identical inputs always produce the same composition.
func BuildComposition(planDate time.Time, orderID, stockProductionID *uint, lines []SourceLine, routings map[uint][]RoutingEntry) *Composition {
	c := NewComposition(planDate)
	c.OrderID = orderID
	c.StockProductionID = stockProductionID

	for _, line := range lines {
		g := c.ensureGroup(line.ProductID, line.ProductName, line.ProductSpec, line.ProductUnit)

		entries := append([]RoutingEntry(nil), routings[line.ProductID]...)
		if len(entries) == 0 {
			g.Steps = append(g.Steps, fallbackStep(line.Quantity))
			continue
		}

		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Sequence < entries[j].Sequence
		})

		for i, entry := range entries {
			g.Steps = append(g.Steps, stepFromRouting(entry, i+1, line.Quantity))
		}
	}
	return c
}

func fallbackStep(quantity int) *Step {
	return &Step{
		ProcessName: DefaultProcessName,
		Sequence:    1,
		Quantity:    quantity,
		Execution:   Internal{},
	}
}

func stepFromRouting(entry RoutingEntry, sequence, quantity int) *Step {
	step := &Step{
		ProcessName:   entry.ProcessName,
		Sequence:      sequence,
		Quantity:      quantity,
		EstimatedTime: entry.EstimatedTime,
		Execution:     routingExecution(entry),
	}
	if _, ok := step.Execution.(Internal); ok {
		step.Cost = defaultInternalCost(entry, quantity)
	}
	return step
}

func routingExecution(entry RoutingEntry) Execution {
	switch entry.CourseType {
	case models.CourseOutsourcing:
		return Outsourced{PartnerName: entry.PartnerName}
	case models.CoursePurchase:
		return Purchased{PartnerName: entry.PartnerName}
	default:
		return Internal{EquipmentID: entry.EquipmentID}
	}
}
