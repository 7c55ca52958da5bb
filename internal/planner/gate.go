package planner

import (
	"fmt"

	"designmecha-mes/models"
)

// CheckDependencies scans a plan's items before completion and returns a
// human-readable flag for every step whose external paperwork is still
// outstanding. PURCHASE steps need every linked purchase order fulfilled
// (COMPLETED or PARTIAL); OUTSOURCING steps need every linked outsourcing
// order COMPLETED. INTERNAL steps are never flagged; their item status is
// the operator's own responsibility.
//
// The result is advisory: the caller presents the flags and lets the
// operator override, because shop-floor completion routinely precedes
// paperwork completion.
func CheckDependencies(items []models.ProductionPlanItem) []string {
	var flags []string

	for i := range items {
		item := &items[i]
		switch item.CourseType {
		case models.CoursePurchase:
			for _, line := range item.PurchaseOrderItems {
				if line.PurchaseOrder == nil || !line.PurchaseOrder.Status.Fulfilled() {
					flags = append(flags, fmt.Sprintf("[Purchase] %s not fulfilled", itemLabel(item)))
					break
				}
			}
		case models.CourseOutsourcing:
			for _, line := range item.OutsourcingOrderItems {
				if line.OutsourcingOrder == nil || line.OutsourcingOrder.Status != models.OutsourcingCompleted {
					flags = append(flags, fmt.Sprintf("[Outsourcing] %s not fulfilled", itemLabel(item)))
					break
				}
			}
		}
	}
	return flags
}

func itemLabel(item *models.ProductionPlanItem) string {
	if item.Product != nil && item.Product.Name != "" {
		return item.Product.Name
	}
	return item.ProcessName
}
