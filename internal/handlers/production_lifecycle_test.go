package handlers

import (
	"testing"

	"designmecha-mes/models"
)

func TestGroupQuantities(t *testing.T) {
	items := []models.ProductionPlanItem{
		{ProductID: 10, Quantity: 5},
		{ProductID: 10, Quantity: 5},
		{ProductID: 20, Quantity: 3},
	}

	got := groupQuantities(items)
	if len(got) != 2 || got[10] != 5 || got[20] != 3 {
		t.Errorf("groupQuantities = %v, want map[10:5 20:3]", got)
	}
}

func TestReservationDeltas(t *testing.T) {
	tests := []struct {
		name   string
		before map[uint]int
		after  map[uint]int
		want   map[uint]int
	}{
		{
			name:   "raise",
			before: map[uint]int{10: 5},
			after:  map[uint]int{10: 8},
			want:   map[uint]int{10: 3},
		},
		{
			name:   "lower",
			before: map[uint]int{10: 8},
			after:  map[uint]int{10: 5},
			want:   map[uint]int{10: -3},
		},
		{
			name:   "product added",
			before: map[uint]int{10: 5},
			after:  map[uint]int{10: 5, 20: 2},
			want:   map[uint]int{20: 2},
		},
		{
			name:   "product removed",
			before: map[uint]int{10: 5, 20: 2},
			after:  map[uint]int{10: 5},
			want:   map[uint]int{20: -2},
		},
		{
			name:   "unchanged omitted",
			before: map[uint]int{10: 5},
			after:  map[uint]int{10: 5},
			want:   map[uint]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reservationDeltas(tt.before, tt.after)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for productID, delta := range tt.want {
				if got[productID] != delta {
					t.Errorf("delta[%d] = %d, want %d", productID, got[productID], delta)
				}
			}
		})
	}
}

// The complete/revert pair must be a net-zero inventory round-trip, also
// after a quantity edit moved the reservation in between.
func TestStockDeltaRoundTrip(t *testing.T) {
	// Plan created at qty 5, then the quantity edited to 8.
	current, inProd := applyStockDelta(0, 0, 0, 5)
	current, inProd = applyStockDelta(current, inProd, 0, 3)

	beforeCurrent, beforeInProd := current, inProd

	current, inProd = applyStockDelta(current, inProd, 8, -8) // complete
	if current != 8 || inProd != 0 {
		t.Fatalf("after complete: current=%d inProd=%d, want 8/0", current, inProd)
	}

	current, inProd = applyStockDelta(current, inProd, -8, 8) // revert
	if current != beforeCurrent || inProd != beforeInProd {
		t.Errorf("round-trip not net-zero: current=%d inProd=%d, want %d/%d",
			current, inProd, beforeCurrent, beforeInProd)
	}

	current, inProd = applyStockDelta(current, inProd, 0, -8) // plan deleted
	if current != 0 || inProd != 0 {
		t.Errorf("after delete: current=%d inProd=%d, want 0/0", current, inProd)
	}
}

func TestApplyStockDeltaFloorsInProduction(t *testing.T) {
	current, inProd := applyStockDelta(4, 2, 0, -5)
	if current != 4 || inProd != 0 {
		t.Errorf("got current=%d inProd=%d, want 4/0", current, inProd)
	}
}

func poLine(orderID uint, status models.PurchaseStatus, auto bool) models.PurchaseOrderItem {
	return models.PurchaseOrderItem{
		PurchaseOrderID: orderID,
		PurchaseOrder:   &models.PurchaseOrder{ID: orderID, Status: status, AutoCompleted: auto},
	}
}

func osoLine(id, orderID uint, status models.OutsourcingStatus, auto bool) models.OutsourcingOrderItem {
	return models.OutsourcingOrderItem{
		ID:                 id,
		OutsourcingOrderID: orderID,
		Status:             status,
		AutoCompleted:      auto,
		OutsourcingOrder:   &models.OutsourcingOrder{ID: orderID, Status: status, AutoCompleted: auto},
	}
}

func TestPurchaseAdvances(t *testing.T) {
	items := []models.ProductionPlanItem{
		{CourseType: models.CoursePurchase, PurchaseOrderItems: []models.PurchaseOrderItem{
			poLine(1, models.PurchaseOrdered, false),
			poLine(1, models.PurchaseOrdered, false), // second line, same order
			poLine(2, models.PurchaseCompleted, false),
			poLine(3, models.PurchasePartial, false),
		}},
	}

	got := purchaseAdvances(items)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("advances = %v, want only the lagging order [1], deduplicated", got)
	}
}

// A purchase order the supplier really fulfilled before completion carries
// no marker, so reverting the plan must not rewrite its delivery.
func TestPurchaseResetsSkipGenuinelyFulfilled(t *testing.T) {
	items := []models.ProductionPlanItem{
		{CourseType: models.CoursePurchase, PurchaseOrderItems: []models.PurchaseOrderItem{
			poLine(1, models.PurchaseCompleted, false), // desk-confirmed delivery
			poLine(2, models.PurchaseCompleted, true),  // advanced by completion
			poLine(2, models.PurchaseCompleted, true),
		}},
	}

	got := purchaseResets(items)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("resets = %v, want only the auto-completed order [2]", got)
	}
}

func TestOutsourcingAdvancesAndResets(t *testing.T) {
	items := []models.ProductionPlanItem{
		{CourseType: models.CourseOutsourcing, OutsourcingOrderItems: []models.OutsourcingOrderItem{
			osoLine(11, 1, models.OutsourcingOrdered, false),
			osoLine(12, 2, models.OutsourcingCompleted, false), // genuinely done
		}},
	}

	lineIDs, orderIDs := outsourcingAdvances(items)
	if len(lineIDs) != 1 || lineIDs[0] != 11 {
		t.Errorf("advance lines = %v, want [11]", lineIDs)
	}
	if len(orderIDs) != 1 || orderIDs[0] != 1 {
		t.Errorf("advance orders = %v, want [1]", orderIDs)
	}

	afterComplete := []models.ProductionPlanItem{
		{CourseType: models.CourseOutsourcing, OutsourcingOrderItems: []models.OutsourcingOrderItem{
			osoLine(11, 1, models.OutsourcingCompleted, true),
			osoLine(12, 2, models.OutsourcingCompleted, false),
		}},
	}

	lineIDs, orderIDs = outsourcingResets(afterComplete)
	if len(lineIDs) != 1 || lineIDs[0] != 11 {
		t.Errorf("reset lines = %v, want only the marked [11]", lineIDs)
	}
	if len(orderIDs) != 1 || orderIDs[0] != 1 {
		t.Errorf("reset orders = %v, want only the marked [1]", orderIDs)
	}
}
