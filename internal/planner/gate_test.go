package planner

import (
	"testing"

	"designmecha-mes/models"
)

func purchaseLine(status models.PurchaseStatus) models.PurchaseOrderItem {
	return models.PurchaseOrderItem{PurchaseOrder: &models.PurchaseOrder{Status: status}}
}

func outsourcingLine(status models.OutsourcingStatus) models.OutsourcingOrderItem {
	return models.OutsourcingOrderItem{OutsourcingOrder: &models.OutsourcingOrder{Status: status}}
}

func TestCheckDependencies(t *testing.T) {
	tests := []struct {
		name  string
		items []models.ProductionPlanItem
		want  []string
	}{
		{
			name: "internal items never flag",
			items: []models.ProductionPlanItem{
				{CourseType: models.CourseInternal, ProcessName: "절단", Status: models.ProductionPlanned},
			},
			want: nil,
		},
		{
			name: "unfulfilled purchase flags with product name",
			items: []models.ProductionPlanItem{
				{
					CourseType:         models.CoursePurchase,
					Product:            &models.Product{Name: "원자재 강판"},
					PurchaseOrderItems: []models.PurchaseOrderItem{purchaseLine(models.PurchaseOrdered)},
				},
			},
			want: []string{"[Purchase] 원자재 강판 not fulfilled"},
		},
		{
			name: "partial purchase counts as fulfilled",
			items: []models.ProductionPlanItem{
				{
					CourseType:         models.CoursePurchase,
					PurchaseOrderItems: []models.PurchaseOrderItem{purchaseLine(models.PurchasePartial)},
				},
			},
			want: nil,
		},
		{
			name: "partial outsourcing does not exist, only COMPLETED clears",
			items: []models.ProductionPlanItem{
				{
					CourseType:            models.CourseOutsourcing,
					ProcessName:           "도장",
					OutsourcingOrderItems: []models.OutsourcingOrderItem{outsourcingLine(models.OutsourcingOrdered)},
				},
			},
			want: []string{"[Outsourcing] 도장 not fulfilled"},
		},
		{
			name: "completed outsourcing clears",
			items: []models.ProductionPlanItem{
				{
					CourseType:            models.CourseOutsourcing,
					OutsourcingOrderItems: []models.OutsourcingOrderItem{outsourcingLine(models.OutsourcingCompleted)},
				},
			},
			want: nil,
		},
		{
			name: "line without parent order flags",
			items: []models.ProductionPlanItem{
				{
					CourseType:         models.CoursePurchase,
					ProcessName:        "볼트",
					PurchaseOrderItems: []models.PurchaseOrderItem{{}},
				},
			},
			want: []string{"[Purchase] 볼트 not fulfilled"},
		},
		{
			name: "unlinked external step is not flagged",
			items: []models.ProductionPlanItem{
				{CourseType: models.CoursePurchase, ProcessName: "원자재"},
			},
			want: nil,
		},
		{
			name: "one flag per item even with several lagging lines",
			items: []models.ProductionPlanItem{
				{
					CourseType:  models.CoursePurchase,
					ProcessName: "원자재",
					PurchaseOrderItems: []models.PurchaseOrderItem{
						purchaseLine(models.PurchasePending),
						purchaseLine(models.PurchaseOrdered),
					},
				},
			},
			want: []string{"[Purchase] 원자재 not fulfilled"},
		},
		{
			name: "mixed plan flags only the lagging steps",
			items: []models.ProductionPlanItem{
				{CourseType: models.CourseInternal, ProcessName: "절단"},
				{
					CourseType:         models.CoursePurchase,
					Product:            &models.Product{Name: "강판"},
					PurchaseOrderItems: []models.PurchaseOrderItem{purchaseLine(models.PurchaseCompleted)},
				},
				{
					CourseType:            models.CourseOutsourcing,
					Product:               &models.Product{Name: "하우징"},
					OutsourcingOrderItems: []models.OutsourcingOrderItem{outsourcingLine(models.OutsourcingOrdered)},
				},
			},
			want: []string{"[Outsourcing] 하우징 not fulfilled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckDependencies(tt.items)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("flag %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
