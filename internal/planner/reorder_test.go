package planner

import (
	"testing"

	"designmecha-mes/models"
)

func bracketPlan(t *testing.T) *Composition {
	t.Helper()
	items := []models.ProductionPlanItem{
		{ID: 1, ProductID: 10, ProcessName: "절단", Sequence: 1, Quantity: 4},
		{ID: 2, ProductID: 10, ProcessName: "용접", Sequence: 2, Quantity: 4},
		{ID: 3, ProductID: 10, ProcessName: "도장", Sequence: 3, Quantity: 4},
		{ID: 4, ProductID: 20, ProcessName: "가공", Sequence: 1, Quantity: 8},
		{ID: 5, ProductID: 20, ProcessName: "검사", Sequence: 2, Quantity: 8},
	}
	return FromItems(testDate(t), nil, nil, items)
}

func groupNames(g *Group) []string {
	names := make([]string, len(g.Steps))
	for i, s := range g.Steps {
		names[i] = s.ProcessName
	}
	return names
}

func TestMoveWithinGroup(t *testing.T) {
	c := bracketPlan(t)

	// Drag 도장 from the back to the front of product 10.
	if !c.Move(10, 2, 0) {
		t.Fatal("Move returned false")
	}

	got := groupNames(c.Group(10))
	want := []string{"도장", "절단", "용접"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after move = %v, want %v", got, want)
		}
	}
	for i, s := range c.Group(10).Steps {
		if s.Sequence != i+1 {
			t.Errorf("step %d sequence = %d, want contiguous %d", i, s.Sequence, i+1)
		}
	}
}

func TestMoveLeavesOtherGroupsUntouched(t *testing.T) {
	c := bracketPlan(t)
	c.Move(10, 0, 2)

	g := c.Group(20)
	if g.Steps[0].ProcessName != "가공" || g.Steps[0].Sequence != 1 ||
		g.Steps[1].ProcessName != "검사" || g.Steps[1].Sequence != 2 {
		t.Errorf("product 20 changed by a product 10 move: %v", groupNames(g))
	}
}

func TestMoveRenumbersAwayGaps(t *testing.T) {
	c := bracketPlan(t)

	// Deleting the middle step leaves 1,3; the next move renumbers.
	c.RemoveItem(10, 1)
	if !c.Move(10, 1, 0) {
		t.Fatal("Move returned false")
	}

	g := c.Group(10)
	if g.Steps[0].Sequence != 1 || g.Steps[1].Sequence != 2 {
		t.Errorf("sequences = [%d %d], want renumbered [1 2]", g.Steps[0].Sequence, g.Steps[1].Sequence)
	}
}

func TestMoveNoOps(t *testing.T) {
	tests := []struct {
		name      string
		productID uint
		from, to  int
	}{
		{"unknown product", 99, 0, 1},
		{"same position", 10, 1, 1},
		{"from out of range", 10, 3, 0},
		{"to out of range", 10, 0, 3},
		{"negative from", 10, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bracketPlan(t)
			before := groupNames(c.Group(10))
			if c.Move(tt.productID, tt.from, tt.to) {
				t.Fatal("Move returned true")
			}
			after := groupNames(c.Group(10))
			for i := range before {
				if before[i] != after[i] {
					t.Errorf("no-op move changed order: %v -> %v", before, after)
				}
			}
		})
	}
}

func TestMoveIsDeterministic(t *testing.T) {
	a, b := bracketPlan(t), bracketPlan(t)
	a.Move(10, 0, 2)
	b.Move(10, 0, 2)

	ga, gb := groupNames(a.Group(10)), groupNames(b.Group(10))
	for i := range ga {
		if ga[i] != gb[i] {
			t.Fatalf("same move diverged: %v vs %v", ga, gb)
		}
	}
}
