package planner

import (
	"testing"

	"designmecha-mes/models"
)

func TestBuildCompositionFromRouting(t *testing.T) {
	equipmentID := uint(3)
	lines := []SourceLine{
		{ProductID: 10, ProductName: "브라켓 A", Quantity: 4},
	}
	routings := map[uint][]RoutingEntry{
		10: {
			{Sequence: 20, ProcessName: "용접", CourseType: models.CourseInternal, EstimatedTime: 30, HourlyRate: 60000},
			{Sequence: 10, ProcessName: "절단", CourseType: models.CourseInternal, EstimatedTime: 15, HourlyRate: 60000, EquipmentID: &equipmentID},
			{Sequence: 30, ProcessName: "도장", CourseType: models.CourseOutsourcing, PartnerName: "한빛도장"},
		},
	}

	orderID := uint(7)
	c := BuildComposition(testDate(t), &orderID, nil, lines, routings)

	g := c.Group(10)
	if g == nil || len(g.Steps) != 3 {
		t.Fatalf("expected 3 steps for product 10")
	}

	// Routing declared 20,10,30; steps come out 절단,용접,도장 renumbered 1..3.
	want := []struct {
		name string
		seq  int
	}{{"절단", 1}, {"용접", 2}, {"도장", 3}}
	for i, w := range want {
		if g.Steps[i].ProcessName != w.name || g.Steps[i].Sequence != w.seq {
			t.Errorf("step %d = %s/%d, want %s/%d", i, g.Steps[i].ProcessName, g.Steps[i].Sequence, w.name, w.seq)
		}
		if g.Steps[i].Quantity != 4 {
			t.Errorf("step %d quantity = %d, want source quantity 4", i, g.Steps[i].Quantity)
		}
	}

	if ex, ok := g.Steps[0].Execution.(Internal); !ok || ex.EquipmentID == nil || *ex.EquipmentID != equipmentID {
		t.Errorf("절단 execution = %#v, want Internal bound to equipment 3", g.Steps[0].Execution)
	}
	if ex, ok := g.Steps[2].Execution.(Outsourced); !ok || ex.PartnerName != "한빛도장" {
		t.Errorf("도장 execution = %#v, want Outsourced{한빛도장}", g.Steps[2].Execution)
	}

	// 15 minutes at 60000/h.
	if got := g.Steps[0].Cost; got != 15000 {
		t.Errorf("절단 default cost = %v, want 15000", got)
	}
}

func TestBuildCompositionFallbackStep(t *testing.T) {
	lines := []SourceLine{{ProductID: 10, ProductName: "신규품", Quantity: 2}}

	c := BuildComposition(testDate(t), nil, nil, lines, nil)

	g := c.Group(10)
	if len(g.Steps) != 1 {
		t.Fatalf("got %d steps, want single fallback", len(g.Steps))
	}
	s := g.Steps[0]
	if s.ProcessName != DefaultProcessName {
		t.Errorf("process name = %q, want %q", s.ProcessName, DefaultProcessName)
	}
	if s.Sequence != 1 || s.Quantity != 2 {
		t.Errorf("fallback step = seq %d qty %d, want 1/2", s.Sequence, s.Quantity)
	}
	if _, ok := s.Execution.(Internal); !ok {
		t.Errorf("fallback execution = %#v, want Internal", s.Execution)
	}
}

func TestBuildCompositionIsIdempotent(t *testing.T) {
	lines := []SourceLine{
		{ProductID: 10, Quantity: 4},
		{ProductID: 20, Quantity: 1},
	}
	routings := map[uint][]RoutingEntry{
		10: {
			{Sequence: 2, ProcessName: "용접"},
			{Sequence: 1, ProcessName: "절단"},
		},
	}

	a := BuildComposition(testDate(t), nil, nil, lines, routings).Flatten()
	b := BuildComposition(testDate(t), nil, nil, lines, routings).Flatten()

	if len(a) != len(b) {
		t.Fatalf("lengths diverged: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ProductID != b[i].ProductID || a[i].ProcessName != b[i].ProcessName || a[i].Sequence != b[i].Sequence {
			t.Errorf("item %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildCompositionBrokenFormulaDegrades(t *testing.T) {
	lines := []SourceLine{{ProductID: 10, Quantity: 1}}
	routings := map[uint][]RoutingEntry{
		10: {{Sequence: 1, ProcessName: "절단", EstimatedTime: 60, HourlyRate: 50000, CostFormula: "rate *** nonsense"}},
	}

	c := BuildComposition(testDate(t), nil, nil, lines, routings)

	// One hour at 50000/h, the time-based default.
	if got := c.Group(10).Steps[0].Cost; got != 50000 {
		t.Errorf("cost = %v, want time-based default 50000", got)
	}
}
