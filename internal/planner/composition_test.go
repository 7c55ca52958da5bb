package planner

import (
	"testing"
	"time"

	"designmecha-mes/models"
)

func testDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", "2026-03-02")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFromItemsGroupsByProduct(t *testing.T) {
	items := []models.ProductionPlanItem{
		{ID: 1, ProductID: 10, ProcessName: "절단", Sequence: 1, Quantity: 5, CourseType: models.CourseInternal},
		{ID: 2, ProductID: 20, ProcessName: "도장", Sequence: 1, Quantity: 3, CourseType: models.CourseOutsourcing, PartnerName: "한빛도장"},
		{ID: 3, ProductID: 10, ProcessName: "용접", Sequence: 2, Quantity: 5, CourseType: models.CourseInternal},
	}

	c := FromItems(testDate(t), nil, nil, items)

	groups := c.Groups()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].ProductID != 10 || groups[1].ProductID != 20 {
		t.Errorf("group order = [%d %d], want first-encounter [10 20]", groups[0].ProductID, groups[1].ProductID)
	}
	if len(groups[0].Steps) != 2 {
		t.Fatalf("product 10 has %d steps, want 2", len(groups[0].Steps))
	}
	if groups[0].Steps[0].ProcessName != "절단" || groups[0].Steps[1].ProcessName != "용접" {
		t.Errorf("product 10 steps ordered [%s %s], want [절단 용접]",
			groups[0].Steps[0].ProcessName, groups[0].Steps[1].ProcessName)
	}
	if ex, ok := groups[1].Steps[0].Execution.(Outsourced); !ok || ex.PartnerName != "한빛도장" {
		t.Errorf("product 20 step execution = %#v, want Outsourced{한빛도장}", groups[1].Steps[0].Execution)
	}
}

func TestFromItemsSortsByStoredSequence(t *testing.T) {
	items := []models.ProductionPlanItem{
		{ID: 1, ProductID: 10, ProcessName: "검사", Sequence: 3, Quantity: 1},
		{ID: 2, ProductID: 10, ProcessName: "절단", Sequence: 1, Quantity: 1},
		{ID: 3, ProductID: 10, ProcessName: "용접", Sequence: 2, Quantity: 1},
	}

	g := FromItems(testDate(t), nil, nil, items).Group(10)
	want := []string{"절단", "용접", "검사"}
	for i, name := range want {
		if g.Steps[i].ProcessName != name {
			t.Errorf("step %d = %s, want %s", i, g.Steps[i].ProcessName, name)
		}
	}
}

func TestAddProcess(t *testing.T) {
	c := NewComposition(testDate(t))
	c.AddProcess(10, "브라켓", "A-100", "EA")
	c.EditField(10, 0, "quantity", "7")

	step := c.AddProcess(10, "브라켓", "A-100", "EA")

	if step.Sequence != 2 {
		t.Errorf("new step sequence = %d, want max+1 = 2", step.Sequence)
	}
	if step.Quantity != 7 {
		t.Errorf("new step quantity = %d, want group's shared 7", step.Quantity)
	}
	if _, ok := step.Execution.(Internal); !ok {
		t.Errorf("new step execution = %#v, want Internal", step.Execution)
	}
	if step.Status != models.ProductionPlanned {
		t.Errorf("new step status = %s, want PLANNED", step.Status)
	}
}

func TestRemoveItemLeavesSequenceGap(t *testing.T) {
	items := []models.ProductionPlanItem{
		{ProductID: 10, ProcessName: "절단", Sequence: 1, Quantity: 1},
		{ProductID: 10, ProcessName: "용접", Sequence: 2, Quantity: 1},
		{ProductID: 10, ProcessName: "검사", Sequence: 3, Quantity: 1},
	}
	c := FromItems(testDate(t), nil, nil, items)

	if !c.RemoveItem(10, 1) {
		t.Fatal("RemoveItem returned false")
	}

	g := c.Group(10)
	if len(g.Steps) != 2 {
		t.Fatalf("got %d steps after removal, want 2", len(g.Steps))
	}
	// Siblings keep their numbers; 절단=1, 검사=3.
	if g.Steps[0].Sequence != 1 || g.Steps[1].Sequence != 3 {
		t.Errorf("sequences after removal = [%d %d], want gap preserved [1 3]",
			g.Steps[0].Sequence, g.Steps[1].Sequence)
	}

	if c.RemoveItem(10, 5) {
		t.Error("out-of-range RemoveItem returned true")
	}
	if c.RemoveItem(99, 0) {
		t.Error("unknown-product RemoveItem returned true")
	}
}

func TestEditFieldQuantityWritesThroughGroup(t *testing.T) {
	items := []models.ProductionPlanItem{
		{ProductID: 10, ProcessName: "절단", Sequence: 1, Quantity: 5},
		{ProductID: 10, ProcessName: "용접", Sequence: 2, Quantity: 5},
	}
	c := FromItems(testDate(t), nil, nil, items)

	if !c.EditField(10, 1, "quantity", "12") {
		t.Fatal("EditField returned false")
	}
	for i, s := range c.Group(10).Steps {
		if s.Quantity != 12 {
			t.Errorf("step %d quantity = %d, want 12 for the whole group", i, s.Quantity)
		}
	}
}

func TestEditFieldCoercion(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		check func(*testing.T, *Step)
	}{
		{"valid time", "estimated_time", "90.5", func(t *testing.T, s *Step) {
			if s.EstimatedTime != 90.5 {
				t.Errorf("estimated_time = %v, want 90.5", s.EstimatedTime)
			}
		}},
		{"garbage time coerces to zero", "estimated_time", "abc", func(t *testing.T, s *Step) {
			if s.EstimatedTime != 0 {
				t.Errorf("estimated_time = %v, want 0", s.EstimatedTime)
			}
		}},
		{"garbage cost coerces to zero", "cost", "12,000", func(t *testing.T, s *Step) {
			if s.Cost != 0 {
				t.Errorf("cost = %v, want 0", s.Cost)
			}
		}},
		{"note", "note", "야간작업", func(t *testing.T, s *Step) {
			if s.Note != "야간작업" {
				t.Errorf("note = %q", s.Note)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposition(testDate(t))
			c.AddProcess(10, "", "", "")
			if !c.EditField(10, 0, tt.field, tt.value) {
				t.Fatalf("EditField(%s) returned false", tt.field)
			}
			tt.check(t, c.Group(10).Steps[0])
		})
	}
}

func TestEditFieldCourseSwitchCarriesPartner(t *testing.T) {
	c := NewComposition(testDate(t))
	c.AddProcess(10, "", "", "")

	c.EditField(10, 0, "course_type", string(models.CourseOutsourcing))
	c.EditField(10, 0, "partner_name", "대한열처리")
	c.EditField(10, 0, "course_type", string(models.CoursePurchase))

	ex, ok := c.Group(10).Steps[0].Execution.(Purchased)
	if !ok {
		t.Fatalf("execution = %#v, want Purchased", c.Group(10).Steps[0].Execution)
	}
	if ex.PartnerName != "대한열처리" {
		t.Errorf("partner after switch = %q, want carried 대한열처리", ex.PartnerName)
	}

	// Back to internal drops the partner and refuses partner edits.
	c.EditField(10, 0, "course_type", string(models.CourseInternal))
	if c.EditField(10, 0, "partner_name", "x") {
		t.Error("partner_name edit on INTERNAL step returned true")
	}
}

func TestValidate(t *testing.T) {
	orderID, spID := uint(1), uint(2)

	t.Run("no plan date", func(t *testing.T) {
		c := NewComposition(time.Time{})
		c.AddProcess(10, "", "", "")
		if err := c.Validate(); err != ErrNoPlanDate {
			t.Errorf("err = %v, want ErrNoPlanDate", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		c := NewComposition(testDate(t))
		if err := c.Validate(); err != ErrNoItems {
			t.Errorf("err = %v, want ErrNoItems", err)
		}
	})

	t.Run("both sources", func(t *testing.T) {
		c := NewComposition(testDate(t))
		c.OrderID = &orderID
		c.StockProductionID = &spID
		c.AddProcess(10, "", "", "")
		if err := c.Validate(); err != ErrAmbiguousSource {
			t.Errorf("err = %v, want ErrAmbiguousSource", err)
		}
	})

	t.Run("diverged quantities", func(t *testing.T) {
		items := []models.ProductionPlanItem{
			{ProductID: 10, Sequence: 1, Quantity: 5},
			{ProductID: 10, Sequence: 2, Quantity: 6},
		}
		c := FromItems(testDate(t), nil, nil, items)
		if err := c.Validate(); err != ErrQuantityDiverged {
			t.Errorf("err = %v, want ErrQuantityDiverged", err)
		}
	})

	t.Run("sourceless plan is fine", func(t *testing.T) {
		c := NewComposition(testDate(t))
		c.AddProcess(10, "", "", "")
		if err := c.Validate(); err != nil {
			t.Errorf("err = %v, want nil", err)
		}
	})
}

func TestFlattenRoundTrip(t *testing.T) {
	start := testDate(t)
	items := []models.ProductionPlanItem{
		{ID: 1, ProductID: 10, ProcessName: "절단", Sequence: 1, Quantity: 5, CourseType: models.CourseInternal, StartDate: &start},
		{ID: 2, ProductID: 10, ProcessName: "열처리", Sequence: 2, Quantity: 5, CourseType: models.CourseOutsourcing, PartnerName: "대한열처리", Status: models.ProductionInProgress},
		{ID: 3, ProductID: 20, ProcessName: "원자재", Sequence: 1, Quantity: 2, CourseType: models.CoursePurchase, PartnerName: "서울강재"},
	}

	flat := FromItems(start, nil, nil, items).Flatten()

	if len(flat) != 3 {
		t.Fatalf("got %d items, want 3", len(flat))
	}
	if flat[1].CourseType != models.CourseOutsourcing || flat[1].PartnerName != "대한열처리" {
		t.Errorf("item 1 = %s/%s, want OUTSOURCING/대한열처리", flat[1].CourseType, flat[1].PartnerName)
	}
	if flat[1].Status != models.ProductionInProgress {
		t.Errorf("item 1 status = %s, want preserved IN_PROGRESS", flat[1].Status)
	}
	if flat[0].StartDate == nil || !flat[0].StartDate.Equal(start) {
		t.Errorf("item 0 start date not preserved")
	}
	if flat[2].Status != models.ProductionPlanned {
		t.Errorf("item 2 status = %s, want defaulted PLANNED", flat[2].Status)
	}
}
