package core

import "testing"

func TestGoalProgressClamp(t *testing.T) {
	cases := []struct {
		earned, goal, want float64
	}{
		{500, 1000, 50},
		{1500, 1000, 100}, // clamped above only
		{1000, 1000, 100},
		{700, 0, 0}, // no goal means no progress
		{700, -5, 0},
		{-200, 1000, -20}, // never clamped below
	}
	for i, tc := range cases {
		if got := goalProgress(tc.earned, tc.goal); got != tc.want {
			t.Fatalf("case %d: got %g, want %g", i, got, tc.want)
		}
	}
}

func TestStatsCategoryGroupingIsCaseInsensitive(t *testing.T) {
	l := NewLedger(DefaultLedgerID)
	for _, e := range []struct {
		amount float64
		desc   string
	}{
		{100, "Freelance"},
		{50, "freelance"},
		{30, "Dividends"},
	} {
		entry, err := NewEntry(e.amount, e.desc)
		if err != nil {
			t.Fatalf("entry: %v", err)
		}
		l.AddIncome(entry)
	}

	s := l.Stats()
	if s.TotalIncome != 180 {
		t.Fatalf("got total income %g, want 180", s.TotalIncome)
	}
	if len(s.TopIncomeCategories) != 2 {
		t.Fatalf("got %d categories, want 2", len(s.TopIncomeCategories))
	}
	top := s.TopIncomeCategories[0]
	if top.Name != "freelance" || top.Amount != 150 {
		t.Fatalf("got top category %+v, want {freelance 150}", top)
	}
}

func TestStatsTopFiveOnly(t *testing.T) {
	l := NewLedger(DefaultLedgerID)
	names := []string{"rent", "food", "fuel", "books", "gym", "cinema", "travel"}
	for i, n := range names {
		e, _ := NewEntry(float64((i+1)*10), n)
		l.AddExpense(e)
	}

	s := l.Stats()
	if len(s.TopExpenseCategories) != 5 {
		t.Fatalf("got %d categories, want 5", len(s.TopExpenseCategories))
	}
	if s.TopExpenseCategories[0].Name != "travel" {
		t.Fatalf("got top %q, want travel", s.TopExpenseCategories[0].Name)
	}
	for i := 1; i < len(s.TopExpenseCategories); i++ {
		if s.TopExpenseCategories[i].Amount > s.TopExpenseCategories[i-1].Amount {
			t.Fatalf("categories not sorted descending at %d", i)
		}
	}
}

// Reported totals recompute from the collections, so a capital override
// shows up as drift instead of being hidden.
func TestStatsIndependentOfCapitalOverride(t *testing.T) {
	l := NewLedger(DefaultLedgerID)
	e, _ := NewEntry(100, "salary")
	l.AddIncome(e)
	l.SetCapital(0)

	s := l.Stats()
	if s.TotalIncome != 100 {
		t.Fatalf("got total income %g, want 100", s.TotalIncome)
	}
	if l.TotalCapital != 0 {
		t.Fatalf("override lost: capital %g", l.TotalCapital)
	}
}

func TestEmptyStatsShape(t *testing.T) {
	s := EmptyStats()
	if s.TopIncomeCategories == nil || s.TopExpenseCategories == nil {
		t.Fatal("category slices must be non-nil")
	}
	if s.TotalIncome != 0 || s.TotalExpenses != 0 || s.GoalProgress != 0 {
		t.Fatalf("expected all-zero stats, got %+v", s)
	}
}

func TestStatsDoesNotMutate(t *testing.T) {
	l := NewLedger(DefaultLedgerID)
	e, _ := NewEntry(10, "x")
	l.AddIncome(e)
	before := l.UpdatedAt
	_ = l.Stats()
	_ = l.Stats()
	if !l.UpdatedAt.Equal(before) || len(l.MonthlyIncome) != 1 {
		t.Fatal("stats projection mutated the aggregate")
	}
}
