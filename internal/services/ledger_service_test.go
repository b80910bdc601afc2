package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"lifetrack/internal/core"
	"lifetrack/internal/event"
	"lifetrack/internal/storage"
)

type fakePublisher struct {
	msgs []event.LedgerChanged
	err  error
}

func (f *fakePublisher) PublishLedgerChanged(_ context.Context, msg event.LedgerChanged) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

type fakeNotifier struct {
	calls int
}

func (f *fakeNotifier) GoalReached(_ context.Context, _, _ float64) error {
	f.calls++
	return nil
}

func newTestService(t *testing.T) (*LedgerService, *fakePublisher, *fakeNotifier) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "lifetrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	pub := &fakePublisher{}
	not := &fakeNotifier{}
	return NewLedgerService(storage.NewLedgerRepo(store), pub, not), pub, not
}

func TestGetOrCreateAsymmetry(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	// Removal on a fresh store must not create anything.
	if _, err := svc.ClearIncome(ctx); !errors.Is(err, core.ErrLedgerNotFound) {
		t.Fatalf("clear on fresh store: got %v, want ErrLedgerNotFound", err)
	}
	if _, err := svc.RemoveExpense(ctx, "whatever"); !errors.Is(err, core.ErrLedgerNotFound) {
		t.Fatalf("remove on fresh store: got %v, want ErrLedgerNotFound", err)
	}

	// A read creates and persists the default aggregate.
	l, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.TotalCapital != 0 || l.MonthlyGoal != core.DefaultMonthlyGoal || l.MonthlyEarned != 0 {
		t.Fatalf("unexpected default snapshot: %+v", l)
	}
	if len(l.MonthlyIncome) != 0 || len(l.MonthlyExpenses) != 0 {
		t.Fatalf("expected empty collections: %+v", l)
	}

	// Clear now succeeds against the created aggregate.
	if _, err := svc.ClearIncome(ctx); err != nil {
		t.Fatalf("clear after create: %v", err)
	}
}

func TestAddRemoveIncomeRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	l, err := svc.AddIncome(ctx, 100, "salary")
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	if l.TotalCapital != 100 || l.MonthlyEarned != 100 {
		t.Fatalf("totals after add: %+v", l)
	}

	id := l.MonthlyIncome[0].ID
	l, err = svc.RemoveIncome(ctx, id)
	if err != nil {
		t.Fatalf("remove income: %v", err)
	}
	if l.TotalCapital != 0 || l.MonthlyEarned != 0 || len(l.MonthlyIncome) != 0 {
		t.Fatalf("round trip did not restore totals: %+v", l)
	}
}

func TestRemoveUnknownEntryLeavesCapital(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if _, err := svc.AddExpense(ctx, 30, "coffee"); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := svc.RemoveExpense(ctx, "nonexistent-id"); !errors.Is(err, core.ErrEntryNotFound) {
		t.Fatalf("got %v, want ErrEntryNotFound", err)
	}
	l, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.TotalCapital != -30 || len(l.MonthlyExpenses) != 1 {
		t.Fatalf("failed removal changed state: %+v", l)
	}
}

func TestValidationRejectsBeforeMutation(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)

	if _, err := svc.AddIncome(ctx, 0, "salary"); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.AddExpense(ctx, 10, "  "); !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("got %v, want ErrEmptyDescription", err)
	}
	if len(pub.msgs) != 0 {
		t.Fatalf("rejected input published events: %d", len(pub.msgs))
	}
	// Nothing was created either.
	if _, err := svc.ClearExpenses(ctx); !errors.Is(err, core.ErrLedgerNotFound) {
		t.Fatalf("rejected input created a ledger: %v", err)
	}
}

func TestClearAllMatchesIndividualRemoval(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	amounts := []float64{10, 20, 30}
	for _, a := range amounts {
		if _, err := svc.AddIncome(ctx, a, "income"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := svc.SetCapital(ctx, 500); err != nil {
		t.Fatalf("set capital: %v", err)
	}

	l, err := svc.ClearIncome(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if l.TotalCapital != 500-60 {
		t.Fatalf("got capital %g, want 440", l.TotalCapital)
	}
	if l.MonthlyEarned != 0 {
		t.Fatalf("got earned %g, want 0", l.MonthlyEarned)
	}
}

func TestPublishAfterMutate(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)

	if _, err := svc.AddIncome(ctx, 100, "salary"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.SetGoal(ctx, 2000); err != nil {
		t.Fatalf("set goal: %v", err)
	}

	if len(pub.msgs) != 2 {
		t.Fatalf("got %d events, want 2", len(pub.msgs))
	}
	if pub.msgs[0].Operation != event.OpIncomeAdded || pub.msgs[0].TotalCapital != 100 {
		t.Fatalf("unexpected first event: %+v", pub.msgs[0])
	}
	if pub.msgs[1].Operation != event.OpGoalSet {
		t.Fatalf("unexpected second event: %+v", pub.msgs[1])
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)
	pub.err = errors.New("broker down")

	l, err := svc.AddIncome(ctx, 50, "salary")
	if err != nil {
		t.Fatalf("mutation failed because publish failed: %v", err)
	}
	if l.TotalCapital != 50 {
		t.Fatalf("got capital %g, want 50", l.TotalCapital)
	}
}

func TestGoalNotificationFiresOnceOnCrossing(t *testing.T) {
	ctx := context.Background()
	svc, _, not := newTestService(t)

	if _, err := svc.SetGoal(ctx, 100); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if _, err := svc.AddIncome(ctx, 60, "a"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if not.calls != 0 {
		t.Fatalf("notified below goal: %d", not.calls)
	}
	if _, err := svc.AddIncome(ctx, 50, "b"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if not.calls != 1 {
		t.Fatalf("got %d notifications, want 1", not.calls)
	}
	// Already above goal: no repeat.
	if _, err := svc.AddIncome(ctx, 10, "c"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if not.calls != 1 {
		t.Fatalf("renotified above goal: %d", not.calls)
	}
}

func TestStatsOnMissingLedger(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	s, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.TotalIncome != 0 || s.TotalExpenses != 0 || s.GoalProgress != 0 {
		t.Fatalf("expected all-zero stats, got %+v", s)
	}
	if s.TopIncomeCategories == nil || s.TopExpenseCategories == nil {
		t.Fatal("category slices must be non-nil")
	}
	// Stats is a pure read: still no ledger.
	if _, err := svc.ClearIncome(ctx); !errors.Is(err, core.ErrLedgerNotFound) {
		t.Fatalf("stats created a ledger: %v", err)
	}
}

func TestStatsGroupsAndClamps(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if _, err := svc.SetGoal(ctx, 100); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if _, err := svc.AddIncome(ctx, 100, "Freelance"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddIncome(ctx, 50, "freelance"); err != nil {
		t.Fatalf("add: %v", err)
	}

	s, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.GoalProgress != 100 {
		t.Fatalf("got progress %g, want clamped 100", s.GoalProgress)
	}
	if len(s.TopIncomeCategories) != 1 {
		t.Fatalf("got %d categories, want 1", len(s.TopIncomeCategories))
	}
	if c := s.TopIncomeCategories[0]; c.Name != "freelance" || c.Amount != 150 {
		t.Fatalf("got %+v, want {freelance 150}", c)
	}
}
