package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lifetrack/internal/core"
	"lifetrack/internal/event"
	"lifetrack/internal/storage"
)

// Publisher is the change feed port. Publishing is best-effort: the ledger
// write has already committed when it runs, so failures are logged and
// never surfaced to the caller.
type Publisher interface {
	PublishLedgerChanged(ctx context.Context, msg event.LedgerChanged) error
}

// Notifier is pinged when the earnings counter first reaches the monthly
// goal.
type Notifier interface {
	GoalReached(ctx context.Context, earned, goal float64) error
}

// LedgerService is the externally reachable ledger contract: every mutation
// is one load-transform-store round trip against the repository, and every
// read returns the persisted snapshot.
type LedgerService struct {
	repo     *storage.LedgerRepo
	events   Publisher // optional
	notifier Notifier  // optional
	ledgerID string
}

func NewLedgerService(repo *storage.LedgerRepo, events Publisher, notifier Notifier) *LedgerService {
	return &LedgerService{
		repo:     repo,
		events:   events,
		notifier: notifier,
		ledgerID: core.DefaultLedgerID,
	}
}

// Get returns the current snapshot, creating the default aggregate on first
// contact.
func (s *LedgerService) Get(ctx context.Context) (*core.Ledger, error) {
	l, err := s.repo.LoadOrCreate(ctx, s.ledgerID)
	if err != nil {
		return nil, fmt.Errorf("get ledger: %w", err)
	}
	return l, nil
}

// SetCapital overrides the running balance. Creates the aggregate if absent,
// like the other writes that don't reference an existing entry.
func (s *LedgerService) SetCapital(ctx context.Context, value float64) (*core.Ledger, error) {
	l, err := s.repo.Update(ctx, s.ledgerID, true, func(l *core.Ledger) error {
		l.SetCapital(value)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set capital: %w", err)
	}
	s.publish(ctx, event.OpCapitalSet, "", value, l)
	return l, nil
}

func (s *LedgerService) SetGoal(ctx context.Context, value float64) (*core.Ledger, error) {
	l, err := s.repo.Update(ctx, s.ledgerID, true, func(l *core.Ledger) error {
		l.SetGoal(value)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set goal: %w", err)
	}
	s.publish(ctx, event.OpGoalSet, "", value, l)
	return l, nil
}

// AddIncome validates, appends the entry and credits capital and the
// earnings counter.
func (s *LedgerService) AddIncome(ctx context.Context, amount float64, description string) (*core.Ledger, error) {
	entry, err := core.NewEntry(amount, description)
	if err != nil {
		return nil, err
	}

	var earnedBefore float64
	l, err := s.repo.Update(ctx, s.ledgerID, true, func(l *core.Ledger) error {
		earnedBefore = l.MonthlyEarned
		l.AddIncome(entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add income: %w", err)
	}

	s.publish(ctx, event.OpIncomeAdded, entry.ID, entry.Amount, l)
	s.notifyGoal(ctx, earnedBefore, l)
	return l, nil
}

func (s *LedgerService) AddExpense(ctx context.Context, amount float64, description string) (*core.Ledger, error) {
	entry, err := core.NewEntry(amount, description)
	if err != nil {
		return nil, err
	}

	l, err := s.repo.Update(ctx, s.ledgerID, true, func(l *core.Ledger) error {
		l.AddExpense(entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add expense: %w", err)
	}

	s.publish(ctx, event.OpExpenseAdded, entry.ID, entry.Amount, l)
	return l, nil
}

// RemoveIncome deletes one entry and undoes exactly the delta its addition
// produced. Missing ledger or entry is a not-found; nothing is created.
func (s *LedgerService) RemoveIncome(ctx context.Context, entryID string) (*core.Ledger, error) {
	var removed core.Entry
	l, err := s.repo.Update(ctx, s.ledgerID, false, func(l *core.Ledger) error {
		e, err := l.RemoveIncome(entryID)
		if err != nil {
			return err
		}
		removed = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.OpIncomeRemoved, removed.ID, removed.Amount, l)
	return l, nil
}

func (s *LedgerService) RemoveExpense(ctx context.Context, entryID string) (*core.Ledger, error) {
	var removed core.Entry
	l, err := s.repo.Update(ctx, s.ledgerID, false, func(l *core.Ledger) error {
		e, err := l.RemoveExpense(entryID)
		if err != nil {
			return err
		}
		removed = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.OpExpenseRemoved, removed.ID, removed.Amount, l)
	return l, nil
}

// ClearIncome empties the income collection, debiting the summed total from
// both running counters.
func (s *LedgerService) ClearIncome(ctx context.Context) (*core.Ledger, error) {
	var total float64
	l, err := s.repo.Update(ctx, s.ledgerID, false, func(l *core.Ledger) error {
		total = l.ClearIncome()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.OpIncomeCleared, "", total, l)
	return l, nil
}

func (s *LedgerService) ClearExpenses(ctx context.Context) (*core.Ledger, error) {
	var total float64
	l, err := s.repo.Update(ctx, s.ledgerID, false, func(l *core.Ledger) error {
		total = l.ClearExpenses()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.OpExpensesCleared, "", total, l)
	return l, nil
}

// Stats projects the persisted snapshot. A missing ledger reports the
// all-zero shape and is not created.
func (s *LedgerService) Stats(ctx context.Context) (core.Stats, error) {
	l, err := s.repo.Load(ctx, s.ledgerID)
	if err != nil {
		if isNotFound(err) {
			return core.EmptyStats(), nil
		}
		return core.Stats{}, fmt.Errorf("load ledger for stats: %w", err)
	}
	return l.Stats(), nil
}

func (s *LedgerService) publish(ctx context.Context, operation, entryID string, amount float64, l *core.Ledger) {
	if s.events == nil {
		return
	}
	msg := event.NewLedgerChanged(operation, l.ID, entryID, amount, l.TotalCapital)
	if err := s.events.PublishLedgerChanged(ctx, msg); err != nil {
		// The mutation is already durable; the feed catches up on the next one.
		slog.ErrorContext(ctx, "Failed to publish ledger change",
			"operation", operation,
			"ledger_id", l.ID,
			"error", err)
	}
}

func (s *LedgerService) notifyGoal(ctx context.Context, earnedBefore float64, l *core.Ledger) {
	if s.notifier == nil || l.MonthlyGoal <= 0 {
		return
	}
	if earnedBefore >= l.MonthlyGoal || l.MonthlyEarned < l.MonthlyGoal {
		return
	}
	if err := s.notifier.GoalReached(ctx, l.MonthlyEarned, l.MonthlyGoal); err != nil {
		slog.ErrorContext(ctx, "Failed to send goal notification", "error", err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, core.ErrLedgerNotFound)
}
