package core

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLedgerID is the well-known key of the single shared ledger. The
// repository is keyed so additional ledgers can exist later without
// changing any mutation contract.
const DefaultLedgerID = "default"

// DefaultMonthlyGoal seeds monthlyGoal when a ledger is created implicitly.
const DefaultMonthlyGoal = 5000

var (
	ErrLedgerNotFound   = errors.New("ledger not found")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

type (
	// Entry is one income or expense record. Description doubles as the
	// category key for statistics (lower-cased at read time).
	Entry struct {
		ID          string    `json:"id"`
		Amount      float64   `json:"amount"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}

	// Ledger is the persisted aggregate: a running capital balance, a
	// monthly earnings counter and the two entry collections they are
	// derived from. TotalCapital and MonthlyEarned are maintained
	// incrementally, never recomputed from the collections, so a direct
	// SetCapital override survives later entry mutations: removing or
	// clearing entries undoes exactly the delta that adding them produced.
	Ledger struct {
		ID              string    `json:"id"`
		TotalCapital    float64   `json:"totalCapital"`
		MonthlyGoal     float64   `json:"monthlyGoal"`
		MonthlyEarned   float64   `json:"monthlyEarned"`
		MonthlyIncome   []Entry   `json:"monthlyIncome"`
		MonthlyExpenses []Entry   `json:"monthlyExpenses"`
		CreatedAt       time.Time `json:"createdAt"`
		UpdatedAt       time.Time `json:"updatedAt"`
	}
)

// NewEntry validates and builds an entry. A zero or non-finite amount and a
// blank description are rejected before any mutation happens.
func NewEntry(amount float64, description string) (Entry, error) {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Entry{}, ErrInvalidAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return Entry{}, ErrEmptyDescription
	}
	return Entry{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: description,
		Date:        time.Now().UTC(),
	}, nil
}

// NewLedger returns a zeroed aggregate with the default goal.
func NewLedger(id string) *Ledger {
	now := time.Now().UTC()
	return &Ledger{
		ID:              id,
		MonthlyGoal:     DefaultMonthlyGoal,
		MonthlyIncome:   []Entry{},
		MonthlyExpenses: []Entry{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (l *Ledger) touch() {
	l.UpdatedAt = time.Now().UTC()
}

// SetCapital overrides the running balance directly, bypassing the
// entry-derived total. Entries and MonthlyEarned are untouched.
func (l *Ledger) SetCapital(value float64) {
	l.TotalCapital = value
	l.touch()
}

func (l *Ledger) SetGoal(value float64) {
	l.MonthlyGoal = value
	l.touch()
}

// AddIncome appends the entry and credits both running totals.
func (l *Ledger) AddIncome(e Entry) {
	l.MonthlyIncome = append(l.MonthlyIncome, e)
	l.TotalCapital += e.Amount
	l.MonthlyEarned += e.Amount
	l.touch()
}

// AddExpense appends the entry and debits capital. MonthlyEarned only ever
// changes through income operations.
func (l *Ledger) AddExpense(e Entry) {
	l.MonthlyExpenses = append(l.MonthlyExpenses, e)
	l.TotalCapital -= e.Amount
	l.touch()
}

// RemoveIncome deletes the entry and undoes its effect on both totals.
func (l *Ledger) RemoveIncome(id string) (Entry, error) {
	e, rest, err := removeEntry(l.MonthlyIncome, id)
	if err != nil {
		return Entry{}, err
	}
	l.MonthlyIncome = rest
	l.TotalCapital -= e.Amount
	l.MonthlyEarned -= e.Amount
	l.touch()
	return e, nil
}

// RemoveExpense deletes the entry and credits its amount back.
func (l *Ledger) RemoveExpense(id string) (Entry, error) {
	e, rest, err := removeEntry(l.MonthlyExpenses, id)
	if err != nil {
		return Entry{}, err
	}
	l.MonthlyExpenses = rest
	l.TotalCapital += e.Amount
	l.touch()
	return e, nil
}

// ClearIncome empties the income collection and returns the removed total.
// Equivalent to removing every income entry individually.
func (l *Ledger) ClearIncome() float64 {
	total := sumAmounts(l.MonthlyIncome)
	l.MonthlyIncome = []Entry{}
	l.TotalCapital -= total
	l.MonthlyEarned -= total
	l.touch()
	return total
}

// ClearExpenses empties the expense collection and returns the removed total.
func (l *Ledger) ClearExpenses() float64 {
	total := sumAmounts(l.MonthlyExpenses)
	l.MonthlyExpenses = []Entry{}
	l.TotalCapital += total
	l.touch()
	return total
}

func removeEntry(entries []Entry, id string) (Entry, []Entry, error) {
	for i, e := range entries {
		if e.ID == id {
			rest := make([]Entry, 0, len(entries)-1)
			rest = append(rest, entries[:i]...)
			rest = append(rest, entries[i+1:]...)
			return e, rest, nil
		}
	}
	return Entry{}, nil, ErrEntryNotFound
}

func sumAmounts(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}
