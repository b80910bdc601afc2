package event

import (
	"encoding/json"
	"time"
)

// Ledger change operations carried on the feed.
const (
	OpCapitalSet      = "capital.set"
	OpGoalSet         = "goal.set"
	OpIncomeAdded     = "income.added"
	OpExpenseAdded    = "expense.added"
	OpIncomeRemoved   = "income.removed"
	OpExpenseRemoved  = "expense.removed"
	OpIncomeCleared   = "income.cleared"
	OpExpensesCleared = "expenses.cleared"
)

// LedgerChanged announces one applied mutation. It carries enough for the
// worker to report drift without another read: the entry delta and the
// resulting running capital.
type LedgerChanged struct {
	Operation    string    `json:"operation"`
	LedgerID     string    `json:"ledgerId"`
	EntryID      string    `json:"entryId,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	TotalCapital float64   `json:"totalCapital"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewLedgerChanged(operation, ledgerID, entryID string, amount, totalCapital float64) LedgerChanged {
	return LedgerChanged{
		Operation:    operation,
		LedgerID:     ledgerID,
		EntryID:      entryID,
		Amount:       amount,
		TotalCapital: totalCapital,
		Timestamp:    time.Now().UTC(),
	}
}

func (m LedgerChanged) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedFromJSON(data []byte) (*LedgerChanged, error) {
	var msg LedgerChanged
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
