package core

import (
	"sort"
	"strings"
)

const topCategoryLimit = 5

type (
	CategoryTotal struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	// Stats is the read-time statistics view. TotalIncome and TotalExpenses
	// are straight sums over the current entry collections, deliberately
	// independent of the incrementally maintained TotalCapital so that any
	// drift introduced by capital overrides stays visible.
	Stats struct {
		TotalIncome          float64         `json:"totalIncome"`
		TotalExpenses        float64         `json:"totalExpenses"`
		GoalProgress         float64         `json:"goalProgress"`
		TopIncomeCategories  []CategoryTotal `json:"topIncomeCategories"`
		TopExpenseCategories []CategoryTotal `json:"topExpenseCategories"`
	}
)

// EmptyStats is what a missing ledger reports. Slices are non-nil so the
// JSON shape stays []-valued.
func EmptyStats() Stats {
	return Stats{
		TopIncomeCategories:  []CategoryTotal{},
		TopExpenseCategories: []CategoryTotal{},
	}
}

// Stats projects the current snapshot. It never mutates the ledger and is
// safe to call concurrently with reads.
func (l *Ledger) Stats() Stats {
	return Stats{
		TotalIncome:          sumAmounts(l.MonthlyIncome),
		TotalExpenses:        sumAmounts(l.MonthlyExpenses),
		GoalProgress:         goalProgress(l.MonthlyEarned, l.MonthlyGoal),
		TopIncomeCategories:  topCategories(l.MonthlyIncome, topCategoryLimit),
		TopExpenseCategories: topCategories(l.MonthlyExpenses, topCategoryLimit),
	}
}

// goalProgress clamps at 100 on the upper side only; a negative earned
// counter yields negative progress.
func goalProgress(earned, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := earned / goal * 100
	if p > 100 {
		return 100
	}
	return p
}

// topCategories groups entries by lower-cased description, sums per group
// and returns the n largest. Equal sums are ordered by name to keep the
// result deterministic.
func topCategories(entries []Entry, n int) []CategoryTotal {
	sums := make(map[string]float64, len(entries))
	for _, e := range entries {
		name := strings.ToLower(strings.TrimSpace(e.Description))
		sums[name] += e.Amount
	}

	out := make([]CategoryTotal, 0, len(sums))
	for name, amount := range sums {
		out = append(out, CategoryTotal{Name: name, Amount: amount})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
