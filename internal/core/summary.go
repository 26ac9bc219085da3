package core

import "sort"

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

type (
	// TypeFilter selects a subset of transactions by type.
	TypeFilter string

	// Totals is the aggregated view of a transaction set.
	Totals struct {
		Income   Money `json:"income"`
		Expenses Money `json:"expenses"`
		Balance  Money `json:"balance"`
	}
)

func (f TypeFilter) Valid() bool {
	return f == FilterAll || f == FilterIncome || f == FilterExpense
}

// ComputeTotals sums income and expense amounts over the given
// transactions. The balance is income minus expenses and may be negative.
// An empty input yields all-zero totals.
func ComputeTotals(transactions []Transaction) Totals {
	var totals Totals
	for _, t := range transactions {
		switch t.Type {
		case Income:
			totals.Income = totals.Income.Add(t.Amount)
		case Expense:
			totals.Expenses = totals.Expenses.Add(t.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expenses)
	return totals
}

// FilterByType returns the transactions matching the filter. FilterAll is
// the identity filter.
func FilterByType(transactions []Transaction, filter TypeFilter) []Transaction {
	if filter == FilterAll {
		return transactions
	}
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if string(t.Type) == string(filter) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDateDesc returns a new slice sorted by date, most recent first.
// The sort is stable: same-date transactions keep their relative input
// order, so repeated sorting never reorders them.
func SortByDateDesc(transactions []Transaction) []Transaction {
	out := make([]Transaction, len(transactions))
	copy(out, transactions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
