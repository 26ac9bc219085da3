package core

import (
	"reflect"
	"testing"
)

func tx(id string, typ TransactionType, cents int64, date Date) Transaction {
	return Transaction{
		ID:          id,
		Type:        typ,
		Amount:      Money{Cents: cents},
		Description: "test",
		Category:    "Other",
		Date:        date,
		UserID:      "u1",
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals.Income.Cents != 0 || totals.Expenses.Cents != 0 || totals.Balance.Cents != 0 {
		t.Fatalf("expected all-zero totals, got %+v", totals)
	}
}

func TestComputeTotals(t *testing.T) {
	transactions := []Transaction{
		tx("a", Income, 10000, NewDate(2024, 1, 1)),
		tx("b", Expense, 4000, NewDate(2024, 1, 2)),
		tx("c", Expense, 1500, NewDate(2024, 1, 3)),
	}
	totals := ComputeTotals(transactions)
	if totals.Income.Cents != 10000 {
		t.Fatalf("income: expected 10000, got %d", totals.Income.Cents)
	}
	if totals.Expenses.Cents != 5500 {
		t.Fatalf("expenses: expected 5500, got %d", totals.Expenses.Cents)
	}
	if totals.Balance.Cents != 4500 {
		t.Fatalf("balance: expected 4500, got %d", totals.Balance.Cents)
	}
}

func TestComputeTotalsAdditive(t *testing.T) {
	a := []Transaction{
		tx("a", Income, 300, NewDate(2024, 1, 1)),
		tx("b", Expense, 100, NewDate(2024, 1, 2)),
	}
	b := []Transaction{
		tx("c", Income, 50, NewDate(2024, 2, 1)),
		tx("d", Expense, 75, NewDate(2024, 2, 2)),
	}
	combined := ComputeTotals(append(append([]Transaction{}, a...), b...))
	ta, tb := ComputeTotals(a), ComputeTotals(b)
	sum := Totals{
		Income:   ta.Income.Add(tb.Income),
		Expenses: ta.Expenses.Add(tb.Expenses),
		Balance:  ta.Balance.Add(tb.Balance),
	}
	if combined != sum {
		t.Fatalf("totals not additive: %+v != %+v", combined, sum)
	}
}

func TestFilterByType(t *testing.T) {
	transactions := []Transaction{
		tx("a", Income, 100, NewDate(2024, 1, 1)),
		tx("b", Expense, 200, NewDate(2024, 1, 2)),
		tx("c", Income, 300, NewDate(2024, 1, 3)),
	}

	all := FilterByType(transactions, FilterAll)
	if !reflect.DeepEqual(all, transactions) {
		t.Fatalf("FilterAll must be the identity filter")
	}

	income := FilterByType(transactions, FilterIncome)
	if len(income) != 2 || income[0].ID != "a" || income[1].ID != "c" {
		t.Fatalf("unexpected income filter result: %+v", income)
	}

	expense := FilterByType(transactions, FilterExpense)
	if len(expense) != 1 || expense[0].ID != "b" {
		t.Fatalf("unexpected expense filter result: %+v", expense)
	}
}

func TestSortByDateDescStable(t *testing.T) {
	// b and c share a date; their relative order must survive sorting.
	transactions := []Transaction{
		tx("a", Income, 100, NewDate(2024, 1, 1)),
		tx("b", Expense, 200, NewDate(2024, 3, 1)),
		tx("c", Expense, 300, NewDate(2024, 3, 1)),
		tx("d", Income, 400, NewDate(2024, 2, 1)),
	}

	sorted := SortByDateDesc(transactions)
	wantOrder := []string{"b", "c", "d", "a"}
	for i, id := range wantOrder {
		if sorted[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, sorted[i].ID)
		}
	}

	// Idempotent: sorting twice yields the same sequence.
	again := SortByDateDesc(sorted)
	if !reflect.DeepEqual(again, sorted) {
		t.Fatalf("sorting twice changed the order")
	}

	// Input must not be mutated.
	if transactions[0].ID != "a" {
		t.Fatalf("input slice was reordered")
	}
}
