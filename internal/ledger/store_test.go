package ledger

import (
	"context"
	"testing"

	"tally/internal/blob/memory"
	"tally/internal/core"
)

func tx(id, userID string, typ core.TransactionType, cents int64, date core.Date) core.Transaction {
	t, err := core.NewTransaction(id, typ, core.Money{Cents: cents}, "test entry", "Other", date, userID)
	if err != nil {
		panic(err)
	}
	return t
}

func TestListScopesByUser(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	entries := []core.Transaction{
		tx("t1", "u1", core.Income, 100, core.NewDate(2024, 1, 1)),
		tx("t2", "u2", core.Expense, 200, core.NewDate(2024, 1, 2)),
		tx("t3", "u1", core.Expense, 300, core.NewDate(2024, 1, 3)),
	}
	for _, e := range entries {
		if err := s.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", e.ID, err)
		}
	}

	got := s.List(ctx, "u1")
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions for u1, got %d", len(got))
	}
	for _, e := range got {
		if e.UserID != "u1" {
			t.Fatalf("foreign transaction leaked into list: %+v", e)
		}
	}

	if other := s.List(ctx, "u3"); len(other) != 0 {
		t.Fatalf("expected empty list for unknown user, got %+v", other)
	}
}

func TestListNeverFails(t *testing.T) {
	blobs := memory.New()
	ctx := context.Background()
	if err := blobs.Put(ctx, "transactions", []byte("[corrupted")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewStore(blobs)
	if got := s.List(ctx, "u1"); len(got) != 0 {
		t.Fatalf("corrupted blob must degrade to empty, got %+v", got)
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	a := tx("t1", "u1", core.Income, 100, core.NewDate(2024, 1, 1))
	b := tx("t2", "u1", core.Expense, 200, core.NewDate(2024, 1, 2))
	for _, e := range []core.Transaction{a, b} {
		if err := s.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	edited := tx("t1", "u1", core.Income, 9999, core.NewDate(2024, 2, 1))
	if err := s.Update(ctx, edited); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := s.List(ctx, "u1")
	if len(got) != 2 {
		t.Fatalf("update must not change the collection size, got %d", len(got))
	}
	if got[0] != edited {
		t.Fatalf("update must preserve position, got %+v first", got[0])
	}
	if got[1] != b {
		t.Fatalf("unrelated transaction changed: %+v", got[1])
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	a := tx("t1", "u1", core.Income, 100, core.NewDate(2024, 1, 1))
	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	ghost := tx("missing", "u1", core.Expense, 1, core.NewDate(2024, 1, 1))
	if err := s.Update(ctx, ghost); err != nil {
		t.Fatalf("update of a missing id must not fail: %v", err)
	}

	got := s.List(ctx, "u1")
	if len(got) != 1 || got[0] != a {
		t.Fatalf("update of a missing id must change nothing, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	a := tx("t1", "u1", core.Income, 100, core.NewDate(2024, 1, 1))
	b := tx("t2", "u2", core.Expense, 200, core.NewDate(2024, 1, 2))
	for _, e := range []core.Transaction{a, b} {
		if err := s.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := s.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.List(ctx, "u1"); len(got) != 0 {
		t.Fatalf("expected t1 gone, got %+v", got)
	}
	if got := s.List(ctx, "u2"); len(got) != 1 {
		t.Fatalf("delete must not touch other users, got %+v", got)
	}

	// Deleting an absent id is a silent no-op.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete of a missing id must not fail: %v", err)
	}
}

func TestGet(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	a := tx("t1", "u1", core.Income, 100, core.NewDate(2024, 1, 1))
	if err := s.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok := s.Get(ctx, "t1")
	if !ok || got != a {
		t.Fatalf("expected %+v, got %+v (ok=%v)", a, got, ok)
	}
	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatalf("expected missing id to report not found")
	}
}

func TestTotalsScenario(t *testing.T) {
	s := NewStore(memory.New())
	ctx := context.Background()

	income := tx("t1", "u1", core.Income, 10000, core.NewDate(2024, 1, 1))
	expense := tx("t2", "u1", core.Expense, 4000, core.NewDate(2024, 1, 2))
	for _, e := range []core.Transaction{income, expense} {
		if err := s.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	listed := s.List(ctx, "u1")
	totals := core.ComputeTotals(listed)
	if totals.Income.Cents != 10000 || totals.Expenses.Cents != 4000 || totals.Balance.Cents != 6000 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	onlyIncome := core.FilterByType(listed, core.FilterIncome)
	if len(onlyIncome) != 1 || onlyIncome[0].ID != "t1" {
		t.Fatalf("unexpected income filter: %+v", onlyIncome)
	}
	sorted := core.SortByDateDesc(listed)
	if sorted[0].ID != "t2" || sorted[1].ID != "t1" {
		t.Fatalf("expected newest first, got %+v", sorted)
	}
}
