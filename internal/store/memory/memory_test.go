package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func seed(t *testing.T, s *Store) {
	t.Helper()
	txs := []core.Transaction{
		{Description: "Groceries", Amount: core.Money{Cents: 8550}, Category: "Food", Date: core.NewDate(2025, 1, 5), Type: core.Expense},
		{Description: "Salary", Amount: core.Money{Cents: 250000}, Category: "Other", Date: core.NewDate(2025, 1, 15), Type: core.Income},
		{Description: "Uber", Amount: core.Money{Cents: 4500}, Category: "Transport", Date: core.NewDate(2025, 2, 10), Type: core.Expense},
	}
	for _, tx := range txs {
		if _, err := s.Append(context.Background(), tx); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	s := New()
	seed(t, s)
	all, err := s.List(context.Background(), store.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	seen := map[int64]bool{}
	for _, tx := range all {
		if tx.ID <= 0 || seen[tx.ID] {
			t.Fatalf("bad or duplicate id %d", tx.ID)
		}
		seen[tx.ID] = true
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.Transaction{Description: "", Amount: core.Money{Cents: 1}, Category: "c", Date: core.NewDate(2025, 1, 1), Type: core.Expense})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if n, _ := s.Count(context.Background()); n != 0 {
		t.Fatalf("invalid record persisted")
	}
}

func TestRoundTrip(t *testing.T) {
	s := New()
	in := core.Transaction{
		Description: "Dinner at restaurant",
		Amount:      core.Money{Cents: 6525},
		Category:    "Food",
		Date:        core.NewDate(2025, 3, 20),
		Type:        core.Expense,
		Receipt:     "aGVsbG8=",
	}
	id, err := s.Append(context.Background(), in)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	all, err := s.List(context.Background(), store.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	got := all[0]
	if got.ID != id || got.Description != in.Description || got.Amount != in.Amount ||
		got.Category != in.Category || got.Date.String() != in.Date.String() ||
		got.Type != in.Type || got.Receipt != in.Receipt {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestListFilters(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	// Inclusive date range covers both January records exactly.
	jan, err := s.List(ctx, store.Filter{From: core.NewDate(2025, 1, 5), To: core.NewDate(2025, 1, 15)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jan) != 2 {
		t.Fatalf("date filter: expected 2, got %d", len(jan))
	}

	byCat, _ := s.List(ctx, store.Filter{Category: "Transport"})
	if len(byCat) != 1 || byCat[0].Description != "Uber" {
		t.Fatalf("category filter: %+v", byCat)
	}

	byType, _ := s.List(ctx, store.Filter{Type: core.Income})
	if len(byType) != 1 || byType[0].Description != "Salary" {
		t.Fatalf("type filter: %+v", byType)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := New()
	seed(t, s)
	all, _ := s.List(context.Background(), store.Filter{})
	for i := 1; i < len(all); i++ {
		if all[i-1].Date.Before(all[i].Date) {
			t.Fatalf("not newest first: %+v", all)
		}
	}
}

func TestReset(t *testing.T) {
	s := New()
	seed(t, s)
	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n, _ := s.Count(context.Background()); n != 0 {
		t.Fatalf("expected empty store after reset, got %d", n)
	}
	id, err := s.Append(context.Background(), core.Transaction{Description: "a", Amount: core.Money{Cents: 1}, Category: "c", Date: core.NewDate(2025, 1, 1), Type: core.Expense})
	if err != nil || id != 1 {
		t.Fatalf("expected id restart at 1, got %d (%v)", id, err)
	}
}
