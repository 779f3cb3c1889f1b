package storage

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "fintrack_test.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("open test repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAppendAndRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := core.Transaction{
		Description: "Dinner at restaurant",
		Amount:      core.Money{Cents: 6525},
		Category:    "Food",
		Date:        core.NewDate(2025, 3, 20),
		Type:        core.Expense,
		Receipt:     "aGVsbG8=",
	}
	id, err := repo.Append(ctx, in)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	all, err := repo.List(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	got := all[0]
	if got.ID != id || got.Description != in.Description || got.Amount != in.Amount ||
		got.Category != in.Category || got.Date.String() != "2025-03-20" ||
		got.Type != in.Type || got.Receipt != in.Receipt {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bad := core.Transaction{
		Description: "",
		Amount:      core.Money{Cents: 100},
		Category:    "Food",
		Date:        core.NewDate(2025, 1, 1),
		Type:        core.Expense,
	}
	if _, err := repo.Append(ctx, bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("invalid record persisted")
	}
}

func seedRepo(t *testing.T, repo *SQLiteRepository) {
	t.Helper()
	ctx := context.Background()
	txs := []core.Transaction{
		{Description: "Groceries", Amount: core.Money{Cents: 8550}, Category: "Food", Date: core.NewDate(2025, 1, 5), Type: core.Expense},
		{Description: "Salary", Amount: core.Money{Cents: 250000}, Category: "Other", Date: core.NewDate(2025, 1, 15), Type: core.Income},
		{Description: "Uber", Amount: core.Money{Cents: 4500}, Category: "Transport", Date: core.NewDate(2025, 2, 10), Type: core.Expense},
		{Description: "Rent", Amount: core.Money{Cents: 120000}, Category: "Bills", Date: core.NewDate(2025, 2, 1), Type: core.Expense},
	}
	for _, tx := range txs {
		if _, err := repo.Append(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestListFilters(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)
	ctx := context.Background()

	// Inclusive date bounds.
	jan, err := repo.List(ctx, store.Filter{From: core.NewDate(2025, 1, 5), To: core.NewDate(2025, 1, 15)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jan) != 2 {
		t.Fatalf("date filter: expected 2, got %d", len(jan))
	}

	food, _ := repo.List(ctx, store.Filter{Category: "Food"})
	if len(food) != 1 || food[0].Description != "Groceries" {
		t.Fatalf("category filter: %+v", food)
	}

	income, _ := repo.List(ctx, store.Filter{Type: core.Income})
	if len(income) != 1 || income[0].Description != "Salary" {
		t.Fatalf("type filter: %+v", income)
	}

	combined, _ := repo.List(ctx, store.Filter{
		From: core.NewDate(2025, 2, 1),
		To:   core.NewDate(2025, 2, 28),
		Type: core.Expense,
	})
	if len(combined) != 2 {
		t.Fatalf("combined filter: expected 2, got %d", len(combined))
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)

	all, err := repo.List(context.Background(), store.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Date.Before(all[i].Date) {
			t.Fatalf("not newest first: %s before %s", all[i-1].Date, all[i].Date)
		}
	}
}

func TestResetWipesAndRestartsIDs(t *testing.T) {
	repo := newTestRepo(t)
	seedRepo(t, repo)
	ctx := context.Background()

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("expected empty table, got %d", n)
	}

	id, err := repo.Append(ctx, core.Transaction{
		Description: "fresh start",
		Amount:      core.Money{Cents: 100},
		Category:    "Other",
		Date:        core.NewDate(2025, 6, 1),
		Type:        core.Expense,
	})
	if err != nil {
		t.Fatalf("append after reset: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id sequence restart at 1, got %d", id)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fintrack_test.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	repo.Close()

	// Reopening the same file must not fail on already-applied migrations.
	repo, err = NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	repo.Close()
}
