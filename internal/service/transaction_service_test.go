package service

import (
	"context"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
)

func TestCreateClassifiesWhenCategoryEmpty(t *testing.T) {
	st := memory.New()
	svc := NewTransactionService(st, nil)

	id, err := svc.Create(context.Background(), core.Transaction{
		Description: "Uber ride downtown",
		Amount:      core.Money{Cents: 1850},
		Date:        core.NewDate(2025, 3, 10),
		Type:        core.Expense,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	txs, err := st.List(context.Background(), store.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].ID != id {
		t.Errorf("ID = %d, want %d", txs[0].ID, id)
	}
	if txs[0].Category != "Transport" {
		t.Errorf("Category = %q, want %q", txs[0].Category, "Transport")
	}
}

func TestCreateKeepsExplicitCategory(t *testing.T) {
	st := memory.New()
	svc := NewTransactionService(st, nil)

	_, err := svc.Create(context.Background(), core.Transaction{
		Description: "Uber ride downtown",
		Amount:      core.Money{Cents: 1850},
		Category:    "Bills",
		Date:        core.NewDate(2025, 3, 10),
		Type:        core.Expense,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	txs, _ := st.List(context.Background(), store.Filter{})
	if txs[0].Category != "Bills" {
		t.Errorf("Category = %q, want %q", txs[0].Category, "Bills")
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	st := memory.New()
	svc := NewTransactionService(st, nil)

	_, err := svc.Create(context.Background(), core.Transaction{
		Description: "",
		Amount:      core.Money{Cents: 500},
		Date:        core.NewDate(2025, 3, 10),
		Type:        core.Expense,
	})
	if err == nil {
		t.Fatal("expected error for empty description")
	}
}

func TestSeedLoadsAllRecords(t *testing.T) {
	st := memory.New()
	svc := NewTransactionService(st, nil)

	txs := []core.Transaction{
		{Description: "Monthly salary", Amount: core.Money{Cents: 300000}, Category: "Other", Date: core.NewDate(2025, 1, 1), Type: core.Income},
		{Description: "Grocery store run", Amount: core.Money{Cents: 5420}, Date: core.NewDate(2025, 1, 3), Type: core.Expense},
	}

	n, err := svc.Seed(context.Background(), txs)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Seed() = %d, want 2", n)
	}

	count, err := st.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}
