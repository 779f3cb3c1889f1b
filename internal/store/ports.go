// Package store defines the ports between the HTTP/service layers and the
// persistence backends (SQLite, in-memory).
package store

import (
	"context"

	"fintrack/internal/core"
)

// Filter narrows a transaction listing. Zero values mean "no constraint";
// date bounds are inclusive.
type Filter struct {
	From     core.Date
	To       core.Date
	Category string
	Type     core.TxType
}

// Matches reports whether the transaction satisfies every set constraint.
func (f Filter) Matches(tx core.Transaction) bool {
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	return true
}

type (
	// TransactionWriter appends a record and returns its assigned ID.
	TransactionWriter interface {
		Append(ctx context.Context, tx core.Transaction) (int64, error)
	}

	// TransactionReader retrieves records, newest date first.
	TransactionReader interface {
		List(ctx context.Context, f Filter) ([]core.Transaction, error)
		Count(ctx context.Context) (int64, error)
	}

	// Resetter wipes all records. Whole-database reset is the only delete
	// path; individual records are never removed.
	Resetter interface {
		Reset(ctx context.Context) error
	}

	// Store is the full backend contract.
	Store interface {
		TransactionWriter
		TransactionReader
		Resetter
		Close() error
	}
)
