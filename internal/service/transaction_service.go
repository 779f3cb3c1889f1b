// Package service orchestrates the transaction write path: classifier
// lookup for uncategorized records, validation, then the store append.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/classify"
	"fintrack/internal/core"
	"fintrack/internal/store"
)

type TransactionService struct {
	writer     store.TransactionWriter
	classifier *classify.Classifier
}

func NewTransactionService(writer store.TransactionWriter, classifier *classify.Classifier) *TransactionService {
	if classifier == nil {
		classifier = classify.New()
	}
	return &TransactionService{
		writer:     writer,
		classifier: classifier,
	}
}

// Create persists a transaction. When no category was supplied the
// classifier assigns one from the description; that lookup never fails, so
// the stored category is always non-empty.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (int64, error) {
	if strings.TrimSpace(tx.Category) == "" {
		tx.Category = s.classifier.Classify(tx.Description)
		slog.DebugContext(ctx, "Classifier assigned category",
			"description", tx.Description,
			"category", tx.Category)
	}

	if err := tx.Validate(); err != nil {
		return 0, err
	}

	id, err := s.writer.Append(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}
	return id, nil
}

// Seed bulk-writes a dataset, classifying records the same way Create does.
// It is used for first-start sample data and after a reset.
func (s *TransactionService) Seed(ctx context.Context, txs []core.Transaction) (int, error) {
	seeded := 0
	for _, tx := range txs {
		if _, err := s.Create(ctx, tx); err != nil {
			return seeded, fmt.Errorf("seed record %q: %w", tx.Description, err)
		}
		seeded++
	}
	slog.InfoContext(ctx, "Sample data loaded", "count", seeded)
	return seeded, nil
}
