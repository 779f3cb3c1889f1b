// Package csvio handles bulk CSV import and CSV/JSON export of
// transactions.
package csvio

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/service"
)

// ErrMissingHeader indicates the CSV lacked one of the required columns.
var ErrMissingHeader = errors.New("csv: missing required header column")

// RowError records why a single CSV row was rejected.
type RowError struct {
	Line int    `json:"line"`
	Err  string `json:"error"`
}

// Result summarizes an import run. Rows are independent: a bad row is
// skipped and counted, it never aborts the run.
type Result struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Importer parses CSV files and writes the valid rows through the
// transaction service, so uncategorized rows get classified the same way
// single submissions do.
type Importer struct {
	svc *service.TransactionService
}

func NewImporter(svc *service.TransactionService) *Importer {
	return &Importer{svc: svc}
}

// requiredColumns are matched case-insensitively against the header row.
// The category column is optional.
var requiredColumns = []string{"description", "amount", "date", "type"}

// Import reads the CSV from r and persists every parseable row.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return Result{}, err
	}

	var result Result
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Line: line, Err: err.Error()})
			continue
		}

		tx, err := parseRow(record, cols)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Line: line, Err: err.Error()})
			continue
		}

		if _, err := im.svc.Create(ctx, tx); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Line: line, Err: err.Error()})
			continue
		}
		result.Imported++
	}

	slog.InfoContext(ctx, "CSV import finished",
		"imported", result.Imported,
		"skipped", result.Skipped)
	return result, nil
}

// mapHeader resolves column positions, rejecting files that lack a
// required column.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, required)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int) (core.Transaction, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	cents, err := core.ParseDecimalToCents(field("amount"))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", field("amount"), err)
	}

	date, err := core.ParseDate(field("date"))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("date %q: %w", field("date"), err)
	}

	txType := core.TxType(strings.ToLower(field("type")))
	if err := txType.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("type %q: %w", field("type"), err)
	}

	tx := core.Transaction{
		Description: field("description"),
		Amount:      core.Money{Cents: cents},
		Category:    field("category"),
		Date:        date,
		Type:        txType,
	}
	if tx.Description == "" {
		return core.Transaction{}, core.ErrEmptyDescription
	}
	return tx, nil
}

// exportHeader is the column order used by WriteCSV, matching what
// Import accepts so an export can be re-imported unchanged.
var exportHeader = []string{"id", "description", "amount", "category", "date", "type"}

// WriteCSV streams transactions as CSV.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			fmt.Sprintf("%d", tx.ID),
			tx.Description,
			fmt.Sprintf("%.2f", tx.Amount.Dollars()),
			tx.Category,
			tx.Date.String(),
			string(tx.Type),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

type exportRecord struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}

// WriteJSON streams transactions as a JSON array.
func WriteJSON(w io.Writer, txs []core.Transaction) error {
	records := make([]exportRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, exportRecord{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount.Dollars(),
			Category:    tx.Category,
			Date:        tx.Date.String(),
			Type:        string(tx.Type),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
