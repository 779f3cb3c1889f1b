// Package storage implements the SQLite-backed transaction store. A single
// flat table holds every record; there are no per-record updates or deletes,
// only appends, filtered reads and a whole-table reset.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.TransactionWriter.
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	var receipt sql.NullString
	if tx.Receipt != "" {
		receipt = sql.NullString{String: tx.Receipt, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (description, amount_cents, category, tx_date, tx_type, receipt)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tx.Description, tx.Amount.Cents, tx.Category, tx.Date.String(), string(tx.Type), receipt)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"description", tx.Description,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"type", string(tx.Type))

	return id, nil
}

// List implements store.TransactionReader. Date bounds are inclusive; the
// TEXT date column sorts correctly because dates are stored as YYYY-MM-DD.
func (r *SQLiteRepository) List(ctx context.Context, f store.Filter) ([]core.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	if !f.From.IsZero() {
		conds = append(conds, "tx_date >= ?")
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		conds = append(conds, "tx_date <= ?")
		args = append(args, f.To.String())
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Type != "" {
		conds = append(conds, "tx_type = ?")
		args = append(args, string(f.Type))
	}

	query := "SELECT id, description, amount_cents, category, tx_date, tx_type, receipt FROM transactions"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY tx_date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			tx      core.Transaction
			date    string
			txType  string
			receipt sql.NullString
		)
		if err := rows.Scan(&tx.ID, &tx.Description, &tx.Amount.Cents, &tx.Category, &date, &txType, &receipt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		tx.Date = d
		tx.Type = core.TxType(txType)
		if receipt.Valid {
			tx.Receipt = receipt.String
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Count implements store.TransactionReader.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// Reset implements store.Resetter: it wipes the table and restarts the ID
// sequence. This is the only delete path the system has.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("reset transactions: %w", err)
	}
	// sqlite_sequence row may not exist before the first insert
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'transactions'"); err != nil {
		slog.WarnContext(ctx, "Failed to reset id sequence", "error", err)
	}
	slog.InfoContext(ctx, "Transaction table reset")
	return nil
}
