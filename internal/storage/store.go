// Package storage keeps the current session's normalized transactions in a
// SQLite database. The default DSN is in-memory, so nothing survives the
// process; pointing it at a file is an opt-in.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"findash/internal/core"

	_ "modernc.org/sqlite"
)

// InMemoryDSN keeps the session database in memory. The shared cache is
// required so the migration connection operates on the same database as the
// main connection.
const InMemoryDSN = "file::memory:?cache=shared"

const dateColumnLayout = "2006-01-02"

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(dsn string) (*SessionStore, error) {
	if dsn == "" {
		dsn = InMemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}

	if err := runMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SessionStore{db: db}, nil
}

func (s *SessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Replace swaps the stored batch for the given set in one transaction. A new
// load always replaces the previous one wholesale.
func (s *SessionStore) Replace(ctx context.Context, set core.TransactionSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (tx_date, description, category, tx_type, amount)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range set.Transactions {
		_, err := stmt.ExecContext(ctx,
			t.Date.Format(dateColumnLayout),
			t.Description,
			t.Category,
			string(t.Type),
			t.Amount)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session (id, currency) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET currency = excluded.currency`,
		set.Currency)
	if err != nil {
		return fmt.Errorf("store session currency: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Current returns the stored set ordered by date then insertion order. An
// empty store yields an empty set in the base currency.
func (s *SessionStore) Current(ctx context.Context) (core.TransactionSet, error) {
	set := core.TransactionSet{Currency: core.BaseCurrency}

	err := s.db.QueryRowContext(ctx, `SELECT currency FROM session WHERE id = 1`).
		Scan(&set.Currency)
	if err != nil && err != sql.ErrNoRows {
		return core.TransactionSet{}, fmt.Errorf("read session currency: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tx_date, description, category, tx_type, amount
		FROM transactions
		ORDER BY tx_date, id`)
	if err != nil {
		return core.TransactionSet{}, fmt.Errorf("read transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			day    string
			t      core.Transaction
			txType string
		)
		if err := rows.Scan(&day, &t.Description, &t.Category, &txType, &t.Amount); err != nil {
			return core.TransactionSet{}, fmt.Errorf("scan transaction: %w", err)
		}
		t.Date, err = time.ParseInLocation(dateColumnLayout, day, time.UTC)
		if err != nil {
			return core.TransactionSet{}, fmt.Errorf("scan transaction date: %w", err)
		}
		t.Type = core.TransactionType(txType)
		set.Transactions = append(set.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return core.TransactionSet{}, fmt.Errorf("iterate transactions: %w", err)
	}

	return set, nil
}

// Count reports the number of stored transactions.
func (s *SessionStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
