// Package storage implements the durable record store over SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"expenses/internal/core"
	applog "expenses/internal/log"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
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

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]core.Expense, error) {
	return r.queryExpenses(ctx, "find_all",
		`SELECT id, owner_id, description, amount_cents, category, date FROM expenses`)
}

func (r *SQLiteRepository) FindAllByOwner(ctx context.Context, owner int64) ([]core.Expense, error) {
	return r.queryExpenses(ctx, "find_all_by_owner",
		`SELECT id, owner_id, description, amount_cents, category, date FROM expenses WHERE owner_id = ?`, owner)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*core.Expense, error) {
	return r.queryExpense(ctx, "find_by_id",
		`SELECT id, owner_id, description, amount_cents, category, date FROM expenses WHERE id = ? ORDER BY owner_id LIMIT 1`, id)
}

func (r *SQLiteRepository) FindByIDAndOwner(ctx context.Context, id, owner int64) (*core.Expense, error) {
	return r.queryExpense(ctx, "find_by_id_and_owner",
		`SELECT id, owner_id, description, amount_cents, category, date FROM expenses WHERE id = ? AND owner_id = ?`, id, owner)
}

func (r *SQLiteRepository) Insert(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, owner_id, description, amount_cents, category, date) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Owner, e.Description, e.Amount.Cents, string(e.Category), e.Date.Format(dateLayout))
	if err != nil {
		return &core.StorageError{Op: "insert", Err: err}
	}

	slog.InfoContext(ctx, "Expense saved",
		applog.FieldOperation, applog.OpCreate,
		"id", e.ID,
		"owner", e.Owner,
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldCategory, string(e.Category))
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount_cents = ?, category = ?, date = ? WHERE id = ? AND owner_id = ?`,
		e.Description, e.Amount.Cents, string(e.Category), e.Date.Format(dateLayout), e.ID, e.Owner)
	if err != nil {
		return &core.StorageError{Op: "update", Err: err}
	}

	slog.InfoContext(ctx, "Expense updated",
		applog.FieldOperation, applog.OpUpdate,
		"id", e.ID,
		"owner", e.Owner)
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return &core.StorageError{Op: "delete", Err: err}
	}
	return nil
}

func (r *SQLiteRepository) DeleteByIDAndOwner(ctx context.Context, id, owner int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND owner_id = ?`, id, owner); err != nil {
		return &core.StorageError{Op: "delete", Err: err}
	}
	return nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return &core.StorageError{Op: "delete_all", Err: err}
	}
	slog.InfoContext(ctx, "All expenses deleted", applog.FieldOperation, applog.OpDelete)
	return nil
}

func (r *SQLiteRepository) DeleteAllByOwner(ctx context.Context, owner int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE owner_id = ?`, owner); err != nil {
		return &core.StorageError{Op: "delete_all", Err: err}
	}
	slog.InfoContext(ctx, "Owner expenses deleted",
		applog.FieldOperation, applog.OpDelete, "owner", owner)
	return nil
}

func (r *SQLiteRepository) FindPage(ctx context.Context, page, size int) ([]core.Expense, error) {
	return r.queryExpenses(ctx, "find_page",
		`SELECT id, owner_id, description, amount_cents, category, date FROM expenses
		 ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`, size, page*size)
}

func (r *SQLiteRepository) FindPageByOwner(ctx context.Context, page, size int, owner int64) ([]core.Expense, error) {
	return r.queryExpenses(ctx, "find_page_by_owner",
		`SELECT id, owner_id, description, amount_cents, category, date FROM expenses
		 WHERE owner_id = ? ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`, owner, size, page*size)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, &core.StorageError{Op: "count", Err: err}
	}
	return n, nil
}

func (r *SQLiteRepository) CountByOwner(ctx context.Context, owner int64) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE owner_id = ?`, owner).Scan(&n); err != nil {
		return 0, &core.StorageError{Op: "count", Err: err}
	}
	return n, nil
}

func (r *SQLiteRepository) queryExpense(ctx context.Context, op, query string, args ...any) (*core.Expense, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	e, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		// Read miss is a normal empty result, not an error
		return nil, nil
	}
	if err != nil {
		return nil, &core.StorageError{Op: op, Err: err}
	}
	return &e, nil
}

func (r *SQLiteRepository) queryExpenses(ctx context.Context, op, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &core.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, &core.StorageError{Op: op, Err: err}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: op, Err: err}
	}
	return out, nil
}

func scanExpense(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e        core.Expense
		category string
		date     string
	)
	if err := scan(&e.ID, &e.Owner, &e.Description, &e.Amount.Cents, &category, &date); err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(category)

	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", date, err)
	}
	e.Date = core.DateOf(t)
	return e, nil
}
