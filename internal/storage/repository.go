// Package storage is the sqlite persistence layer behind the development
// server. Amounts are stored as decimal strings to avoid float drift.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *sql.DB
}

func New(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
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

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

const transactionColumns = `
	t.id, t.date, t.amount, t.description, t.category_id,
	c.id, c.name, c.type`

func scanTransaction(scan func(...any) error) (core.Transaction, error) {
	var (
		tx       core.Transaction
		date     string
		amount   string
		desc     sql.NullString
	)
	err := scan(&tx.ID, &date, &amount, &desc, &tx.CategoryID,
		&tx.Category.ID, &tx.Category.Name, &tx.Category.Type)
	if err != nil {
		return core.Transaction{}, err
	}

	if tx.Date, err = core.ParseDate(date); err != nil {
		return core.Transaction{}, fmt.Errorf("stored date: %w", err)
	}
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Transaction{}, fmt.Errorf("stored amount: %w", err)
	}
	tx.Description = desc.String
	return tx, nil
}

// ListTransactions returns all transactions, most recent first.
func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		ORDER BY t.date DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *Repository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?`, id)

	tx, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, date core.Date, amount decimal.Decimal, categoryID int64, description string) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (date, amount, description, category_id)
		VALUES (?, ?, ?, ?)`,
		date.String(), amount.String(), nullable(description), categoryID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	return r.GetTransaction(ctx, id)
}

func (r *Repository) UpdateTransaction(ctx context.Context, id int64, date core.Date, amount decimal.Decimal, categoryID int64, description string) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, amount = ?, description = ?, category_id = ?
		WHERE id = ?`,
		date.String(), amount.String(), nullable(description), categoryID, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.Transaction{}, ErrNotFound
	}
	return r.GetTransaction(ctx, id)
}

func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, year, month, amount, category_id FROM budgets ORDER BY year, month, category_id`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b      core.Budget
			amount string
		)
		if err := rows.Scan(&b.ID, &b.Year, &b.Month, &amount, &b.CategoryID); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("stored budget amount: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MonthSummary aggregates one calendar month server-side: per-category spent
// joined with that month's budget, plus income/expenses/net totals. Only
// categories with transactions in the month appear.
func (r *Repository) MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	first := core.NewDate(year, month, 1)
	last := core.Date{Time: time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.type, t.amount
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.date >= ? AND t.date <= ?`,
		first.String(), last.String())
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("month transactions: %w", err)
	}
	defer rows.Close()

	type bucket struct {
		category core.Category
		spent    decimal.Decimal
	}
	buckets := make(map[int64]*bucket)
	for rows.Next() {
		var (
			c      core.Category
			amount string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &amount); err != nil {
			return core.MonthSummary{}, fmt.Errorf("scan month transaction: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return core.MonthSummary{}, fmt.Errorf("stored amount: %w", err)
		}
		b, ok := buckets[c.ID]
		if !ok {
			b = &bucket{category: c}
			buckets[c.ID] = b
		}
		b.spent = b.spent.Add(value)
	}
	if err := rows.Err(); err != nil {
		return core.MonthSummary{}, err
	}

	budgets, err := r.monthBudgets(ctx, year, month)
	if err != nil {
		return core.MonthSummary{}, err
	}

	summary := core.MonthSummary{Year: year, Month: month, Categories: []core.SummaryCategory{}}
	ids := make([]int64, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		b := buckets[id]
		budget := budgets[id]
		if b.category.Type == core.Income {
			summary.Income = summary.Income.Add(b.spent)
		} else {
			summary.Expenses = summary.Expenses.Add(b.spent)
		}
		summary.Categories = append(summary.Categories, core.SummaryCategory{
			CategoryID: id,
			Name:       b.category.Name,
			Type:       b.category.Type,
			Spent:      b.spent,
			Budget:     budget,
			Remaining:  budget.Sub(b.spent),
		})
	}

	// Expense amounts are stored negative, so net is a plain sum.
	summary.Net = summary.Income.Add(summary.Expenses)
	return summary, nil
}

func (r *Repository) monthBudgets(ctx context.Context, year, month int) (map[int64]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id, amount FROM budgets WHERE year = ? AND month = ?`, year, month)
	if err != nil {
		return nil, fmt.Errorf("month budgets: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var (
			id     int64
			amount string
		)
		if err := rows.Scan(&id, &amount); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("stored budget amount: %w", err)
		}
		out[id] = value
	}
	return out, rows.Err()
}

// SeedDefaultCategories inserts the basic category set, skipping names that
// already exist. Returns the created and skipped names.
func (r *Repository) SeedDefaultCategories(ctx context.Context) (created, skipped []string, err error) {
	defaults := []core.Category{
		{Name: "Salary", Type: core.Income},
		{Name: "Bonus", Type: core.Income},
		{Name: "Groceries", Type: core.Expense},
		{Name: "Rent", Type: core.Expense},
		{Name: "Restaurants", Type: core.Expense},
		{Name: "Transport", Type: core.Expense},
		{Name: "Kids", Type: core.Expense},
		{Name: "Hobbies", Type: core.Expense},
		{Name: "Savings", Type: core.Saving},
		{Name: "Emergency Fund", Type: core.Saving},
	}

	for _, c := range defaults {
		var exists int
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM categories WHERE name = ?`, c.Name).Scan(&exists)
		if err != nil {
			return nil, nil, fmt.Errorf("check category %s: %w", c.Name, err)
		}
		if exists > 0 {
			skipped = append(skipped, c.Name)
			continue
		}
		if _, err = r.db.ExecContext(ctx,
			`INSERT INTO categories (name, type) VALUES (?, ?)`, c.Name, c.Type); err != nil {
			return nil, nil, fmt.Errorf("insert category %s: %w", c.Name, err)
		}
		created = append(created, c.Name)
	}
	return created, skipped, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
