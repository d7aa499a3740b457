package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func seed(t *testing.T, repo *Repository) map[string]core.Category {
	t.Helper()
	ctx := context.Background()
	if _, _, err := repo.SeedDefaultCategories(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	byName := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	return byName
}

func TestSeedDefaultCategories(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, skipped, err := repo.SeedDefaultCategories(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(created) != 10 || len(skipped) != 0 {
		t.Fatalf("first seed created=%d skipped=%d", len(created), len(skipped))
	}

	// Seeding again skips everything.
	created, skipped, err = repo.SeedDefaultCategories(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(created) != 0 || len(skipped) != 10 {
		t.Fatalf("second seed created=%d skipped=%d", len(created), len(skipped))
	}
}

func TestTransactionLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cats := seed(t, repo)

	groceries := cats["Groceries"]
	tx, err := repo.CreateTransaction(ctx, core.NewDate(2024, 3, 5), decimal.NewFromInt(-50), groceries.ID, "weekly shop")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.ID == 0 || tx.Category.Name != "Groceries" || tx.Description != "weekly shop" {
		t.Fatalf("created = %+v", tx)
	}

	updated, err := repo.UpdateTransaction(ctx, tx.ID, tx.Date, decimal.NewFromInt(-75), groceries.ID, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(-75)) || updated.Description != "" {
		t.Fatalf("updated = %+v", updated)
	}

	if err := repo.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteTransaction(ctx, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListTransactionsOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cats := seed(t, repo)

	dates := []core.Date{
		core.NewDate(2024, 3, 5),
		core.NewDate(2024, 3, 20),
		core.NewDate(2024, 2, 28),
	}
	for _, d := range dates {
		if _, err := repo.CreateTransaction(ctx, d, decimal.NewFromInt(-10), cats["Groceries"].ID, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("len = %d", len(txs))
	}
	// Most recent date first, then newest id.
	if txs[0].Date.String() != "2024-03-20" || txs[2].Date.String() != "2024-02-28" {
		t.Fatalf("order = %s, %s, %s", txs[0].Date, txs[1].Date, txs[2].Date)
	}
}

func TestMonthSummary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cats := seed(t, repo)

	add := func(d core.Date, amount int64, cat string) {
		t.Helper()
		if _, err := repo.CreateTransaction(ctx, d, decimal.NewFromInt(amount), cats[cat].ID, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	add(core.NewDate(2024, 3, 1), 2000, "Salary")
	add(core.NewDate(2024, 3, 5), -50, "Groceries")
	add(core.NewDate(2024, 3, 10), -100, "Groceries")
	add(core.NewDate(2024, 4, 1), -999, "Rent") // outside the month

	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO budgets (year, month, amount, category_id) VALUES (2024, 3, '100', ?)`,
		cats["Groceries"].ID); err != nil {
		t.Fatalf("insert budget: %v", err)
	}

	sum, err := repo.MonthSummary(ctx, 2024, 3)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !sum.Income.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("income = %s", sum.Income)
	}
	if !sum.Expenses.Equal(decimal.NewFromInt(-150)) {
		t.Fatalf("expenses = %s", sum.Expenses)
	}
	if !sum.Net.Equal(decimal.NewFromInt(1850)) {
		t.Fatalf("net = %s", sum.Net)
	}
	if len(sum.Categories) != 2 {
		t.Fatalf("categories = %d", len(sum.Categories))
	}
	for _, c := range sum.Categories {
		if c.Name == "Groceries" {
			if !c.Budget.Equal(decimal.NewFromInt(100)) || !c.Remaining.Equal(decimal.NewFromInt(250)) {
				t.Fatalf("groceries budget=%s remaining=%s", c.Budget, c.Remaining)
			}
		}
	}
}

func TestMonthSummaryEmpty(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo)

	sum, err := repo.MonthSummary(context.Background(), 2024, 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !sum.Income.IsZero() || !sum.Expenses.IsZero() || len(sum.Categories) != 0 {
		t.Fatalf("expected empty summary, got %+v", sum)
	}
}
