// Package api is the REST client adapter for the finance-tracker backend.
// It issues plain HTTP requests and returns parsed entities; callers decide
// retry and surfacing policy.
package api

import (
	"context"

	"fintrack/internal/core"
)

type CategoryReader interface {
	Categories(ctx context.Context) ([]core.Category, error)
}

type TransactionReader interface {
	Transactions(ctx context.Context) ([]core.Transaction, error)
}

type TransactionWriter interface {
	CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, in core.TransactionUpdate) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

type SummaryReader interface {
	MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error)
}

type BudgetReader interface {
	Budgets(ctx context.Context) ([]core.Budget, error)
}

// Backend is the full surface the dashboard consumes.
type Backend interface {
	CategoryReader
	TransactionReader
	TransactionWriter
	SummaryReader
	BudgetReader
}
