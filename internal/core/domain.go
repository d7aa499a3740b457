package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  CategoryType = "income"
	Expense CategoryType = "expense"
	Saving  CategoryType = "saving"
)

type (
	// CategoryType partitions categories into the three classes that drive
	// sign normalization and grouping.
	CategoryType string

	Category struct {
		ID   int64        `json:"id"`
		Name string       `json:"name"`
		Type CategoryType `json:"type"`
	}

	// Transaction is the client's copy of a backend transaction. Amount is
	// signed: negative for expense, non-negative for income and saving.
	Transaction struct {
		ID          int64           `json:"id"`
		Date        Date            `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		CategoryID  int64           `json:"category_id"`
		Description string          `json:"description,omitempty"`
		Category    Category        `json:"category"`
	}

	// Budget rows are read-only from the client's perspective.
	Budget struct {
		ID         int64           `json:"id"`
		Year       int             `json:"year"`
		Month      int             `json:"month"`
		CategoryID int64           `json:"category_id"`
		Amount     decimal.Decimal `json:"amount"`
	}

	// SummaryCategory is one per-category line of a server-computed month
	// summary.
	SummaryCategory struct {
		CategoryID int64           `json:"category_id"`
		Name       string          `json:"name"`
		Type       CategoryType    `json:"type"`
		Spent      decimal.Decimal `json:"spent"`
		Budget     decimal.Decimal `json:"budget"`
		Remaining  decimal.Decimal `json:"remaining"`
	}

	// MonthSummary is computed by the backend for a single selected month.
	MonthSummary struct {
		Year       int               `json:"year"`
		Month      int               `json:"month"`
		Income     decimal.Decimal   `json:"income"`
		Expenses   decimal.Decimal   `json:"expenses"`
		Net        decimal.Decimal   `json:"net"`
		Categories []SummaryCategory `json:"categories"`
	}

	// TransactionInput is a create payload. Amount carries whatever sign the
	// user typed; normalization happens against the selected category.
	TransactionInput struct {
		Date        Date            `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		CategoryID  int64           `json:"category_id"`
		Description string          `json:"description,omitempty"`
	}

	// TransactionUpdate is a partial update payload; nil fields are left
	// untouched by the backend.
	TransactionUpdate struct {
		Date        *Date            `json:"date,omitempty"`
		Amount      *decimal.Decimal `json:"amount,omitempty"`
		CategoryID  *int64           `json:"category_id,omitempty"`
		Description *string          `json:"description,omitempty"`
	}
)

var (
	ErrMissingDate     = errors.New("missing date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingCategory = errors.New("missing category")
	ErrLongDescription = errors.New("description too long (max 255 characters)")
)

// Valid reports whether t is one of the three known category types.
func (t CategoryType) Valid() bool {
	switch t {
	case Income, Expense, Saving:
		return true
	}
	return false
}

// NormalizeAmount forces the sign of amount to match the category type:
// expenses are stored as -abs(amount), everything else as abs(amount).
// The rule is idempotent.
func NormalizeAmount(t CategoryType, amount decimal.Decimal) decimal.Decimal {
	if t == Expense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// DisplayAmount inverts normalization for form display: expense amounts are
// shown as their non-negative magnitude, the sign being implied by the
// category.
func DisplayAmount(t CategoryType, amount decimal.Decimal) decimal.Decimal {
	if t == Expense {
		return amount.Abs()
	}
	return amount
}

func (in TransactionInput) Validate() error {
	if in.Date.IsZero() {
		return ErrMissingDate
	}
	if in.Amount.IsZero() {
		return ErrInvalidAmount
	}
	if in.CategoryID <= 0 {
		return ErrMissingCategory
	}
	if len(strings.TrimSpace(in.Description)) > 255 {
		return ErrLongDescription
	}
	return nil
}
