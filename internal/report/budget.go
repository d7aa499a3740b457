package report

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

type BudgetStatus string

const (
	NoBudget   BudgetStatus = "No budget"
	OverBudget BudgetStatus = "Over budget"
	OnTrack    BudgetStatus = "On track"
)

// BudgetRow compares one non-income category's spending against its budget
// for the selected month.
type BudgetRow struct {
	CategoryID int64
	Name       string
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Status     BudgetStatus
}

// Classify is a total function of (spent, budget): no budget set, over
// budget, or on track.
func Classify(spent, budget decimal.Decimal) BudgetStatus {
	switch {
	case budget.IsZero():
		return NoBudget
	case spent.GreaterThan(budget):
		return OverBudget
	default:
		return OnTrack
	}
}

// BudgetRows derives the spend-vs-budget comparison from a server-computed
// month summary. Income categories are excluded; spent and budget are taken
// as magnitudes.
func BudgetRows(categories []core.SummaryCategory) []BudgetRow {
	rows := make([]BudgetRow, 0, len(categories))
	for _, c := range categories {
		if c.Type == core.Income {
			continue
		}
		spent := c.Spent.Abs()
		budget := c.Budget.Abs()
		rows = append(rows, BudgetRow{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Budget:     budget,
			Spent:      spent,
			Remaining:  budget.Sub(spent),
			Status:     Classify(spent, budget),
		})
	}
	return rows
}

// OverBudgetCount returns how many rows exceed a non-zero budget.
func OverBudgetCount(rows []BudgetRow) int {
	n := 0
	for _, r := range rows {
		if r.Status == OverBudget {
			n++
		}
	}
	return n
}
