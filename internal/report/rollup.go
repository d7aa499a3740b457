// Package report derives chart and table views from loaded entities. All
// functions are pure: they hold no state and are recomputed from the
// canonical lists whenever those change.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// MonthlyRollup aggregates one calendar month of transactions.
type MonthlyRollup struct {
	Key      string // "YYYY-MM", sorts chronologically
	Label    string // "MM/YYYY"
	Income   decimal.Decimal
	Expenses decimal.Decimal // magnitude of expense transactions
	Net      decimal.Decimal // income minus expenses; savings excluded
	Savings  decimal.Decimal // magnitude of saving transactions
}

// MonthlyRollups groups transactions by calendar month and accumulates
// income, expense and saving totals per group. Months with no transactions
// are omitted; groups are ordered chronologically regardless of input order.
//
// Net is income minus expenses. Saving transactions do not reduce net.
func MonthlyRollups(txs []core.Transaction) []MonthlyRollup {
	groups := make(map[string]*MonthlyRollup)
	for _, tx := range txs {
		key := tx.Date.MonthKey()
		g, ok := groups[key]
		if !ok {
			g = &MonthlyRollup{Key: key, Label: tx.Date.MonthLabel()}
			groups[key] = g
		}
		switch tx.Category.Type {
		case core.Income:
			g.Income = g.Income.Add(tx.Amount)
		case core.Expense:
			g.Expenses = g.Expenses.Add(tx.Amount.Abs())
		case core.Saving:
			g.Savings = g.Savings.Add(tx.Amount.Abs())
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]MonthlyRollup, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		g.Net = g.Income.Sub(g.Expenses)
		out = append(out, *g)
	}
	return out
}
