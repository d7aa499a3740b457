package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

type CategorySavings struct {
	Name   string
	Amount decimal.Decimal
}

type MonthlySavings struct {
	Key    string
	Label  string
	Amount decimal.Decimal
}

// SavingsSummary breaks saving transactions down by category and by month.
// Budgets play no part here.
type SavingsSummary struct {
	Total      decimal.Decimal
	ByCategory []CategorySavings
	ByMonth    []MonthlySavings
}

// SavingsBreakdown filters transactions to saving categories and sums their
// magnitudes by category name (first-seen order) and by calendar month
// (chronological order). Total is the sum over all categories.
func SavingsBreakdown(txs []core.Transaction) SavingsSummary {
	var s SavingsSummary

	byCategory := make(map[string]int)
	byMonth := make(map[string]int)

	for _, tx := range txs {
		if tx.Category.Type != core.Saving {
			continue
		}
		amount := tx.Amount.Abs()

		name := tx.Category.Name
		if name == "" {
			name = "Savings"
		}
		if i, ok := byCategory[name]; ok {
			s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(amount)
		} else {
			byCategory[name] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategorySavings{Name: name, Amount: amount})
		}

		key := tx.Date.MonthKey()
		if i, ok := byMonth[key]; ok {
			s.ByMonth[i].Amount = s.ByMonth[i].Amount.Add(amount)
		} else {
			byMonth[key] = len(s.ByMonth)
			s.ByMonth = append(s.ByMonth, MonthlySavings{Key: key, Label: tx.Date.MonthLabel(), Amount: amount})
		}

		s.Total = s.Total.Add(amount)
	}

	sort.Slice(s.ByMonth, func(i, j int) bool { return s.ByMonth[i].Key < s.ByMonth[j].Key })
	return s
}
