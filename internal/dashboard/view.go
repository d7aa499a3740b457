package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"fintrack/internal/report"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader() + "\n\n")

	switch {
	case m.confirmDelete != nil:
		b.WriteString(m.viewConfirmDelete())
	case m.form != nil:
		b.WriteString(m.form.View(m.styles))
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading " + m.periodLabel() + "…")
	default:
		b.WriteString(m.viewTab())
	}

	if m.errMsg != "" {
		b.WriteString("\n\n" + m.styles.Error.Render(m.errMsg))
	}
	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) viewHeader() string {
	tabs := make([]string, 0, int(tabCount))
	for t := TabOverview; t < tabCount; t++ {
		style := m.styles.TabInactive
		if t == m.tab {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return m.styles.Title.Render("fintrack") + "  " +
		m.styles.Period.Render(m.periodLabel()) + "  " +
		strings.Join(tabs, " · ")
}

func (m Model) viewTab() string {
	switch m.tab {
	case TabOverview:
		return m.viewOverview()
	case TabTransactions:
		return m.viewTransactions()
	case TabBudgets:
		return m.viewBudgets()
	case TabSavings:
		return m.viewSavings()
	case TabTrend:
		return m.viewTrend()
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	tx := m.confirmDelete
	return fmt.Sprintf("Delete transaction #%d (%s, %s)?\n\n%s",
		tx.ID, tx.Category.Name, m.format.Money(tx.Amount),
		m.styles.Muted.Render("y confirm · n cancel"))
}

func (m Model) viewOverview() string {
	card := func(label string, value decimal.Decimal, signed bool) string {
		style := m.styles.Period
		if signed {
			if value.IsNegative() {
				style = m.styles.Negative
			} else {
				style = m.styles.Positive
			}
		}
		return m.styles.Card.Render(
			m.styles.CardLabel.Render(label) + "\n" + style.Render(m.format.Money(value)))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Income", m.summary.Income, false),
		card("Expenses", m.summary.Expenses, true),
		card("Net", m.summary.Net, true),
	)

	var b strings.Builder
	b.WriteString(cards)

	if n := report.OverBudgetCount(report.BudgetRows(m.summary.Categories)); n > 0 {
		b.WriteString("\n\n" + m.styles.Banner.Render(fmt.Sprintf("%d categories over budget", n)))
	}

	b.WriteString("\n\n" + m.styles.CardLabel.Render("Recent transactions") + "\n")
	if len(m.transactions) == 0 {
		b.WriteString(m.styles.Muted.Render("No transactions yet. Press n to add one."))
		return b.String()
	}
	recent := m.transactions
	if len(recent) > 5 {
		recent = recent[:5]
	}
	for _, tx := range recent {
		amount := m.format.Money(tx.Amount)
		if tx.Amount.IsNegative() {
			amount = m.styles.Negative.Render(amount)
		} else {
			amount = m.styles.Positive.Render(amount)
		}
		b.WriteString(fmt.Sprintf("%s  %-16s %s\n", tx.Date, tx.Category.Name, amount))
	}
	return b.String()
}

func (m Model) viewTransactions() string {
	if len(m.transactions) == 0 {
		return m.styles.Muted.Render("No transactions yet. Press n to add one.")
	}
	return m.txTable.View() + "\n" +
		m.styles.Muted.Render(m.format.Count(len(m.transactions))+" transactions")
}

func (m Model) viewBudgets() string {
	rows := report.BudgetRows(m.summary.Categories)
	if len(rows) == 0 {
		return m.styles.Muted.Render("No spending recorded for " + m.periodLabel() + ".")
	}

	var b strings.Builder
	if n := report.OverBudgetCount(rows); n > 0 {
		b.WriteString(m.styles.Banner.Render(fmt.Sprintf("%d categories over budget", n)) + "\n\n")
	}
	maxSpent := decimal.Zero
	for _, r := range rows {
		if r.Spent.GreaterThan(maxSpent) {
			maxSpent = r.Spent
		}
	}

	b.WriteString(fmt.Sprintf("%-16s %12s %12s %12s  %-12s\n", "Category", "Spent", "Budget", "Remaining", "Status"))
	for _, r := range rows {
		// Pad before styling so the ANSI codes don't skew the columns.
		status := fmt.Sprintf("%-12s", string(r.Status))
		switch r.Status {
		case report.OverBudget:
			status = m.styles.Negative.Render(status)
		case report.OnTrack:
			status = m.styles.Positive.Render(status)
		default:
			status = m.styles.Muted.Render(status)
		}
		spentBar := bar(r.Spent, maxSpent)
		if r.Status == report.OverBudget {
			spentBar = m.styles.Negative.Render(spentBar)
		} else {
			spentBar = m.styles.Bar.Render(spentBar)
		}
		b.WriteString(fmt.Sprintf("%-16s %12s %12s %12s  %s %s\n",
			r.Name, m.format.Money(r.Spent), m.format.Money(r.Budget), m.format.Money(r.Remaining), status, spentBar))
	}
	b.WriteString("\n" + m.styles.Muted.Render(fmt.Sprintf("%s budget rows defined for %d", m.format.Count(len(m.budgets)), m.year)))
	return b.String()
}

func (m Model) viewSavings() string {
	s := report.SavingsBreakdown(m.transactions)
	if s.Total.IsZero() {
		return m.styles.Muted.Render("No savings recorded yet.")
	}

	var b strings.Builder
	b.WriteString("Total saved: " + m.styles.Positive.Render(m.format.Money(s.Total)) + "\n\n")
	b.WriteString(m.styles.CardLabel.Render("By category") + "\n")
	for _, c := range s.ByCategory {
		b.WriteString(fmt.Sprintf("%-16s %12s\n", c.Name, m.format.Money(c.Amount)))
	}
	b.WriteString("\n" + m.styles.CardLabel.Render("By month") + "\n")
	for _, mo := range s.ByMonth {
		b.WriteString(fmt.Sprintf("%-8s %12s\n", mo.Label, m.format.Money(mo.Amount)))
	}
	return b.String()
}

func (m Model) viewTrend() string {
	rollups := report.MonthlyRollups(m.transactions)
	if len(rollups) == 0 {
		return m.styles.Muted.Render("No transactions to chart yet.")
	}

	// Scale bars against the largest income or expense magnitude.
	max := decimal.Zero
	for _, r := range rollups {
		if r.Income.GreaterThan(max) {
			max = r.Income
		}
		if r.Expenses.GreaterThan(max) {
			max = r.Expenses
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-8s %12s %12s %12s %12s\n", "Month", "Income", "Expenses", "Net", "Savings"))
	for _, r := range rollups {
		net := fmt.Sprintf("%12s", m.format.Money(r.Net))
		if r.Net.IsNegative() {
			net = m.styles.Negative.Render(net)
		} else {
			net = m.styles.Positive.Render(net)
		}
		b.WriteString(fmt.Sprintf("%-8s %12s %12s %s %12s  %s\n",
			r.Label,
			m.format.Money(r.Income),
			m.format.Money(r.Expenses),
			net,
			m.format.Money(r.Savings),
			m.styles.Bar.Render(bar(r.Income, max))+m.styles.Negative.Render(bar(r.Expenses, max))))
	}
	return b.String()
}

// bar renders a magnitude as a proportional run of blocks, up to 20 wide.
func bar(v, max decimal.Decimal) string {
	if max.IsZero() || !v.IsPositive() {
		return ""
	}
	n := v.Div(max).Mul(decimal.NewFromInt(20)).IntPart()
	if n < 1 {
		n = 1
	}
	return strings.Repeat("▇", int(n))
}
