package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
)

// loadCmd fetches everything the dashboard shows for the current period. The
// reads run concurrently and commit as a unit: any failure discards the whole
// batch so the view never mixes entities from different loads.
func (m Model) loadCmd() tea.Cmd {
	backend := m.backend
	gen, year, month := m.gen, m.year, m.month
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())

		var (
			categories   []core.Category
			transactions []core.Transaction
			summary      core.MonthSummary
			budgets      []core.Budget
		)
		g.Go(func() (err error) {
			categories, err = backend.Categories(ctx)
			return err
		})
		g.Go(func() (err error) {
			transactions, err = backend.Transactions(ctx)
			return err
		})
		g.Go(func() (err error) {
			summary, err = backend.MonthSummary(ctx, year, month)
			return err
		})
		g.Go(func() (err error) {
			budgets, err = backend.Budgets(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			return loadFailedMsg{gen: gen, err: err}
		}
		return loadedMsg{
			gen:          gen,
			categories:   categories,
			transactions: transactions,
			summary:      summary,
			budgets:      budgets,
		}
	}
}

// Mutations are strictly sequential: the write is awaited, then a fresh
// summary is fetched so the displayed totals always reflect server truth.

func (m Model) createCmd(in core.TransactionInput) tea.Cmd {
	backend := m.backend
	year, month := m.year, m.month
	return func() tea.Msg {
		ctx := context.Background()
		tx, err := backend.CreateTransaction(ctx, in)
		if err != nil {
			return mutationFailedMsg{op: "create transaction", err: err}
		}
		summary, err := backend.MonthSummary(ctx, year, month)
		if err != nil {
			return mutationFailedMsg{op: "refresh summary", err: err}
		}
		return txCreatedMsg{tx: tx, summary: summary}
	}
}

func (m Model) updateCmd(id int64, in core.TransactionUpdate) tea.Cmd {
	backend := m.backend
	year, month := m.year, m.month
	return func() tea.Msg {
		ctx := context.Background()
		tx, err := backend.UpdateTransaction(ctx, id, in)
		if err != nil {
			return mutationFailedMsg{op: "update transaction", err: err}
		}
		summary, err := backend.MonthSummary(ctx, year, month)
		if err != nil {
			return mutationFailedMsg{op: "refresh summary", err: err}
		}
		return txUpdatedMsg{tx: tx, summary: summary}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	backend := m.backend
	year, month := m.year, m.month
	return func() tea.Msg {
		ctx := context.Background()
		if err := backend.DeleteTransaction(ctx, id); err != nil {
			return mutationFailedMsg{op: "delete transaction", err: err}
		}
		summary, err := backend.MonthSummary(ctx, year, month)
		if err != nil {
			return mutationFailedMsg{op: "refresh summary", err: err}
		}
		return txDeletedMsg{id: id, summary: summary}
	}
}
