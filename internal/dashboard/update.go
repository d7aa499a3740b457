package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"fintrack/internal/core"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - 14; h > 4 {
			m.txTable.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if msg.gen != m.gen {
			m.logger.Debug("Discarding stale load", "gen", msg.gen, "current", m.gen)
			return m, nil
		}
		m.categories = msg.categories
		m.transactions = msg.transactions
		m.summary = msg.summary
		m.budgets = msg.budgets
		m.loading = false
		m.errMsg = ""
		m.refreshTable()
		return m, nil

	case loadFailedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.errMsg = "Failed to load data for " + m.periodLabel()
		m.logger.Error("Load failed", "error", msg.err, "period", m.periodLabel())
		return m, nil

	case txCreatedMsg:
		m.transactions = append([]core.Transaction{msg.tx}, m.transactions...)
		m.summary = msg.summary
		m.errMsg = ""
		m.refreshTable()
		m.logger.Info("Transaction created", "id", msg.tx.ID)
		return m, nil

	case txUpdatedMsg:
		for i := range m.transactions {
			if m.transactions[i].ID == msg.tx.ID {
				m.transactions[i] = msg.tx
				break
			}
		}
		m.summary = msg.summary
		m.errMsg = ""
		m.refreshTable()
		return m, nil

	case txDeletedMsg:
		for i := range m.transactions {
			if m.transactions[i].ID == msg.id {
				m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
				break
			}
		}
		m.summary = msg.summary
		m.errMsg = ""
		m.refreshTable()
		return m, nil

	case mutationFailedMsg:
		m.errMsg = "Failed to " + msg.op
		m.logger.Error("Mutation failed", "op", msg.op, "error", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete != nil {
		return m.handleConfirmKey(msg)
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.PrevMonth):
		return m.changeMonth(-1)

	case key.Matches(msg, m.keys.NextMonth):
		return m.changeMonth(1)

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.New):
		if len(m.categories) == 0 {
			m.errMsg = "No categories loaded"
			return m, nil
		}
		m.form = newTransactionForm(m.categories, core.NewDate(m.year, m.month, 1))
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if tx := m.selectedTransaction(); tx != nil && len(m.categories) > 0 {
			m.form = newEditForm(*tx, m.categories)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete = m.selectedTransaction()
		return m, nil
	}

	if m.tab == TabTransactions {
		var cmd tea.Cmd
		m.txTable, cmd = m.txTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmDelete.ID
		m.confirmDelete = nil
		return m, m.deleteCmd(id)
	case "n", "esc":
		m.confirmDelete = nil
		return m, nil
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "enter":
		in, err := m.form.submit()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		editingID := m.form.editingID
		m.form = nil
		if editingID != 0 {
			update := core.TransactionUpdate{
				Date:        &in.Date,
				Amount:      &in.Amount,
				CategoryID:  &in.CategoryID,
				Description: &in.Description,
			}
			return m, m.updateCmd(editingID, update)
		}
		return m, m.createCmd(in)
	}

	cmd := m.form.Update(msg)
	return m, cmd
}

// changeMonth moves the selected period, wrapping December and January
// across the year boundary, and starts a fresh batch load.
func (m Model) changeMonth(delta int) (Model, tea.Cmd) {
	m.month += delta
	switch {
	case m.month < 1:
		m.month = 12
		m.year--
	case m.month > 12:
		m.month = 1
		m.year++
	}
	return m.reload()
}

func (m Model) reload() (Model, tea.Cmd) {
	m.gen++
	m.loading = true
	m.errMsg = ""
	return m, tea.Batch(m.spinner.Tick, m.loadCmd())
}
