// Package dashboard is the interactive terminal client. A single model owns
// all view state: the selected period, the loaded entity lists, the
// server-computed month summary and the transient editing state. Every state
// change is a named transition driven by a message; derived views (monthly
// trend, budget comparison, savings breakdown) are recomputed from the
// canonical lists on render and never stored.
package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/api"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

type Tab int

const (
	TabOverview Tab = iota
	TabTransactions
	TabBudgets
	TabSavings
	TabTrend
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabTransactions:
		return "Transactions"
	case TabBudgets:
		return "Budgets"
	case TabSavings:
		return "Savings"
	case TabTrend:
		return "Trend"
	}
	return "Unknown"
}

type keyMap struct {
	Quit      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	NextTab   key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Reload    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		PrevMonth: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next month")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevMonth, k.NextMonth, k.New, k.Edit, k.Delete, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevMonth, k.NextMonth, k.Reload},
		{k.New, k.Edit, k.Delete, k.Quit},
	}
}

type Model struct {
	backend api.Backend
	logger  *applog.Logger

	format  Formatter
	styles  Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	txTable table.Model

	year  int
	month int
	gen   int // increments on every period change; stale loads are discarded

	categories   []core.Category
	transactions []core.Transaction
	summary      core.MonthSummary
	budgets      []core.Budget

	loading bool
	errMsg  string

	tab           Tab
	form          *transactionForm
	confirmDelete *core.Transaction

	width  int
	height int
}

func New(backend api.Backend, currencyCode string, logger *applog.Logger) Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 28},
		{Title: "Amount", Width: 14},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true), table.WithHeight(12))
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).BorderBottom(true)
	ts.Selected = ts.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	t.SetStyles(ts)

	now := time.Now()
	return Model{
		backend: backend,
		logger:  logger.WithComponent("dashboard"),
		format:  NewFormatter(currencyCode),
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		txTable: t,
		year:    now.Year(),
		month:   int(now.Month()),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// periodLabel renders the selected period as zero-padded MM/YYYY.
func (m Model) periodLabel() string {
	return fmt.Sprintf("%02d/%d", m.month, m.year)
}

// selectedTransaction resolves the table cursor to the backing list. Rows
// are built in list order so the cursor is a direct index.
func (m Model) selectedTransaction() *core.Transaction {
	i := m.txTable.Cursor()
	if i < 0 || i >= len(m.transactions) {
		return nil
	}
	tx := m.transactions[i]
	return &tx
}

// tableLimit caps the transaction table at the most recent entries; older
// rows still feed the trend and savings aggregates.
const tableLimit = 50

func (m *Model) refreshTable() {
	txs := m.transactions
	if len(txs) > tableLimit {
		txs = txs[:tableLimit]
	}
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			tx.Date.String(),
			tx.Category.Name,
			tx.Description,
			m.format.Money(tx.Amount),
		})
	}
	m.txTable.SetRows(rows)
}
