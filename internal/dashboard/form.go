package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

type formField int

const (
	fieldDate formField = iota
	fieldAmount
	fieldCategory
	fieldDescription
	fieldCount
)

// transactionForm collects the fields of a create or edit submission. The
// amount is always entered as a non-negative magnitude; the sign is forced
// from the selected category on submit.
type transactionForm struct {
	date        textinput.Model
	amount      textinput.Model
	description textinput.Model

	categories []core.Category
	catIndex   int

	focus     formField
	editingID int64 // zero means create
	errMsg    string
}

func newTransactionForm(categories []core.Category, defaultDate core.Date) *transactionForm {
	f := &transactionForm{categories: categories}

	f.date = textinput.New()
	f.date.Placeholder = "YYYY-MM-DD"
	f.date.CharLimit = 10
	f.date.Width = 12
	f.date.SetValue(defaultDate.String())
	f.date.Focus()

	f.amount = textinput.New()
	f.amount.Placeholder = "0.00"
	f.amount.CharLimit = 16
	f.amount.Width = 12

	f.description = textinput.New()
	f.description.Placeholder = "optional"
	f.description.CharLimit = 255
	f.description.Width = 32

	return f
}

// newEditForm prefills the form from an existing transaction. Expense
// amounts are shown as their magnitude; the category implies the sign.
func newEditForm(tx core.Transaction, categories []core.Category) *transactionForm {
	f := newTransactionForm(categories, tx.Date)
	f.editingID = tx.ID
	f.amount.SetValue(core.DisplayAmount(tx.Category.Type, tx.Amount).String())
	f.description.SetValue(tx.Description)
	for i, c := range categories {
		if c.ID == tx.CategoryID {
			f.catIndex = i
			break
		}
	}
	return f
}

func (f *transactionForm) category() (core.Category, bool) {
	if f.catIndex < 0 || f.catIndex >= len(f.categories) {
		return core.Category{}, false
	}
	return f.categories[f.catIndex], true
}

// submit parses and validates the fields, normalizing the amount's sign to
// the selected category. A validation failure never reaches the network.
func (f *transactionForm) submit() (core.TransactionInput, error) {
	date, err := core.ParseDate(f.date.Value())
	if err != nil {
		return core.TransactionInput{}, core.ErrMissingDate
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(f.amount.Value()))
	if err != nil {
		return core.TransactionInput{}, core.ErrInvalidAmount
	}
	cat, ok := f.category()
	if !ok {
		return core.TransactionInput{}, core.ErrMissingCategory
	}

	in := core.TransactionInput{
		Date:        date,
		Amount:      core.NormalizeAmount(cat.Type, amount),
		CategoryID:  cat.ID,
		Description: strings.TrimSpace(f.description.Value()),
	}
	if err := in.Validate(); err != nil {
		return core.TransactionInput{}, err
	}
	return in, nil
}

func (f *transactionForm) setFocus(field formField) {
	f.focus = field
	f.date.Blur()
	f.amount.Blur()
	f.description.Blur()
	switch field {
	case fieldDate:
		f.date.Focus()
	case fieldAmount:
		f.amount.Focus()
	case fieldDescription:
		f.description.Focus()
	}
}

func (f *transactionForm) nextField() {
	f.setFocus((f.focus + 1) % fieldCount)
}

func (f *transactionForm) prevField() {
	f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *transactionForm) cycleCategory(delta int) {
	if len(f.categories) == 0 {
		return
	}
	f.catIndex = (f.catIndex + delta + len(f.categories)) % len(f.categories)
}

// Update routes key input to the focused field. Tab order wraps in both
// directions; left/right cycle the category when it has focus.
func (f *transactionForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.nextField()
			return nil
		case "shift+tab", "up":
			f.prevField()
			return nil
		case "left":
			if f.focus == fieldCategory {
				f.cycleCategory(-1)
				return nil
			}
		case "right":
			if f.focus == fieldCategory {
				f.cycleCategory(1)
				return nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f *transactionForm) View(styles Styles) string {
	title := "New transaction"
	if f.editingID != 0 {
		title = fmt.Sprintf("Edit transaction #%d", f.editingID)
	}

	catLabel := "none"
	if cat, ok := f.category(); ok {
		catLabel = fmt.Sprintf("%s (%s)", cat.Name, cat.Type)
	}
	if f.focus == fieldCategory {
		catLabel = "◀ " + catLabel + " ▶"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title) + "\n\n")
	b.WriteString(styles.FormLabel.Render("Date") + f.date.View() + "\n")
	b.WriteString(styles.FormLabel.Render("Amount") + f.amount.View() + "\n")
	b.WriteString(styles.FormLabel.Render("Category") + catLabel + "\n")
	b.WriteString(styles.FormLabel.Render("Description") + f.description.View() + "\n")
	if f.errMsg != "" {
		b.WriteString("\n" + styles.FormError.Render(f.errMsg) + "\n")
	}
	b.WriteString("\n" + styles.Muted.Render("enter save · esc cancel · tab next field"))
	return b.String()
}
