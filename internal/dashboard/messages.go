package dashboard

import "fintrack/internal/core"

// loadedMsg carries the result of a full period load. The generation ties it
// to the period that was current when the load started; a stale generation
// means the user has already moved on and the payload is discarded.
type loadedMsg struct {
	gen          int
	categories   []core.Category
	transactions []core.Transaction
	summary      core.MonthSummary
	budgets      []core.Budget
}

type loadFailedMsg struct {
	gen int
	err error
}

type txCreatedMsg struct {
	tx      core.Transaction
	summary core.MonthSummary
}

type txUpdatedMsg struct {
	tx      core.Transaction
	summary core.MonthSummary
}

type txDeletedMsg struct {
	id      int64
	summary core.MonthSummary
}

type mutationFailedMsg struct {
	op  string
	err error
}
