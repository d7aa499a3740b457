package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []core.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List transactions error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	category, err := s.store.GetCategory(r.Context(), in.CategoryID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "Category not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Get category error", "error", err, "category_id", in.CategoryID)
		writeError(w, http.StatusInternalServerError, "failed to resolve category")
		return
	}

	// The sign is forced to match the category type regardless of input.
	amount := core.NormalizeAmount(category.Type, in.Amount)

	tx, err := s.store.CreateTransaction(r.Context(), in.Date, amount, in.CategoryID, in.Description)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Create transaction error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	s.logger.InfoContext(r.Context(), "Transaction created",
		"id", tx.ID, "category", category.Name, "amount", tx.Amount.String())
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	tx, err := s.store.GetTransaction(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Get transaction error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var in core.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := s.store.GetTransaction(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Get transaction error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}

	// Merge the partial payload over the stored row.
	date := existing.Date
	if in.Date != nil {
		date = *in.Date
	}
	amount := existing.Amount
	if in.Amount != nil {
		amount = *in.Amount
	}
	categoryID := existing.CategoryID
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
	}
	description := existing.Description
	if in.Description != nil {
		description = *in.Description
	}

	// Renormalize whenever the amount or the category changed: a moved
	// transaction must take the sign of its new category.
	if in.Amount != nil || in.CategoryID != nil {
		category, err := s.store.GetCategory(r.Context(), categoryID)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Category not found")
			return
		}
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Get category error", "error", err, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "failed to resolve category")
			return
		}
		amount = core.NormalizeAmount(category.Type, amount)
	}

	tx, err := s.store.UpdateTransaction(r.Context(), id, date, amount, categoryID, description)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Update transaction error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	err = s.store.DeleteTransaction(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Delete transaction error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	summary, err := s.store.MonthSummary(r.Context(), year, month)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Month summary error", "error", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to compute month summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.store.ListBudgets(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List budgets error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list budgets")
		return
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleSetupCategories(w http.ResponseWriter, r *http.Request) {
	created, skipped, err := s.store.SeedDefaultCategories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Seed categories error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to seed categories")
		return
	}
	if created == nil {
		created = []string{}
	}
	if skipped == nil {
		skipped = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"created": created, "skipped": skipped})
}
