package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL), srv
}

func TestCategories(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/categories" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]core.Category{
			{ID: 1, Name: "Salary", Type: core.Income},
			{ID: 2, Name: "Groceries", Type: core.Expense},
		})
	})

	cats, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 2 || cats[1].Type != core.Expense {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}

func TestCreateTransaction(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transactions" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type = %s", ct)
		}
		var in core.TransactionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if in.Date.String() != "2024-03-05" || !in.Amount.Equal(decimal.NewFromInt(-50)) {
			t.Fatalf("payload = %+v", in)
		}
		_ = json.NewEncoder(w).Encode(core.Transaction{
			ID: 7, Date: in.Date, Amount: in.Amount, CategoryID: in.CategoryID,
			Category: core.Category{ID: in.CategoryID, Name: "Groceries", Type: core.Expense},
		})
	})

	tx, err := client.CreateTransaction(context.Background(), core.TransactionInput{
		Date:       core.NewDate(2024, 3, 5),
		Amount:     decimal.NewFromInt(-50),
		CategoryID: 2,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.ID != 7 || tx.Category.Name != "Groceries" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestCreateTransactionValidatesBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.CreateTransaction(context.Background(), core.TransactionInput{})
	if !errors.Is(err, core.ErrMissingDate) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("invalid payload reached the network (%d calls)", calls.Load())
	}
}

func TestDeleteTransaction(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/transactions/42" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteTransaction(context.Background(), 42); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
}

func TestMonthSummaryQuery(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summaries/month" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("year") != "2024" || q.Get("month") != "3" {
			t.Fatalf("query = %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(core.MonthSummary{Year: 2024, Month: 3})
	})

	sum, err := client.MonthSummary(context.Background(), 2024, 3)
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if sum.Year != 2024 || sum.Month != 3 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestStatusError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Transaction not found"}`, http.StatusNotFound)
	})

	err := client.DeleteTransaction(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("IsStatus(404) false for %v", err)
	}
	if se.Body == "" {
		t.Fatal("expected response body to be captured")
	}
}

func TestRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(srv.URL)
	srv.Close()

	_, err := client.Transactions(context.Background())
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
}
