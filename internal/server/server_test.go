package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	s := NewServer(":0", store, applog.New(applog.Config{Component: "test"}))
	srv := httptest.NewServer(s.Handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func setup(t *testing.T, srv *httptest.Server) map[string]core.Category {
	t.Helper()
	if resp := doJSON(t, http.MethodPost, srv.URL+"/setup/default-categories", nil, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("setup status = %d", resp.StatusCode)
	}
	var cats []core.Category
	if resp := doJSON(t, http.MethodGet, srv.URL+"/categories", nil, &cats); resp.StatusCode != http.StatusOK {
		t.Fatalf("categories status = %d", resp.StatusCode)
	}
	byName := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	return byName
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
	}
}

func TestCreateNormalizesSign(t *testing.T) {
	srv := newTestServer(t)
	cats := setup(t, srv)

	// A positive amount on an expense category is stored negative.
	var tx core.Transaction
	resp := doJSON(t, http.MethodPost, srv.URL+"/transactions", core.TransactionInput{
		Date:       core.NewDate(2024, 3, 5),
		Amount:     decimal.NewFromInt(75),
		CategoryID: cats["Groceries"].ID,
	}, &tx)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(-75)) {
		t.Fatalf("amount = %s, want -75", tx.Amount)
	}

	// A negative amount on a saving category is stored positive.
	resp = doJSON(t, http.MethodPost, srv.URL+"/transactions", core.TransactionInput{
		Date:       core.NewDate(2024, 3, 6),
		Amount:     decimal.NewFromInt(-150),
		CategoryID: cats["Savings"].ID,
	}, &tx)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("amount = %s, want 150", tx.Amount)
	}
}

func TestCreateUnknownCategory(t *testing.T) {
	srv := newTestServer(t)
	setup(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/transactions", core.TransactionInput{
		Date:       core.NewDate(2024, 3, 5),
		Amount:     decimal.NewFromInt(10),
		CategoryID: 999,
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateRenormalizesOnCategoryChange(t *testing.T) {
	srv := newTestServer(t)
	cats := setup(t, srv)

	var tx core.Transaction
	doJSON(t, http.MethodPost, srv.URL+"/transactions", core.TransactionInput{
		Date:       core.NewDate(2024, 3, 5),
		Amount:     decimal.NewFromInt(80),
		CategoryID: cats["Groceries"].ID,
	}, &tx)

	// Moving the transaction to a saving category flips the stored sign.
	savingsID := cats["Savings"].ID
	var updated core.Transaction
	resp := doJSON(t, http.MethodPut, srv.URL+"/transactions/"+jsonID(tx.ID),
		core.TransactionUpdate{CategoryID: &savingsID}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("amount = %s, want 80", updated.Amount)
	}
	if updated.Category.Name != "Savings" {
		t.Fatalf("category = %s", updated.Category.Name)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv := newTestServer(t)
	cats := setup(t, srv)

	var tx core.Transaction
	doJSON(t, http.MethodPost, srv.URL+"/transactions", core.TransactionInput{
		Date:       core.NewDate(2024, 3, 5),
		Amount:     decimal.NewFromInt(10),
		CategoryID: cats["Groceries"].ID,
	}, &tx)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/transactions/"+jsonID(tx.ID), nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/transactions/"+jsonID(tx.ID), nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d", resp.StatusCode)
	}
}

func TestMonthSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	cats := setup(t, srv)

	doJSON(t, http.MethodPost, srv.URL+"/transactions", core.TransactionInput{
		Date:       core.NewDate(2024, 3, 1),
		Amount:     decimal.NewFromInt(2000),
		CategoryID: cats["Salary"].ID,
	}, nil)
	doJSON(t, http.MethodPost, srv.URL+"/transactions", core.TransactionInput{
		Date:       core.NewDate(2024, 3, 5),
		Amount:     decimal.NewFromInt(50),
		CategoryID: cats["Groceries"].ID,
	}, nil)

	var sum core.MonthSummary
	resp := doJSON(t, http.MethodGet, srv.URL+"/summaries/month?year=2024&month=3", nil, &sum)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d", resp.StatusCode)
	}
	if !sum.Income.Equal(decimal.NewFromInt(2000)) || !sum.Net.Equal(decimal.NewFromInt(1950)) {
		t.Fatalf("income = %s net = %s", sum.Income, sum.Net)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/summaries/month?year=2024&month=13", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid month status = %d", resp.StatusCode)
	}
}

func jsonID(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
