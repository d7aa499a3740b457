package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

const maxErrorBody = 4 << 10

// Client talks to the backend over HTTP. It performs no retries and keeps no
// cache; every call is a single request.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *applog.Logger
}

// Ensure interface conformance
var _ Backend = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

func WithLogger(logger *applog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the backend at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		logger:  applog.New(applog.Config{Component: "api"}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Categories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Transactions(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction submits a new transaction. The payload is validated
// before any network call; the amount sign should already be normalized for
// the selected category.
func (c *Client) CreateTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	var out core.Transaction
	if err := in.Validate(); err != nil {
		return out, err
	}
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, in, &out); err != nil {
		return core.Transaction{}, err
	}
	return out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, in core.TransactionUpdate) (core.Transaction, error) {
	var out core.Transaction
	path := "/transactions/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPut, path, nil, in, &out); err != nil {
		return core.Transaction{}, err
	}
	return out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	path := "/transactions/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))

	var out core.MonthSummary
	if err := c.do(ctx, http.MethodGet, "/summaries/month", query, nil, &out); err != nil {
		return core.MonthSummary{}, err
	}
	return out, nil
}

func (c *Client) Budgets(ctx context.Context) ([]core.Budget, error) {
	var out []core.Budget
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues one request and decodes the response into out (when non-nil).
// Transport failures become *RequestError, non-2xx responses *StatusError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Request failed", "op", op, "error", err)
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Request completed",
		"op", op, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
