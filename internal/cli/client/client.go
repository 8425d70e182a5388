package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/equitydash/equitydash/internal/models"
)

const requestIDHeader = "X-Request-ID"

// ErrMalformedResponse is returned when a 2xx response cannot be used
var ErrMalformedResponse = errors.New("malformed response from server")

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Body)
}

// IsRejection reports whether err is an explicit authentication rejection
// (401 or 403) from a reachable server
func IsRejection(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden
}

// TokenSource supplies the bearer token replayed on authorized requests
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Client represents an HTTP client for the stock plan API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    *time.Duration
	tokens     TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A nil client keeps the default.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout; zero means no timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// New creates a new API client for baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.timeout != nil {
		// Applied to a copy; the caller's client may be shared
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c
}

// SetTokenSource sets the bearer token source after construction
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges credentials for a token and user profile
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*LoginResponse, error) {
	jsonData, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var loginResp LoginResponse
	if err := c.do(req, &loginResp); err != nil {
		return nil, err
	}

	if loginResp.Token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrMalformedResponse)
	}
	if loginResp.User == nil || loginResp.User.ID == "" {
		return nil, fmt.Errorf("%w: missing user", ErrMalformedResponse)
	}

	return &loginResp, nil
}

// GetStockBalances returns the employee's current holdings
func (c *Client) GetStockBalances(ctx context.Context) ([]models.StockBalance, error) {
	var balances []models.StockBalance
	if err := c.getJSON(ctx, "/stock/balances", &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// GetVestingSchedules returns the employee's vesting tranches
func (c *Client) GetVestingSchedules(ctx context.Context) ([]models.VestingSchedule, error) {
	var schedules []models.VestingSchedule
	if err := c.getJSON(ctx, "/stock/vesting", &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetTransactions returns the employee's transaction history
func (c *Client) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := c.getJSON(ctx, "/stock/transactions", &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, ulid.Make().String())
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}
