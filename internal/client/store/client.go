// Package store is the HTTP client of the transaction store API.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sangkips/salay-pos/internal/domain/draft"
	"github.com/sangkips/salay-pos/internal/domain/entity"
)

// Fallback messages used when the server gives no error text.
const (
	MsgSaveFailed    = "Failed to save transaction."
	MsgLoadFailed    = "Failed to load transactions."
	MsgReceiptFailed = "Failed to load receipt."
	MsgLoginFailed   = "Login failed."
)

const (
	defaultTimeout   = 15 * time.Second
	maxErrorBodySize = 64 << 10
)

// TransportError is a failed call: the server could not be reached (Status
// 0) or answered with a non-2xx status. Message is the server's error text
// when it sent one.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("store: %s", e.Message)
	}
	return fmt.Sprintf("store: %d %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the store API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	newKey  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithKeyFunc replaces the idempotency key generator.
func WithKeyFunc(f func() string) Option {
	return func(c *Client) { c.newKey = f }
}

// New creates a client for the API at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		newKey:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Create saves a validated draft. Every call carries a fresh idempotency key.
func (c *Client) Create(ctx context.Context, payload draft.Payload) (*entity.Transaction, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Message: MsgSaveFailed, Err: err}
	}

	var txn entity.Transaction
	headers := map[string]string{"Idempotency-Key": c.newKey()}
	if err := c.doJSON(ctx, http.MethodPost, "/api/transactions", body, headers, &txn, MsgSaveFailed); err != nil {
		return nil, err
	}
	return &txn, nil
}

// List fetches the listing for date (YYYY-MM-DD); blank means the server's today.
func (c *Client) List(ctx context.Context, date string) (*entity.DayListing, error) {
	return c.Search(ctx, date, "")
}

// Search is List with a customer name filter.
func (c *Client) Search(ctx context.Context, date, search string) (*entity.DayListing, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var listing entity.DayListing
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &listing, MsgLoadFailed); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Get fetches one transaction.
func (c *Client) Get(ctx context.Context, id uint) (*entity.Transaction, error) {
	var txn entity.Transaction
	path := "/api/transactions/" + strconv.FormatUint(uint64(id), 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &txn, MsgLoadFailed); err != nil {
		return nil, err
	}
	return &txn, nil
}

// Receipt fetches the printable HTML e-receipt.
func (c *Client) Receipt(ctx context.Context, id uint) ([]byte, error) {
	path := "/api/transactions/" + strconv.FormatUint(uint64(id), 10) + "/receipt"
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil, MsgReceiptFailed)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Message: MsgReceiptFailed, Err: err}
	}
	return page, nil
}

// LoginResult is a granted clerk session.
type LoginResult struct {
	Token     string    `json:"token"`
	Clerk     string    `json:"clerk"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login exchanges the clerk PIN for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, clerk, pin string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"clerk": clerk, "pin": pin})
	if err != nil {
		return nil, &TransportError{Message: MsgLoginFailed, Err: err}
	}

	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, nil, &out, MsgLoginFailed); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, headers map[string]string, out interface{}, fallback string) error {
	resp, err := c.do(ctx, method, path, body, headers, fallback)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// do sends the request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, body []byte, headers map[string]string, fallback string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Message: fallback, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Message: fallback, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, &TransportError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body, fallback),
		}
	}
	return resp, nil
}

// errorMessage pulls the "error" text out of a failed response body.
func errorMessage(r io.Reader, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBodySize)).Decode(&body); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(body.Error); msg != "" {
		return msg
	}
	return fallback
}

// IsTransportError reports whether err came from a failed store call.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
