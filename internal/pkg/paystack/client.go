package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/config"
)

var hundred = decimal.NewFromInt(100)

// Client is a thin wrapper over the Paystack REST API. Amounts cross the
// wire in kobo; callers work in Naira and the client converts.
type Client struct {
	secretKey   string
	baseURL     string
	callbackURL string
	httpClient  *http.Client
}

func NewClient(cfg config.PaystackConfig) *Client {
	return &Client{
		secretKey:   cfg.SecretKey,
		baseURL:     cfg.BaseURL,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError represents a Paystack API error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paystack API error [%d]: %s", e.StatusCode, e.Message)
}

// InitializeRequest starts a hosted checkout for one charge.
type InitializeRequest struct {
	Reference string          `json:"reference"`
	Email     string          `json:"email"`
	Amount    decimal.Decimal `json:"-"`
	Metadata  map[string]string
}

// InitializeResponse carries the checkout handoff.
type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// TransactionStatus is one verified transaction.
type TransactionStatus struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"` // success, failed, abandoned
	Amount    decimal.Decimal `json:"-"`      // Naira
	Channel   string          `json:"channel"`
	PaidAt    string          `json:"paid_at"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction creates a pending charge and returns the hosted
// payment page URL.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	body := map[string]any{
		"reference": req.Reference,
		"email":     req.Email,
		"amount":    req.Amount.Mul(hundred).IntPart(), // kobo
		"currency":  "NGN",
	}
	if c.callbackURL != "" {
		body["callback_url"] = c.callbackURL
	}
	if len(req.Metadata) > 0 {
		body["metadata"] = req.Metadata
	}

	data, err := c.post(ctx, "/transaction/initialize", body)
	if err != nil {
		return nil, err
	}

	var out InitializeResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode initialize response: %w", err)
	}
	return &out, nil
}

// VerifyTransaction fetches the authoritative state of one charge.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*TransactionStatus, error) {
	data, err := c.get(ctx, "/transaction/verify/"+reference)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"` // kobo
		Channel   string `json:"channel"`
		PaidAt    string `json:"paid_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}

	return &TransactionStatus{
		Reference: raw.Reference,
		Status:    raw.Status,
		Amount:    decimal.NewFromInt(raw.Amount).Div(hundred),
		Channel:   raw.Channel,
		PaidAt:    raw.PaidAt,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode paystack response: %w", err)
	}
	if resp.StatusCode >= 400 || !envelope.Status {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	return envelope.Data, nil
}
