// Package payment talks to the hosted checkout gateway. One call creates a
// time-boxed checkout session the browser is redirected to; confirmation comes
// back over the gateway's webhook, which is handled elsewhere.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/laundryhub/pkg/config"
)

// ErrSessionRejected covers gateway-side refusals (bad amount, expired key).
var ErrSessionRejected = errors.New("payment gateway rejected the session")

type SessionRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	RedirectURL string `json:"redirectUrl"`
	WebhookURL  string `json:"webhookUrl"`
}

type Session struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
}

type Client struct {
	httpClient *http.Client
	config     *config.PaymentConfig
}

func NewClient(cfg *config.PaymentConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// CreateSession asks the gateway for a checkout session covering amount.
// Amounts go over the wire with two decimals, the way the gateway expects.
func (c *Client) CreateSession(ctx context.Context, amount decimal.Decimal, description string) (*Session, error) {
	reqBody := SessionRequest{
		Amount:      amount.StringFixed(2),
		Currency:    c.config.Currency,
		Description: description,
		RedirectURL: c.config.RedirectURL,
		WebhookURL:  c.config.WebhookURL,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling session request: %w", err)
	}

	url := c.config.BaseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s", ErrSessionRejected, string(body))
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("error unmarshalling response: %w", err)
	}
	if session.CheckoutURL == "" {
		return nil, fmt.Errorf("payment gateway returned no checkout url")
	}

	return &session, nil
}
