// Package places wraps the third-party address autocomplete API used to
// prefill the address step.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/example/laundryhub/pkg/config"
)

type Suggestion struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Label      string `json:"label"`
}

type Client struct {
	httpClient *http.Client
	config     *config.PlacesConfig
}

func NewClient(cfg *config.PlacesConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// Suggest returns address completions for a free-text query. An empty query
// returns no suggestions without a network call.
func (c *Client) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.config.APIKey)
	if c.config.Country != "" {
		params.Set("country", c.config.Country)
	}

	reqURL := fmt.Sprintf("%s/v1/autocomplete?%s", c.config.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling places api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places api returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling response: %w", err)
	}

	return result.Suggestions, nil
}
