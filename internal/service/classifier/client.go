// Package classifier is the HTTP client for the external sentiment
// inference service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"georisk/internal/domain/risk"
)

// Client talks to the sentiment inference service. Batch failures are
// handled by the caller (the sentiment analyzer falls open to neutral),
// so this client just reports errors plainly.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var _ risk.Classifier = (*Client)(nil)

// NewClient creates a reusable inference client.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Classify sends one batch of texts for sentiment scoring.
func (c *Client) Classify(ctx context.Context, batch []string) ([]risk.Prediction, error) {
	payload := map[string]any{"texts": batch}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var predictions []risk.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(predictions) != len(batch) {
		return nil, fmt.Errorf("got %d predictions for %d texts", len(predictions), len(batch))
	}
	return predictions, nil
}
