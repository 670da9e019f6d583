// Package comms talks to the third-party communications graph API that
// Briefly pulls call transcripts from.
package comms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brieflyhq/briefly/pkg/config"
)

// Client is a minimal client for the communications graph API
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a communications API client
func NewClient(cfg *config.CommsConfig) *Client {
	timeout := 30 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	var baseURL, token string
	if cfg != nil {
		baseURL = cfg.BaseURL
		token = cfg.Token
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client has an endpoint to talk to
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// CallRecord is the transcript payload for one recorded call
type CallRecord struct {
	ID         string `json:"id"`
	Subject    string `json:"subject"`
	Transcript string `json:"transcript"`
}

// FetchTranscript retrieves the transcript text for a recorded call
func (c *Client) FetchTranscript(ctx context.Context, callID string) (*CallRecord, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("communications API is not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/calls/%s/transcript", c.baseURL, callID)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("call %s not found", callID)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("communications API returned status %d", resp.StatusCode)
	}

	var record CallRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode call record: %w", err)
	}
	if record.Transcript == "" {
		return nil, fmt.Errorf("call %s has no transcript", callID)
	}

	return &record, nil
}
