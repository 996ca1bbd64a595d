// Package archival pushes canonical medical record documents to an external
// content-addressed store. Pushes are best-effort enrichment: a failure here
// must never fail or roll back the primary record write.
package archival

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const defaultTimeout = 15 * time.Second

// Client talks to the content-addressed store over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new archival client. The bounded timeout applies to
// every put regardless of caller context.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Put uploads a canonical JSON document and returns the content address and
// retrieval URL assigned by the store. Idempotency is not required of the
// store; callers tolerate duplicate pushes.
func (c *Client) Put(ctx context.Context, doc models.ArchivalDocument) (*models.ArchivalReceipt, error) {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal archival document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v0/add", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create archival request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archival push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("archival store returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Hash string `json:"Hash"`
		Name string `json:"Name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode archival response: %w", err)
	}
	if payload.Hash == "" {
		return nil, fmt.Errorf("archival store returned no content address")
	}

	return &models.ArchivalReceipt{
		ContentAddress: payload.Hash,
		RetrievalURL:   fmt.Sprintf("%s/ipfs/%s", c.baseURL, payload.Hash),
	}, nil
}
