// Package classifier wraps the external ML symptom classifier service. The
// service is opaque, possibly slow and possibly failing; no SLA is assumed
// and every call carries a bounded timeout.
package classifier

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

const defaultTimeout = 20 * time.Second

// Client talks to the ML classifier microservice over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new classifier client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Classify submits symptom text and returns the classifier verdict. The
// SuggestedStatus field is normalized to a monitoring status; callers treat
// it as advisory, never as an automatic dispatch trigger.
func (c *Client) Classify(ctx context.Context, req models.ClassifyRequest) (*models.ClassifyResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create classify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("classifier call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	var verdict models.ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	if verdict.SuggestedStatus == "" {
		verdict.SuggestedStatus = statusForSeverity(verdict.Severity)
	}
	return &verdict, nil
}

func statusForSeverity(severity string) string {
	switch severity {
	case "high", "severe", "critical":
		return models.StatusCritical
	case "medium", "moderate":
		return models.StatusAttention
	default:
		return models.StatusStable
	}
}
