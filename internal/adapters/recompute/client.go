// Package recompute invokes the external XP recomputation job.
package recompute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout      = 2 * time.Minute
	maxErrorBodyBytes   = 4096
	headerCorrelationID = "X-Correlation-Id"
)

// Runner triggers one recomputation of all XP values.
type Runner interface {
	// Run invokes the job and waits for its outcome.
	Run(ctx context.Context) error
}

// HTTPClient implements Runner against an HTTP job endpoint.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
}

// NewHTTPClient creates a job client for the given endpoint URL.
func NewHTTPClient(endpoint string, opts ...Option) (*HTTPClient, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrInvalidEndpoint
	}
	c := &HTTPClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "mentiby-admin",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// jobResponse mirrors the job endpoint's JSON outcome. Success is a
// pointer so an absent field can be told apart from an explicit false.
type jobResponse struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// Run POSTs to the job endpoint and interprets the outcome. A non-2xx
// status or a success=false body is a job failure.
func (c *HTTPClient) Run(ctx context.Context) error {
	correlationID := uuid.NewString()

	body, err := json.Marshal(map[string]string{"correlation_id": correlationID})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerCorrelationID, correlationID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status %d: %s", ErrJobFailed, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	// Only an explicit success=false marks a failure; an empty,
	// non-JSON, or success-free 2xx body counts as success. The
	// endpoint is only required to report explicit failures.
	var out jobResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil
	}
	if out.Success != nil && !*out.Success {
		if out.Error != "" {
			return fmt.Errorf("%w: %s", ErrJobFailed, out.Error)
		}
		return fmt.Errorf("%w: job reported failure", ErrJobFailed)
	}
	return nil
}
