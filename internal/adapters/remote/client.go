// Package remote implements the scoring client for an MLflow-style model
// serving endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/progno/internal/domain/scoring"
	"github.com/okian/progno/pkg/metrics"
)

// defaultTimeout bounds a scoring call when no option overrides it.
const defaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a non-success response body is carried
// into the error message.
const maxErrorBody = 8 << 10

// Client performs authenticated scoring calls against a serving endpoint.
// Each call is attempted exactly once; there are no retries and no caching.
type Client struct {
	endpoint   string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a scoring client for the given endpoint and bearer
// token.
func NewClient(endpoint, token string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		token:    token,
		timeout:  defaultTimeout,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Score serializes req into the dataframe_split wire format, POSTs it with
// the Bearer credential, and decodes the answer. Failures come back as
// *scoring.Failure values the caller can discriminate on.
func (c *Client) Score(ctx context.Context, req scoring.Request) (scoring.Response, error) {
	payload, err := encodePayload(req)
	if err != nil {
		return scoring.Response{}, fmt.Errorf("encode scoring payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return scoring.Response{}, fmt.Errorf("build scoring request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		f := c.classifyTransportError(err)
		metrics.RecordUpstreamError(f.Kind.String())
		return scoring.Response{}, f
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordUpstreamLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		f := scoring.NewNonSuccessFailure(resp.StatusCode, string(body))
		metrics.RecordUpstreamError(f.Kind.String())
		return scoring.Response{}, f
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return scoring.Response{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return scoring.Response{Document: doc}, nil
}

// classifyTransportError splits client.Do errors into the timeout and
// connection kinds of the failure taxonomy.
func (c *Client) classifyTransportError(err error) *scoring.Failure {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return scoring.NewTimeoutFailure(c.timeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return scoring.NewTimeoutFailure(c.timeout, err)
	}
	return scoring.NewConnectionFailure(err)
}
