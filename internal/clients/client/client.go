package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
)

// HttpClient is implemented by every outbound client so that requests
// share timeout handling and latency metrics.
type HttpClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Path string
	// TemplatePath is the path with parameters unexpanded, used as the
	// metrics label to keep cardinality bounded.
	TemplatePath string
	Headers      map[string]string
}

type ErrorResponse struct {
	StatusCode int
	Body       string
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// SendRequest sends a JSON request to the client's service and decodes
// a JSON response. A nil input sends no body.
func SendRequest[I any, O any](
	ctx context.Context,
	client HttpClient,
	method string,
	opts *HttpClientOptions,
	input *I,
) (*O, error) {
	url := client.GetBaseURL() + opts.Path

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	reqCtx, cancel := context.WithTimeout(ctx, client.GetDefaultRequestTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	stopTimer := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, opts.TemplatePath)

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		stopTimer(0)
		return nil, err
	}
	defer resp.Body.Close()
	stopTimer(resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ErrorResponse{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	var output O
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return &output, nil
}
