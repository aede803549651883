package authclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/stakelab-io/staking-pool-engine/internal/clients/client"
	"github.com/stakelab-io/staking-pool-engine/internal/config"
)

const (
	authorizationEndpoint = "/v1/authorizations/%s"
	authorizationTemplate = "/v1/authorizations/{caller}"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.AuthConfig
}

func NewClient(cfg *config.AuthConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return c.cfg.Endpoint
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

// IsAuthorized asks the authorization provider whether the caller may
// perform privileged operations. The check is read-only and retried
// with backoff on transient failures.
func (c *Client) IsAuthorized(ctx context.Context, caller string) (bool, error) {
	if caller == "" {
		return false, fmt.Errorf("empty caller provided")
	}

	type empty struct{}
	type authorizationResponse struct {
		Caller     string `json:"caller"`
		Authorized bool   `json:"authorized"`
	}

	call := func() (bool, error) {
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf(authorizationEndpoint, caller),
			TemplatePath: authorizationTemplate,
		}

		resp, err := client.SendRequest[empty, authorizationResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return false, err
		}
		return resp.Authorized, nil
	}

	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}
