package tokenclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"

	"github.com/stakelab-io/staking-pool-engine/internal/clients/client"
	"github.com/stakelab-io/staking-pool-engine/internal/config"
)

const (
	transferFromEndpoint = "/v1/transfer-from"
	transferEndpoint     = "/v1/transfer"
	balanceEndpoint      = "/v1/balances/%s"
	balanceTemplate      = "/v1/balances/{account}"
)

type TokenClient struct {
	httpClient *http.Client
	cfg        *config.TokenConfig
}

func NewTokenClient(cfg *config.TokenConfig) *TokenClient {
	return &TokenClient{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *TokenClient) GetBaseURL() string {
	return c.cfg.Endpoint
}

func (c *TokenClient) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *TokenClient) GetHttpClient() *http.Client {
	return c.httpClient
}

type transferRequest struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type transferResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type balanceResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

// TransferFrom pulls amount from the given account into to's custody.
// Transfers are never retried: the caller decides whether to resubmit.
func (c *TokenClient) TransferFrom(ctx context.Context, from, to string, amount sdkmath.Int) error {
	input := &transferRequest{
		From:   from,
		To:     to,
		Amount: amount.String(),
	}
	opts := &client.HttpClientOptions{
		Path:         transferFromEndpoint,
		TemplatePath: transferFromEndpoint,
	}

	resp, err := client.SendRequest[transferRequest, transferResponse](ctx, c, http.MethodPost, opts, input)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("transfer-from rejected: %s", resp.Message)
	}
	return nil
}

// Transfer pushes amount out of custody to the given account.
func (c *TokenClient) Transfer(ctx context.Context, to string, amount sdkmath.Int) error {
	input := &transferRequest{
		To:     to,
		Amount: amount.String(),
	}
	opts := &client.HttpClientOptions{
		Path:         transferEndpoint,
		TemplatePath: transferEndpoint,
	}

	resp, err := client.SendRequest[transferRequest, transferResponse](ctx, c, http.MethodPost, opts, input)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("transfer rejected: %s", resp.Message)
	}
	return nil
}

// BalanceOf reads an account balance. The read is idempotent, so it
// retries transient failures with backoff.
func (c *TokenClient) BalanceOf(ctx context.Context, account string) (sdkmath.Int, error) {
	call := func() (sdkmath.Int, error) {
		type empty struct{}
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf(balanceEndpoint, account),
			TemplatePath: balanceTemplate,
		}

		resp, err := client.SendRequest[empty, balanceResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return sdkmath.Int{}, err
		}

		balance, ok := sdkmath.NewIntFromString(resp.Balance)
		if !ok {
			return sdkmath.Int{}, fmt.Errorf("invalid balance %q for account %s", resp.Balance, account)
		}
		return balance, nil
	}

	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}
