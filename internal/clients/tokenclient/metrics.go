package tokenclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
)

type tokenClientWithMetrics struct {
	token TokenInterface
}

func NewTokenClientWithMetrics(token TokenInterface) *tokenClientWithMetrics {
	return &tokenClientWithMetrics{token: token}
}

func (t *tokenClientWithMetrics) TransferFrom(ctx context.Context, from, to string, amount sdkmath.Int) error {
	_, err := runTokenClientMethodWithMetrics("TransferFrom", func() (struct{}, error) {
		return struct{}{}, t.token.TransferFrom(ctx, from, to, amount)
	})
	return err
}

func (t *tokenClientWithMetrics) Transfer(ctx context.Context, to string, amount sdkmath.Int) error {
	_, err := runTokenClientMethodWithMetrics("Transfer", func() (struct{}, error) {
		return struct{}{}, t.token.Transfer(ctx, to, amount)
	})
	return err
}

func (t *tokenClientWithMetrics) BalanceOf(ctx context.Context, account string) (sdkmath.Int, error) {
	return runTokenClientMethodWithMetrics("BalanceOf", func() (sdkmath.Int, error) {
		return t.token.BalanceOf(ctx, account)
	})
}

func runTokenClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordTokenClientLatency(duration, method, err != nil)
	return v, err
}
