package services

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
	"github.com/stakelab-io/staking-pool-engine/internal/rewards"
	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

const (
	settlementRetryAttempts = 5
	settlementRetryDelay    = 200 * time.Millisecond
)

// ClaimReward4Total settles everything the user has accrued across
// their active stakes in a pool. The payout goes out first; the stake
// baselines then land in a single ordered bulk write, retried until it
// sticks because the money has already moved. A failed payout leaves
// no state behind, so claiming stays safe to resubmit.
func (s *Service) ClaimReward4Total(
	ctx context.Context, stakerAddress, poolID string,
) (total sdkmath.Int, err error) {
	defer s.observe("ClaimReward4Total", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.getStakePool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}

	stakeDocs, err := s.db.GetStakesByPoolAndStaker(ctx, poolID, stakerAddress)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("failed to load user stakes: %w", err)
	}
	if len(stakeDocs) == 0 {
		return sdkmath.Int{}, fmt.Errorf("%w: %s in pool %s", types.ErrNoStakes, stakerAddress, poolID)
	}

	stakes, err := decodeStakes(stakeDocs)
	if err != nil {
		return sdkmath.Int{}, err
	}

	asOf := s.now().Unix()
	total = sdkmath.ZeroInt()
	updates := make([]model.ClaimUpdate, 0, len(stakes))
	for _, stake := range stakes {
		if !stake.Active {
			continue
		}
		owed := rewards.Accrued(stake, pool, asOf)
		if !owed.IsPositive() {
			continue
		}
		total = total.Add(owed)
		updates = append(updates, model.ClaimUpdate{
			StakeID:          stake.ID,
			NewClaimedReward: stake.ClaimedReward.Add(owed).String(),
		})
	}

	if total.IsZero() {
		return sdkmath.Int{}, fmt.Errorf("%w: %s in pool %s", types.ErrNothingToClaim, stakerAddress, poolID)
	}

	if err := s.token.Transfer(ctx, stakerAddress, total); err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %v", types.ErrTokenMoveFailed, err)
	}

	// The payout is out the door; the baselines must not be lost to a
	// caller hanging up, hence the detached context.
	persistCtx := context.WithoutCancel(ctx)
	err = retry.Do(
		func() error {
			return s.db.ApplyClaimUpdates(persistCtx, updates)
		},
		retry.Attempts(settlementRetryAttempts),
		retry.Delay(settlementRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		metrics.IncClaimSettlementFailures()
		log.Ctx(ctx).Error().
			Err(err).
			Str("pool_id", poolID).
			Str("staker_address", stakerAddress).
			Str("amount", total.String()).
			Msg("claim paid out but baseline persist failed; manual reconciliation required")
		return sdkmath.Int{}, fmt.Errorf("claim settlement persist failed after payout: %w", err)
	}

	metrics.IncClaimsProcessed()
	log.Ctx(ctx).Info().
		Str("pool_id", poolID).
		Str("staker_address", stakerAddress).
		Str("amount", total.String()).
		Int("stakes_settled", len(updates)).
		Msg("reward claim settled")

	s.emit(ctx, types.EventRewardClaimed, func() error {
		return s.queueManager.PushRewardClaimedEvent(ctx, &types.RewardClaimedEvent{
			EventType:     types.EventRewardClaimed.String(),
			EventID:       uuid.New().String(),
			Timestamp:     asOf,
			PoolID:        poolID,
			StakerAddress: stakerAddress,
			Amount:        total.String(),
			StakesSettled: len(updates),
		})
	})

	return total, nil
}
