package services

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

// StakeToken deposits amount into a pool for the given staker. The
// principal is pulled into custody before the stake is recorded; a
// failed pull leaves no state behind, and a failed record refunds
// the pull.
func (s *Service) StakeToken(
	ctx context.Context,
	stakerAddress string,
	amount sdkmath.Int,
	poolID string,
) (stake *types.Stake, err error) {
	defer s.observe("StakeToken", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.getStakePool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	if amount.IsNil() || !pool.IsAmountWithinBounds(amount) {
		return nil, fmt.Errorf("%w: amount %s not in [%s, %s]",
			types.ErrOutOfBounds, amount, pool.MinStake, pool.MaxStake)
	}

	stakedAt := s.now().Unix()
	if !pool.IsWindowOpen(stakedAt) {
		return nil, fmt.Errorf("%w: pool %s accepts deposits between %d and %d",
			types.ErrWindowClosed, poolID, pool.StartTime, pool.EndTime)
	}

	stakeIndex, err := s.db.CountStakesByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to count stakes: %w", err)
	}

	if err := s.token.TransferFrom(ctx, stakerAddress, s.custodyAddress, amount); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrTokenMoveFailed, err)
	}

	stake = &types.Stake{
		ID:             uuid.New().String(),
		PoolID:         poolID,
		StakerAddress:  stakerAddress,
		StakeAmount:    amount,
		StartTimestamp: stakedAt,
		ClaimedReward:  sdkmath.ZeroInt(),
		Active:         true,
		StakeIndex:     stakeIndex,
	}

	newTotalStaked := pool.TotalStaked.Add(amount)
	if err := s.db.SaveNewStake(ctx, model.FromStake(stake), newTotalStaked.String()); err != nil {
		// The pull already happened; undo it so a failed deposit leaves
		// no money in custody. The refund uses a detached context so a
		// caller hanging up cannot strand the principal.
		refundCtx := context.WithoutCancel(ctx)
		if refundErr := s.token.Transfer(refundCtx, stakerAddress, amount); refundErr != nil {
			metrics.IncStakeRefundFailures()
			log.Ctx(ctx).Error().
				Err(refundErr).
				Str("pool_id", poolID).
				Str("staker_address", stakerAddress).
				Str("amount", amount.String()).
				Msg("stake persist failed and refund failed; manual reconciliation required")
		}
		return nil, fmt.Errorf("failed to save stake: %w", err)
	}

	metrics.IncStakesCreated()
	log.Ctx(ctx).Info().
		Str("pool_id", poolID).
		Str("staker_address", stakerAddress).
		Str("amount", amount.String()).
		Msg("stake recorded")

	s.emit(ctx, types.EventStakeCreated, func() error {
		return s.queueManager.PushStakeCreatedEvent(ctx, &types.StakeCreatedEvent{
			EventType:      types.EventStakeCreated.String(),
			EventID:        uuid.New().String(),
			Timestamp:      stakedAt,
			StakeID:        stake.ID,
			PoolID:         poolID,
			StakerAddress:  stakerAddress,
			StakeAmount:    amount.String(),
			StartTimestamp: stakedAt,
		})
	})

	return stake, nil
}

// ListAllStakesInPool returns every stake ever created in the pool in
// creation order. Re-querying returns current state, not a snapshot.
func (s *Service) ListAllStakesInPool(ctx context.Context, poolID string) (stakes []*types.Stake, err error) {
	defer s.observe("ListAllStakesInPool", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	stakeDocs, err := s.db.GetStakesByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}
	return decodeStakes(stakeDocs)
}

// LengthStakesInPool counts all stakes ever created in the pool,
// active and inactive.
func (s *Service) LengthStakesInPool(ctx context.Context, poolID string) (count uint64, err error) {
	defer s.observe("LengthStakesInPool", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.CountStakesByPool(ctx, poolID)
}

// GetAllUserStakesByStakePoolsId returns a user's stakes in the pool in
// creation order.
func (s *Service) GetAllUserStakesByStakePoolsId(
	ctx context.Context, poolID, stakerAddress string,
) (stakes []*types.Stake, err error) {
	defer s.observe("GetAllUserStakesByStakePoolsId", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	stakeDocs, err := s.db.GetStakesByPoolAndStaker(ctx, poolID, stakerAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to list user stakes: %w", err)
	}
	return decodeStakes(stakeDocs)
}

func decodeStakes(stakeDocs []*model.StakeDocument) ([]*types.Stake, error) {
	stakes := make([]*types.Stake, 0, len(stakeDocs))
	for _, doc := range stakeDocs {
		stake, err := doc.ToStake()
		if err != nil {
			return nil, err
		}
		stakes = append(stakes, stake)
	}
	return stakes, nil
}
