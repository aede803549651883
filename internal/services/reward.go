package services

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelab-io/staking-pool-engine/internal/rewards"
)

// CalculateStakeRewardWithDefinedAmount quotes the reward a
// hypothetical principal would earn over the pool's full window. It
// reads only pool configuration, never stake state.
func (s *Service) CalculateStakeRewardWithDefinedAmount(
	ctx context.Context, poolID string, amount sdkmath.Int,
) (reward sdkmath.Int, err error) {
	defer s.observe("CalculateStakeRewardWithDefinedAmount", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.getStakePool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}

	return rewards.FullWindow(amount, pool.ApyBasisPoints, pool.StartTime, pool.EndTime), nil
}

// GetTotalRewardsInThePoolOfUser sums the reward currently claimable
// across all of the user's active stakes in the pool.
func (s *Service) GetTotalRewardsInThePoolOfUser(
	ctx context.Context, stakerAddress, poolID string,
) (total sdkmath.Int, err error) {
	defer s.observe("GetTotalRewardsInThePoolOfUser", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.getStakePool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}

	stakeDocs, err := s.db.GetStakesByPoolAndStaker(ctx, poolID, stakerAddress)
	if err != nil {
		return sdkmath.Int{}, err
	}
	stakes, err := decodeStakes(stakeDocs)
	if err != nil {
		return sdkmath.Int{}, err
	}

	asOf := s.now().Unix()
	total = sdkmath.ZeroInt()
	for _, stake := range stakes {
		if !stake.Active {
			continue
		}
		total = total.Add(rewards.Accrued(stake, pool, asOf))
	}
	return total, nil
}
