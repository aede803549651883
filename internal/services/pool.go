package services

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakelab-io/staking-pool-engine/internal/db"
	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

// CreateStakePool registers a new pool. Privileged: the caller must
// pass the authorization provider's gate. Pools are immutable once
// created.
func (s *Service) CreateStakePool(
	ctx context.Context,
	caller string,
	pool *types.StakePool,
) (err error) {
	defer s.observe("CreateStakePool", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	authorized, err := s.auth.IsAuthorized(ctx, caller)
	if err != nil {
		return fmt.Errorf("authorization check failed: %w", err)
	}
	if !authorized {
		return fmt.Errorf("%w: caller %s cannot create stake pools", types.ErrUnauthorized, caller)
	}

	if pool.ID == "" {
		return fmt.Errorf("pool id must not be empty")
	}
	if pool.StartTime >= pool.EndTime {
		return fmt.Errorf("%w: start %d, end %d", types.ErrInvalidWindow, pool.StartTime, pool.EndTime)
	}
	if pool.MinStake.IsNil() || pool.MaxStake.IsNil() ||
		pool.MinStake.IsNegative() || pool.MaxStake.IsNegative() ||
		pool.MinStake.GT(pool.MaxStake) {
		return fmt.Errorf("%w: min %s, max %s", types.ErrInvalidBounds, pool.MinStake, pool.MaxStake)
	}

	pool.TotalStaked = sdkmath.ZeroInt()
	pool.CreatedAt = s.now().Unix()

	if err := s.db.SaveNewStakePool(ctx, model.FromStakePool(pool)); err != nil {
		if db.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", types.ErrDuplicatePool, pool.ID)
		}
		return fmt.Errorf("failed to save stake pool: %w", err)
	}

	metrics.IncPoolsCreated()
	log.Ctx(ctx).Info().
		Str("pool_id", pool.ID).
		Int64("apy_basis_points", pool.ApyBasisPoints).
		Msg("stake pool created")

	s.emit(ctx, types.EventStakePoolCreated, func() error {
		return s.queueManager.PushStakePoolCreatedEvent(ctx, &types.StakePoolCreatedEvent{
			EventType:      types.EventStakePoolCreated.String(),
			EventID:        uuid.New().String(),
			Timestamp:      pool.CreatedAt,
			PoolID:         pool.ID,
			Name:           pool.Name,
			StartTime:      pool.StartTime,
			EndTime:        pool.EndTime,
			ApyBasisPoints: pool.ApyBasisPoints,
			MinStake:       pool.MinStake.String(),
			MaxStake:       pool.MaxStake.String(),
		})
	})

	return nil
}

// CheckIsPoolExists is a pure lookup; absence is not an error.
func (s *Service) CheckIsPoolExists(ctx context.Context, poolID string) (exists bool, err error) {
	defer s.observe("CheckIsPoolExists", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.StakePoolExists(ctx, poolID)
}

func (s *Service) GetStakePoolById(ctx context.Context, poolID string) (pool *types.StakePool, err error) {
	defer s.observe("GetStakePoolById", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getStakePool(ctx, poolID)
}

// getStakePool loads and decodes a pool; callers hold mu.
func (s *Service) getStakePool(ctx context.Context, poolID string) (*types.StakePool, error) {
	poolDoc, err := s.db.GetStakePoolByID(ctx, poolID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrPoolNotFound, poolID)
		}
		return nil, fmt.Errorf("failed to load stake pool: %w", err)
	}
	return poolDoc.ToStakePool()
}
