package db

import (
	"context"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	// Pool registry. Pools are insert-once; there is no update or
	// delete surface.
	SaveNewStakePool(ctx context.Context, poolDoc *model.StakePoolDocument) error
	GetStakePoolByID(ctx context.Context, poolID string) (*model.StakePoolDocument, error)
	StakePoolExists(ctx context.Context, poolID string) (bool, error)

	// Stake ledger. SaveNewStake also persists the pool's updated
	// TotalStaked reporting counter.
	SaveNewStake(ctx context.Context, stakeDoc *model.StakeDocument, poolTotalStaked string) error
	GetStakesByPool(ctx context.Context, poolID string) ([]*model.StakeDocument, error)
	GetStakesByPoolAndStaker(ctx context.Context, poolID, stakerAddress string) ([]*model.StakeDocument, error)
	CountStakesByPool(ctx context.Context, poolID string) (uint64, error)

	// Claim settlement: all baselines land in one ordered bulk write.
	ApplyClaimUpdates(ctx context.Context, updates []model.ClaimUpdate) error
}
