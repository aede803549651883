package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

const StakePoolCollection = "stake_pools"

// StakePoolDocument persists a pool. Amounts are decimal strings so the
// token's smallest-unit integers survive bson round trips untouched.
// The document layout is append-only across upgrades: new fields may be
// added, existing ones are never removed or renamed.
type StakePoolDocument struct {
	ID             string `bson:"_id"`
	Name           string `bson:"name"`
	StartTime      int64  `bson:"start_time"`
	EndTime        int64  `bson:"end_time"`
	ApyBasisPoints int64  `bson:"apy_basis_points"`
	MinStake       string `bson:"min_stake"`
	MaxStake       string `bson:"max_stake"`
	TotalStaked    string `bson:"total_staked"`
	CreatedAt      int64  `bson:"created_at"`
}

func FromStakePool(pool *types.StakePool) *StakePoolDocument {
	return &StakePoolDocument{
		ID:             pool.ID,
		Name:           pool.Name,
		StartTime:      pool.StartTime,
		EndTime:        pool.EndTime,
		ApyBasisPoints: pool.ApyBasisPoints,
		MinStake:       pool.MinStake.String(),
		MaxStake:       pool.MaxStake.String(),
		TotalStaked:    pool.TotalStaked.String(),
		CreatedAt:      pool.CreatedAt,
	}
}

func (d *StakePoolDocument) ToStakePool() (*types.StakePool, error) {
	minStake, err := parseAmount(d.MinStake, "min_stake")
	if err != nil {
		return nil, err
	}
	maxStake, err := parseAmount(d.MaxStake, "max_stake")
	if err != nil {
		return nil, err
	}
	totalStaked, err := parseAmount(d.TotalStaked, "total_staked")
	if err != nil {
		return nil, err
	}

	return &types.StakePool{
		ID:             d.ID,
		Name:           d.Name,
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		ApyBasisPoints: d.ApyBasisPoints,
		MinStake:       minStake,
		MaxStake:       maxStake,
		TotalStaked:    totalStaked,
		CreatedAt:      d.CreatedAt,
	}, nil
}

func parseAmount(s, field string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid %s amount %q", field, s)
	}
	return amount, nil
}
