package model

import (
	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

const StakeCollection = "stakes"

// StakeDocument persists a single deposit. Stakes are append-only;
// claim settlement advances claimed_reward and nothing else mutates
// after insertion.
type StakeDocument struct {
	ID             string `bson:"_id"`
	PoolID         string `bson:"pool_id"`
	StakerAddress  string `bson:"staker_address"`
	StakeAmount    string `bson:"stake_amount"`
	StartTimestamp int64  `bson:"start_timestamp"`
	ClaimedReward  string `bson:"claimed_reward"`
	Active         bool   `bson:"active"`
	StakeIndex     uint64 `bson:"stake_index"`
}

func FromStake(stake *types.Stake) *StakeDocument {
	return &StakeDocument{
		ID:             stake.ID,
		PoolID:         stake.PoolID,
		StakerAddress:  stake.StakerAddress,
		StakeAmount:    stake.StakeAmount.String(),
		StartTimestamp: stake.StartTimestamp,
		ClaimedReward:  stake.ClaimedReward.String(),
		Active:         stake.Active,
		StakeIndex:     stake.StakeIndex,
	}
}

func (d *StakeDocument) ToStake() (*types.Stake, error) {
	amount, err := parseAmount(d.StakeAmount, "stake_amount")
	if err != nil {
		return nil, err
	}
	claimed, err := parseAmount(d.ClaimedReward, "claimed_reward")
	if err != nil {
		return nil, err
	}

	return &types.Stake{
		ID:             d.ID,
		PoolID:         d.PoolID,
		StakerAddress:  d.StakerAddress,
		StakeAmount:    amount,
		StartTimestamp: d.StartTimestamp,
		ClaimedReward:  claimed,
		Active:         d.Active,
		StakeIndex:     d.StakeIndex,
	}, nil
}

// ClaimUpdate advances one stake's paid baseline during claim
// settlement. NewClaimedReward is the cumulative total, not a delta.
type ClaimUpdate struct {
	StakeID          string
	NewClaimedReward string
}
