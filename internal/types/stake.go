package types

import (
	sdkmath "cosmossdk.io/math"
)

// Stake is one user's deposit into a pool. Stakes are append-only: a
// stake is never removed, and the only mutable field after creation is
// ClaimedReward (advanced by claim settlement). StakeIndex is the
// creation-order position of the stake within its pool.
type Stake struct {
	ID             string
	PoolID         string
	StakerAddress  string
	StakeAmount    sdkmath.Int
	StartTimestamp int64
	ClaimedReward  sdkmath.Int
	Active         bool
	StakeIndex     uint64
}
