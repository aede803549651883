package types

import (
	sdkmath "cosmossdk.io/math"
)

// BasisPointsDenominator converts basis points into a fraction
// (10000 bps = 100%).
const BasisPointsDenominator = 10_000

// StakePool is a configured staking offer. Pools are immutable after
// creation; only the TotalStaked reporting counter moves.
type StakePool struct {
	ID             string
	Name           string
	StartTime      int64
	EndTime        int64
	ApyBasisPoints int64
	MinStake       sdkmath.Int
	MaxStake       sdkmath.Int
	TotalStaked    sdkmath.Int
	CreatedAt      int64
}

// IsWindowOpen reports whether the pool accepts deposits at the given
// unix timestamp. The window is inclusive on both ends.
func (p *StakePool) IsWindowOpen(at int64) bool {
	return at >= p.StartTime && at <= p.EndTime
}

// IsAmountWithinBounds reports whether a single deposit amount falls in
// [MinStake, MaxStake].
func (p *StakePool) IsAmountWithinBounds(amount sdkmath.Int) bool {
	return amount.GTE(p.MinStake) && amount.LTE(p.MaxStake)
}
