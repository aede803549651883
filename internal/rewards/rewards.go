// Package rewards holds the pure reward arithmetic. Everything here is
// integer fixed-point math on the token's smallest unit: no floats, no
// state, no clock. Division happens exactly once, after all
// multiplications, and truncates toward zero.
package rewards

import (
	sdkmath "cosmossdk.io/math"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

// SecondsPerYear is the annualization base for APY: 365 days.
const SecondsPerYear int64 = 365 * 24 * 60 * 60

// FullWindow returns the reward a principal would earn over a pool's
// entire [start, end] window at the given APY. It backs the quoting
// operation and is independent of any actual stake.
func FullWindow(amount sdkmath.Int, apyBasisPoints, startTime, endTime int64) sdkmath.Int {
	return prorated(amount, apyBasisPoints, endTime-startTime)
}

// Accrued returns the reward owed on a stake as of the given time:
// time-proportional accrual from the stake's start, saturating at the
// pool's end, minus what was already claimed, floored at zero.
func Accrued(stake *types.Stake, pool *types.StakePool, asOf int64) sdkmath.Int {
	if asOf > pool.EndTime {
		asOf = pool.EndTime
	}
	elapsed := asOf - stake.StartTimestamp
	if elapsed < 0 {
		elapsed = 0
	}

	earned := prorated(stake.StakeAmount, pool.ApyBasisPoints, elapsed)
	owed := earned.Sub(stake.ClaimedReward)
	if owed.IsNegative() {
		return sdkmath.ZeroInt()
	}
	return owed
}

// prorated computes amount * apyBps * elapsedSeconds / (10000 * secondsPerYear)
// with a single truncating division. Intermediate products live in
// arbitrary-precision integers, so amount * bps * elapsed cannot
// overflow.
func prorated(amount sdkmath.Int, apyBasisPoints, elapsedSeconds int64) sdkmath.Int {
	if elapsedSeconds <= 0 || apyBasisPoints <= 0 || !amount.IsPositive() {
		return sdkmath.ZeroInt()
	}
	return amount.
		MulRaw(apyBasisPoints).
		MulRaw(elapsedSeconds).
		QuoRaw(types.BasisPointsDenominator * SecondsPerYear)
}
