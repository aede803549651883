package testutil

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
)

// RandomStakePoolDocument generates a pool with a plausible window and
// bounds for db tests.
func RandomStakePoolDocument() *model.StakePoolDocument {
	start := gofakeit.Date().Unix()
	return &model.StakePoolDocument{
		ID:             uuid.New().String(),
		Name:           gofakeit.ProductName(),
		StartTime:      start,
		EndTime:        start + int64(gofakeit.Number(3600, 10*365*24*3600)),
		ApyBasisPoints: int64(gofakeit.Number(1, 20000)),
		MinStake:       sdkmath.NewIntWithDecimal(1, 18).String(),
		MaxStake:       sdkmath.NewIntWithDecimal(1_000_000, 18).String(),
		TotalStaked:    "0",
		CreatedAt:      start,
	}
}

// RandomStakeDocument generates a stake in the given pool.
func RandomStakeDocument(poolID string, stakeIndex uint64) *model.StakeDocument {
	return &model.StakeDocument{
		ID:             uuid.New().String(),
		PoolID:         poolID,
		StakerAddress:  fmt.Sprintf("staker-%s", gofakeit.LetterN(12)),
		StakeAmount:    sdkmath.NewIntWithDecimal(int64(gofakeit.Number(1, 1000)), 18).String(),
		StartTimestamp: gofakeit.Date().Unix(),
		ClaimedReward:  "0",
		Active:         true,
		StakeIndex:     stakeIndex,
	}
}
