package services

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakelab-io/staking-pool-engine/internal/config"
	"github.com/stakelab-io/staking-pool-engine/internal/rewards"
	"github.com/stakelab-io/staking-pool-engine/internal/types"
	"github.com/stakelab-io/staking-pool-engine/testutil"
)

const (
	testCustodyAddress = "engine-custody"
	testOwner          = "pool-operator"
	testStaker         = "staker-1"
	testPoolStart      = int64(1_715_000_000)
)

// testClock drives the engine's injectable clock.
type testClock struct {
	unix int64
}

func (c *testClock) Now() time.Time {
	return time.Unix(c.unix, 0)
}

func (c *testClock) AdvanceDays(days int64) {
	c.unix += days * 24 * 60 * 60
}

type testEnv struct {
	svc     *Service
	store   *testutil.InMemoryStore
	token   *testutil.FakeTokenMover
	auth    *testutil.FakeAuthorizer
	emitter *testutil.FakeEventEmitter
	clock   *testClock
}

func newTestEnv() *testEnv {
	store := testutil.NewInMemoryStore()
	token := testutil.NewFakeTokenMover(testCustodyAddress)
	auth := testutil.NewFakeAuthorizer(testOwner)
	emitter := testutil.NewFakeEventEmitter()
	clock := &testClock{unix: testPoolStart}

	cfg := &config.Config{
		Token: config.TokenConfig{
			Endpoint:       "http://localhost:8480",
			CustodyAddress: testCustodyAddress,
			Timeout:        time.Second,
		},
	}

	svc := NewService(cfg, store, token, auth, emitter)
	svc.now = clock.Now

	return &testEnv{
		svc:     svc,
		store:   store,
		token:   token,
		auth:    auth,
		emitter: emitter,
		clock:   clock,
	}
}

func tokens(n int64) sdkmath.Int {
	return sdkmath.NewIntWithDecimal(n, 18)
}

// yearPool mirrors the canonical fixture: 50% APY over a one-year
// window, deposits between 1 and 1e6 tokens.
func yearPool(id string) *types.StakePool {
	return &types.StakePool{
		ID:             id,
		Name:           "Test Stake Pool",
		StartTime:      testPoolStart,
		EndTime:        testPoolStart + rewards.SecondsPerYear,
		ApyBasisPoints: 5000,
		MinStake:       tokens(1),
		MaxStake:       tokens(1_000_000),
	}
}
