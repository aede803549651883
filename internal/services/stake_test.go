package services

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

func TestStakeToken(t *testing.T) {
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(10))

		stake, err := env.svc.StakeToken(ctx, testStaker, tokens(3), "test1")
		require.NoError(t, err)
		assert.Equal(t, "test1", stake.PoolID)
		assert.Equal(t, testStaker, stake.StakerAddress)
		assert.Equal(t, tokens(3), stake.StakeAmount)
		assert.Equal(t, testPoolStart, stake.StartTimestamp)
		assert.True(t, stake.ClaimedReward.IsZero())
		assert.True(t, stake.Active)
		assert.Equal(t, uint64(0), stake.StakeIndex)

		// principal moved into custody
		custody, err := env.token.BalanceOf(ctx, testCustodyAddress)
		require.NoError(t, err)
		assert.Equal(t, tokens(3), custody)
		remaining, err := env.token.BalanceOf(ctx, testStaker)
		require.NoError(t, err)
		assert.Equal(t, tokens(7), remaining)

		pool, err := env.svc.GetStakePoolById(ctx, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(3), pool.TotalStaked)

		require.Len(t, env.emitter.StakeCreated, 1)
		assert.Equal(t, stake.ID, env.emitter.StakeCreated[0].StakeID)
	})

	t.Run("stake indexes increment per pool", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test2")))
		env.token.SetBalance(testStaker, tokens(100))

		first, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)
		second, err := env.svc.StakeToken(ctx, testStaker, tokens(2), "test1")
		require.NoError(t, err)
		other, err := env.svc.StakeToken(ctx, testStaker, tokens(3), "test2")
		require.NoError(t, err)

		assert.Equal(t, uint64(0), first.StakeIndex)
		assert.Equal(t, uint64(1), second.StakeIndex)
		assert.Equal(t, uint64(0), other.StakeIndex)

		pool, err := env.svc.GetStakePoolById(ctx, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(3), pool.TotalStaked)
	})

	t.Run("amount bounds are inclusive", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(3_000_000))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)
		_, err = env.svc.StakeToken(ctx, testStaker, tokens(1_000_000), "test1")
		require.NoError(t, err)

		_, err = env.svc.StakeToken(ctx, testStaker, tokens(1).SubRaw(1), "test1")
		require.ErrorIs(t, err, types.ErrOutOfBounds)
		_, err = env.svc.StakeToken(ctx, testStaker, tokens(1_000_000).AddRaw(1), "test1")
		require.ErrorIs(t, err, types.ErrOutOfBounds)
		_, err = env.svc.StakeToken(ctx, testStaker, sdkmath.Int{}, "test1")
		require.ErrorIs(t, err, types.ErrOutOfBounds)
	})

	t.Run("window closed", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(10))

		env.clock.AdvanceDays(366)
		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.ErrorIs(t, err, types.ErrWindowClosed)

		count, err := env.svc.LengthStakesInPool(ctx, "test1")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("pool not found", func(t *testing.T) {
		env := newTestEnv()
		env.token.SetBalance(testStaker, tokens(10))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "missing")
		require.ErrorIs(t, err, types.ErrPoolNotFound)
	})

	t.Run("failed pull leaves no state", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.FailTransferFrom = true

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.ErrorIs(t, err, types.ErrTokenMoveFailed)

		count, err := env.svc.LengthStakesInPool(ctx, "test1")
		require.NoError(t, err)
		assert.Zero(t, count)
		pool, err := env.svc.GetStakePoolById(ctx, "test1")
		require.NoError(t, err)
		assert.True(t, pool.TotalStaked.IsZero())
		assert.Empty(t, env.emitter.StakeCreated)
	})

	t.Run("failed persist refunds the pull", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))
		env.store.FailSaveNewStake = true

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.Error(t, err)
		require.NotErrorIs(t, err, types.ErrTokenMoveFailed)

		// principal is back with the staker, custody holds nothing
		balance, err := env.token.BalanceOf(ctx, testStaker)
		require.NoError(t, err)
		assert.Equal(t, tokens(1), balance)
		custody, err := env.token.BalanceOf(ctx, testCustodyAddress)
		require.NoError(t, err)
		assert.True(t, custody.IsZero())

		count, err := env.svc.LengthStakesInPool(ctx, "test1")
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, env.emitter.StakeCreated)

		// and the deposit is cleanly resubmittable
		env.store.FailSaveNewStake = false
		stake, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), stake.StakeIndex)
	})

	t.Run("failed persist with failed refund strands the pull", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))
		env.store.FailSaveNewStake = true
		env.token.FailTransfer = true

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.Error(t, err)

		// nothing is recorded; the strand is visible on the ledger only
		custody, err := env.token.BalanceOf(ctx, testCustodyAddress)
		require.NoError(t, err)
		assert.Equal(t, tokens(1), custody)
		count, err := env.svc.LengthStakesInPool(ctx, "test1")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("insufficient staker balance leaves no state", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1).SubRaw(1))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.ErrorIs(t, err, types.ErrTokenMoveFailed)

		count, err := env.svc.LengthStakesInPool(ctx, "test1")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestStakeQueries(t *testing.T) {
	ctx := t.Context()
	env := newTestEnv()
	require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
	env.token.SetBalance(testStaker, tokens(100))
	env.token.SetBalance("staker-2", tokens(100))

	mine1, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
	require.NoError(t, err)
	theirs, err := env.svc.StakeToken(ctx, "staker-2", tokens(2), "test1")
	require.NoError(t, err)
	mine2, err := env.svc.StakeToken(ctx, testStaker, tokens(3), "test1")
	require.NoError(t, err)

	all, err := env.svc.ListAllStakesInPool(ctx, "test1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{mine1.ID, theirs.ID, mine2.ID},
		[]string{all[0].ID, all[1].ID, all[2].ID})

	count, err := env.svc.LengthStakesInPool(ctx, "test1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	mine, err := env.svc.GetAllUserStakesByStakePoolsId(ctx, "test1", testStaker)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, mine1.ID, mine[0].ID)
	assert.Equal(t, mine2.ID, mine[1].ID)

	empty, err := env.svc.ListAllStakesInPool(ctx, "empty-pool")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
