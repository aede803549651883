package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

func TestClaimReward4Total(t *testing.T) {
	ctx := t.Context()

	t.Run("full year pays half the principal", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)

		env.clock.AdvanceDays(365)

		total, err := env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(2), total)

		paid, err := env.token.BalanceOf(ctx, testStaker)
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(2), paid)

		require.Len(t, env.emitter.RewardClaimed, 1)
		assert.Equal(t, total.String(), env.emitter.RewardClaimed[0].Amount)
		assert.Equal(t, 1, env.emitter.RewardClaimed[0].StakesSettled)

		// everything is settled, an immediate repeat pays nothing
		_, err = env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.ErrorIs(t, err, types.ErrNothingToClaim)
	})

	t.Run("accrual saturates at pool end", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)

		env.clock.AdvanceDays(365 * 3)

		total, err := env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(2), total)
	})

	t.Run("partial windows settle incrementally", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)

		// 73 days is a fifth of the year, a tenth of the principal
		env.clock.AdvanceDays(73)
		first, err := env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(10), first)

		env.clock.AdvanceDays(292)
		second, err := env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.NoError(t, err)

		// two claims together equal one claim over the full window
		assert.Equal(t, tokens(1).QuoRaw(2), first.Add(second))
	})

	t.Run("sums across the user's stakes", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(5))
		env.token.SetBalance("staker-2", tokens(7))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(2), "test1")
		require.NoError(t, err)
		_, err = env.svc.StakeToken(ctx, testStaker, tokens(3), "test1")
		require.NoError(t, err)
		_, err = env.svc.StakeToken(ctx, "staker-2", tokens(7), "test1")
		require.NoError(t, err)

		env.clock.AdvanceDays(365)

		total, err := env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(5).QuoRaw(2), total)
		require.Len(t, env.emitter.RewardClaimed, 1)
		assert.Equal(t, 2, env.emitter.RewardClaimed[0].StakesSettled)

		// the other staker's accrual is untouched
		theirs, err := env.svc.GetTotalRewardsInThePoolOfUser(ctx, "staker-2", "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(7).QuoRaw(2), theirs)
	})

	t.Run("no stakes", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))

		_, err := env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.ErrorIs(t, err, types.ErrNoStakes)
	})

	t.Run("pool not found", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.ClaimReward4Total(ctx, testStaker, "missing")
		require.ErrorIs(t, err, types.ErrPoolNotFound)
	})

	t.Run("nothing accrued at the stake instant", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)

		_, err = env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.ErrorIs(t, err, types.ErrNothingToClaim)
	})

	t.Run("failed payout mutates nothing", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)

		env.clock.AdvanceDays(365)
		env.token.FailTransfer = true

		_, err = env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.ErrorIs(t, err, types.ErrTokenMoveFailed)
		assert.Empty(t, env.emitter.RewardClaimed)

		// the claim stays resubmittable for the full amount
		env.token.FailTransfer = false
		total, err := env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(2), total)
	})

	t.Run("persist failure after payout is surfaced", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))

		_, err := env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)

		env.clock.AdvanceDays(365)
		env.store.FailApplyClaimUpdates = true

		_, err = env.svc.ClaimReward4Total(ctx, testStaker, "test1")
		require.Error(t, err)
		require.NotErrorIs(t, err, types.ErrTokenMoveFailed)
		assert.Empty(t, env.emitter.RewardClaimed)

		// the payout went out even though the baseline write failed
		paid, err := env.token.BalanceOf(ctx, testStaker)
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(2), paid)
	})
}

func TestRewardQueries(t *testing.T) {
	ctx := t.Context()

	t.Run("full window quote", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))

		// quoting needs no stakes in the pool
		quote, err := env.svc.CalculateStakeRewardWithDefinedAmount(ctx, "test1", tokens(10))
		require.NoError(t, err)
		assert.Equal(t, tokens(5), quote)

		_, err = env.svc.CalculateStakeRewardWithDefinedAmount(ctx, "missing", tokens(10))
		require.ErrorIs(t, err, types.ErrPoolNotFound)
	})

	t.Run("user total tracks the clock", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
		env.token.SetBalance(testStaker, tokens(1))

		total, err := env.svc.GetTotalRewardsInThePoolOfUser(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.True(t, total.IsZero())

		_, err = env.svc.StakeToken(ctx, testStaker, tokens(1), "test1")
		require.NoError(t, err)

		env.clock.AdvanceDays(73)
		total, err = env.svc.GetTotalRewardsInThePoolOfUser(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(10), total)

		env.clock.AdvanceDays(365 * 2)
		total, err = env.svc.GetTotalRewardsInThePoolOfUser(ctx, testStaker, "test1")
		require.NoError(t, err)
		assert.Equal(t, tokens(1).QuoRaw(2), total)
	})
}

func TestGetCustodyBalance(t *testing.T) {
	ctx := t.Context()
	env := newTestEnv()
	require.NoError(t, env.svc.CreateStakePool(ctx, testOwner, yearPool("test1")))
	env.token.SetBalance(testStaker, tokens(4))

	balance, err := env.svc.GetCustodyBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	_, err = env.svc.StakeToken(ctx, testStaker, tokens(4), "test1")
	require.NoError(t, err)

	balance, err = env.svc.GetCustodyBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, tokens(4), balance)
}
