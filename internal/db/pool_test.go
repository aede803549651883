//go:build integration

package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelab-io/staking-pool-engine/internal/db"
	"github.com/stakelab-io/staking-pool-engine/testutil"
)

func TestStakePool(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not found", func(t *testing.T) {
		doc, err := testDB.GetStakePoolByID(ctx, "missing")
		assert.True(t, db.IsNotFoundError(err))
		assert.Nil(t, doc)

		exists, err := testDB.StakePoolExists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("ok", func(t *testing.T) {
		doc := testutil.RandomStakePoolDocument()
		err := testDB.SaveNewStakePool(ctx, doc)
		require.NoError(t, err)

		foundDoc, err := testDB.GetStakePoolByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc, foundDoc)

		exists, err := testDB.StakePoolExists(ctx, doc.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})
	t.Run("duplicate id", func(t *testing.T) {
		doc := testutil.RandomStakePoolDocument()
		err := testDB.SaveNewStakePool(ctx, doc)
		require.NoError(t, err)

		err = testDB.SaveNewStakePool(ctx, doc)
		assert.True(t, db.IsDuplicateKeyError(err))
	})
}
