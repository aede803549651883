//go:build integration

package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
)

// Index prefixes only work if compound keys land in declaration order,
// so read back what Setup created and check the exact key sequences.
func TestSetupCreatesOrderedStakeIndexes(t *testing.T) {
	ctx := t.Context()

	cursor, err := mongoDB.Collection(model.StakeCollection).Indexes().List(ctx)
	require.NoError(t, err)
	defer cursor.Close(ctx)

	var specs []struct {
		Name string `bson:"name"`
		Key  bson.D `bson:"key"`
	}
	require.NoError(t, cursor.All(ctx, &specs))

	keySequences := make([][]string, 0, len(specs))
	for _, spec := range specs {
		fields := make([]string, 0, len(spec.Key))
		for _, e := range spec.Key {
			fields = append(fields, e.Key)
		}
		keySequences = append(keySequences, fields)
	}

	assert.Contains(t, keySequences, []string{"pool_id", "stake_index"})
	assert.Contains(t, keySequences, []string{"pool_id", "staker_address", "stake_index"})
}
