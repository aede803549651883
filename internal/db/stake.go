package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
)

func (db *Database) SaveNewStake(
	ctx context.Context, stakeDoc *model.StakeDocument, poolTotalStaked string,
) error {
	_, err := db.collection(model.StakeCollection).InsertOne(ctx, stakeDoc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     stakeDoc.ID,
						Message: "stake already exists",
					}
				}
			}
		}
		return err
	}

	filter := bson.M{"_id": stakeDoc.PoolID}
	update := bson.M{"$set": bson.M{"total_staked": poolTotalStaked}}
	res := db.collection(model.StakePoolCollection).FindOneAndUpdate(ctx, filter, update)
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return &NotFoundError{
				Key:     stakeDoc.PoolID,
				Message: "stake pool not found",
			}
		}
		return res.Err()
	}
	return nil
}

func (db *Database) GetStakesByPool(
	ctx context.Context, poolID string,
) ([]*model.StakeDocument, error) {
	filter := bson.M{"pool_id": poolID}
	return db.findStakes(ctx, filter)
}

func (db *Database) GetStakesByPoolAndStaker(
	ctx context.Context, poolID, stakerAddress string,
) ([]*model.StakeDocument, error) {
	filter := bson.M{"pool_id": poolID, "staker_address": stakerAddress}
	return db.findStakes(ctx, filter)
}

// findStakes returns matching stakes in creation order.
func (db *Database) findStakes(
	ctx context.Context, filter bson.M,
) ([]*model.StakeDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "stake_index", Value: 1}})
	cursor, err := db.collection(model.StakeCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakes []*model.StakeDocument
	if err := cursor.All(ctx, &stakes); err != nil {
		return nil, err
	}
	return stakes, nil
}

func (db *Database) CountStakesByPool(
	ctx context.Context, poolID string,
) (uint64, error) {
	filter := bson.M{"pool_id": poolID}
	count, err := db.collection(model.StakeCollection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return uint64(count), nil
}

func (db *Database) ApplyClaimUpdates(
	ctx context.Context, updates []model.ClaimUpdate,
) error {
	if len(updates) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(updates))
	for _, u := range updates {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": u.StakeID}).
			SetUpdate(bson.M{"$set": bson.M{"claimed_reward": u.NewClaimedReward}}))
	}

	opts := options.BulkWrite().SetOrdered(true)
	res, err := db.collection(model.StakeCollection).BulkWrite(ctx, models, opts)
	if err != nil {
		return err
	}
	if res.MatchedCount != int64(len(updates)) {
		return fmt.Errorf("claim settlement matched %d of %d stakes", res.MatchedCount, len(updates))
	}
	return nil
}
