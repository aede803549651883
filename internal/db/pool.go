package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
)

func (db *Database) SaveNewStakePool(
	ctx context.Context, poolDoc *model.StakePoolDocument,
) error {
	_, err := db.collection(model.StakePoolCollection).InsertOne(ctx, poolDoc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     poolDoc.ID,
						Message: "stake pool already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetStakePoolByID(
	ctx context.Context, poolID string,
) (*model.StakePoolDocument, error) {
	filter := bson.M{"_id": poolID}
	res := db.collection(model.StakePoolCollection).FindOne(ctx, filter)

	var poolDoc model.StakePoolDocument
	if err := res.Decode(&poolDoc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     poolID,
				Message: "stake pool not found",
			}
		}
		return nil, err
	}
	return &poolDoc, nil
}

func (db *Database) StakePoolExists(
	ctx context.Context, poolID string,
) (bool, error) {
	filter := bson.M{"_id": poolID}
	count, err := db.collection(model.StakePoolCollection).CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
