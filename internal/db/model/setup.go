package model

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelab-io/staking-pool-engine/internal/config"
)

type index struct {
	// Keys is ordered; compound index prefixes depend on it.
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	StakePoolCollection: {{}},
	StakeCollection: {
		{Keys: bson.D{{Key: "pool_id", Value: 1}, {Key: "stake_index", Value: 1}}, Unique: false},
		{Keys: bson.D{{Key: "pool_id", Value: 1}, {Key: "staker_address", Value: 1}, {Key: "stake_index", Value: 1}}, Unique: false},
	},
}

// Setup creates the collections and indexes the engine relies on. It is
// idempotent and is called once on server start.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb after setup")
		}
	}()

	database := client.Database(cfg.DbName)

	existing, err := database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for name, idxs := range collections {
		if !existingSet[name] {
			if err := database.CreateCollection(ctx, name); err != nil {
				return err
			}
			log.Debug().Str("collection", name).Msg("collection created")
		}
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	if len(idx.Keys) == 0 {
		return nil
	}

	model := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, model); err != nil {
		return err
	}

	log.Debug().Str("collection", collectionName).Msg("index created")
	return nil
}
