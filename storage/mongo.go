package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	AccountsCollection = "accounts"
	MessagesCollection = "messages"
	CountersCollection = "counters"
)

// ConnectMongo connects to uri, pings the primary and ensures the indexes the
// repositories rely on.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}

	return client, db, nil
}

// EnsureMongoIndexes is idempotent.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AccountsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_username"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(MessagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postedBy", Value: 1}},
		Options: options.Index().SetName("idx_posted_by"),
	})
	return err
}

type counter struct {
	Seq int `bson:"seq"`
}

// NextSequence atomically increments and returns the counter called name.
// Sequences start at 1.
func NextSequence(ctx context.Context, db *mongo.Database, name string) (int, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	sr := db.Collection(CountersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	)

	var c counter
	if err := sr.Decode(&c); err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return c.Seq, nil
}
