package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jimiolaniyan/socialmedia/storage"
)

type mongoRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoRepository expects the unique username index created by
// storage.EnsureMongoIndexes.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{db: db, collection: db.Collection(storage.AccountsCollection)}
}

func (m *mongoRepository) Store(ctx context.Context, acc *Account) error {
	id, err := storage.NextSequence(ctx, m.db, storage.AccountsCollection)
	if err != nil {
		return err
	}

	doc := *acc
	doc.ID = id
	if _, err := m.collection.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrExistingUsername
		}
		return err
	}

	acc.ID = id
	return nil
}

func (m *mongoRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	return m.exists(ctx, bson.M{"_id": id})
}

func (m *mongoRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.exists(ctx, bson.M{"username": username})
}

func (m *mongoRepository) FindByUsernameAndPassword(ctx context.Context, username, password string) (*Account, error) {
	return m.findAccountBy(ctx, bson.M{"username": username, "password": password})
}

func (m *mongoRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := m.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *mongoRepository) findAccountBy(ctx context.Context, filter bson.M) (*Account, error) {
	var acc Account
	sr := m.collection.FindOne(ctx, filter)

	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&acc); err != nil {
		return nil, err
	}

	return &acc, nil
}
