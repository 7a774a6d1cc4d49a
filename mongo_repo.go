package socialmedia

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jimiolaniyan/socialmedia/storage"
)

type mongoMessageRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoMessageRepository stores messages in the messages collection. Mongo
// has no foreign keys, so author existence is only checked by the service.
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{db: db, collection: db.Collection(storage.MessagesCollection)}
}

func (m *mongoMessageRepository) Store(ctx context.Context, msg *Message) error {
	id, err := storage.NextSequence(ctx, m.db, storage.MessagesCollection)
	if err != nil {
		return err
	}

	doc := *msg
	doc.ID = id
	if _, err := m.collection.InsertOne(ctx, &doc); err != nil {
		return err
	}

	msg.ID = id
	return nil
}

func (m *mongoMessageRepository) Update(ctx context.Context, msg *Message) error {
	res, err := m.collection.ReplaceOne(ctx, bson.M{"_id": msg.ID}, msg)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (m *mongoMessageRepository) FindByID(ctx context.Context, id int) (*Message, error) {
	var msg Message
	sr := m.collection.FindOne(ctx, bson.M{"_id": id})

	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return nil, ErrMessageNotFound
	}

	if err := sr.Decode(&msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (m *mongoMessageRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	n, err := m.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *mongoMessageRepository) FindAll(ctx context.Context) ([]Message, error) {
	return m.findMessagesBy(ctx, bson.M{})
}

func (m *mongoMessageRepository) FindByPostedBy(ctx context.Context, accountID int) ([]Message, error) {
	return m.findMessagesBy(ctx, bson.M{"postedBy": accountID})
}

func (m *mongoMessageRepository) DeleteByID(ctx context.Context, id int) error {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (m *mongoMessageRepository) findMessagesBy(ctx context.Context, filter bson.M) ([]Message, error) {
	cur, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Message{}
	for cur.Next(ctx) {
		var msg Message
		if err := cur.Decode(&msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, cur.Err()
}
