package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jimiolaniyan/socialmedia"
	"github.com/jimiolaniyan/socialmedia/auth"
	"github.com/jimiolaniyan/socialmedia/config"
	"github.com/jimiolaniyan/socialmedia/storage"
)

type store struct {
	accounts auth.Repository
	messages socialmedia.MessageRepository
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &store{
			accounts: auth.NewMongoRepository(db),
			messages: socialmedia.NewMongoMessageRepository(db),
			ping:     func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			close:    client.Disconnect,
		}, nil

	case config.DriverPostgres:
		db, err := storage.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &store{
			accounts: auth.NewPostgresRepository(db),
			messages: socialmedia.NewPostgresMessageRepository(db),
			ping:     db.PingContext,
			close:    func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMemory:
		return &store{
			accounts: auth.NewAccountRepository(),
			messages: socialmedia.NewMessageRepository(),
			ping:     func(context.Context) error { return nil },
			close:    func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
