package socialmedia

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jimiolaniyan/socialmedia/auth"
	"github.com/jimiolaniyan/socialmedia/storage"
)

// StoreTestSuite runs the same scenario against a real store.
type StoreTestSuite struct {
	suite.Suite
	accounts auth.Repository
	messages MessageRepository
}

func (s *StoreTestSuite) TestAccountsAndMessages() {
	ctx := context.Background()
	username := "it-" + time.Now().Format("150405.000000000")

	acc := auth.Account{Username: username, Password: "password"}
	require.NoError(s.T(), s.accounts.Store(ctx, &acc))
	assert.Greater(s.T(), acc.ID, 0)
	assert.Equal(s.T(), auth.ErrExistingUsername, s.accounts.Store(ctx, &auth.Account{Username: username, Password: "other"}))

	found, err := s.accounts.FindByUsernameAndPassword(ctx, username, "password")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), acc, *found)

	svc := NewService(s.messages, s.accounts, nil)
	m, err := svc.AddNewMessage(ctx, Message{PostedBy: acc.ID, MessageText: "hello", TimePostedEpoch: 42})
	require.NoError(s.T(), err)

	byAccount, err := svc.RetrieveMessagesByAccountID(ctx, acc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []Message{m}, byAccount)

	updated, err := svc.UpdateMessageByID(ctx, Message{MessageText: "edited"}, m.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), updated)

	got, err := svc.RetrieveMessageByID(ctx, m.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "edited", got.MessageText)
	assert.Equal(s.T(), int64(42), got.TimePostedEpoch)

	deleted, err := svc.DeleteMessageByID(ctx, m.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	deleted, err = svc.DeleteMessageByID(ctx, m.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, db, err := storage.ConnectMongo(ctx, uri, "socialmedia_test")
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	suite.Run(t, &StoreTestSuite{
		accounts: auth.NewMongoRepository(db),
		messages: NewMongoMessageRepository(db),
	})
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := storage.OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, storage.Migrate(ctx, db))

	suite.Run(t, &StoreTestSuite{
		accounts: auth.NewPostgresRepository(db),
		messages: NewPostgresMessageRepository(db),
	})
}
