package socialmedia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jimiolaniyan/socialmedia/auth"
)

func registerAccount(t *testing.T, accounts auth.Repository, username string) auth.Account {
	t.Helper()
	acc := auth.Account{Username: username, Password: "password"}
	require.NoError(t, accounts.Store(context.Background(), &acc))
	return acc
}

func postMessages(t *testing.T, svc Service, postedBy int, texts ...string) []Message {
	t.Helper()
	var out []Message
	for i, text := range texts {
		m, err := svc.AddNewMessage(context.Background(), Message{PostedBy: postedBy, MessageText: text, TimePostedEpoch: int64(1669947792 + i)})
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

type eventsSpy struct {
	posted, updated, deleted []int
}

func (e *eventsSpy) MessagePosted(id, _ int) { e.posted = append(e.posted, id) }
func (e *eventsSpy) MessageUpdated(id int)   { e.updated = append(e.updated, id) }
func (e *eventsSpy) MessageDeleted(id int)   { e.deleted = append(e.deleted, id) }
