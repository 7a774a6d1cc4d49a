package socialmedia

import (
	"context"
	"errors"
	"fmt"
)

type Service interface {
	AddNewMessage(ctx context.Context, candidate Message) (Message, error)
	RetrieveMessages(ctx context.Context) ([]Message, error)
	RetrieveMessageByID(ctx context.Context, id int) (*Message, error)
	DeleteMessageByID(ctx context.Context, id int) (bool, error)
	UpdateMessageByID(ctx context.Context, update Message, id int) (bool, error)
	RetrieveMessagesByAccountID(ctx context.Context, accountID int) ([]Message, error)
}

// Events receives notifications about message mutations.
type Events interface {
	MessagePosted(id, postedBy int)
	MessageUpdated(id int)
	MessageDeleted(id int)
}

type service struct {
	messages MessageRepository
	accounts Accounts
	events   Events
}

func NewService(messages MessageRepository, accounts Accounts, events Events) Service {
	if events == nil {
		events = nopEvents{}
	}
	return &service{messages: messages, accounts: accounts, events: events}
}

func (svc *service) AddNewMessage(ctx context.Context, candidate Message) (Message, error) {
	m, err := NewMessage(candidate.PostedBy, candidate.MessageText, candidate.TimePostedEpoch)
	if err != nil {
		return Message{}, err
	}

	if err := svc.verifyAuthor(ctx, m.PostedBy); err != nil {
		return Message{}, err
	}

	if err := svc.messages.Store(ctx, m); err != nil {
		if errors.Is(err, ErrInvalidAuthor) {
			return Message{}, ErrInvalidAuthor
		}
		return Message{}, fmt.Errorf("error saving message: %w", err)
	}

	svc.events.MessagePosted(m.ID, m.PostedBy)
	return *m, nil
}

func (svc *service) RetrieveMessages(ctx context.Context) ([]Message, error) {
	messages, err := svc.messages.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return nonNil(messages), nil
}

// RetrieveMessageByID returns nil without error when the message is absent.
func (svc *service) RetrieveMessageByID(ctx context.Context, id int) (*Message, error) {
	m, err := svc.messages.FindByID(ctx, id)
	if errors.Is(err, ErrMessageNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding message %d: %w", id, err)
	}
	return m, nil
}

func (svc *service) DeleteMessageByID(ctx context.Context, id int) (bool, error) {
	exists, err := svc.messages.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error finding message %d: %w", id, err)
	}
	if !exists {
		return false, nil
	}

	err = svc.messages.DeleteByID(ctx, id)
	if errors.Is(err, ErrMessageNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error deleting message %d: %w", id, err)
	}

	svc.events.MessageDeleted(id)
	return true, nil
}

// UpdateMessageByID replaces only the text. A missing message is reported
// before invalid text.
func (svc *service) UpdateMessageByID(ctx context.Context, update Message, id int) (bool, error) {
	m, err := svc.messages.FindByID(ctx, id)
	if errors.Is(err, ErrMessageNotFound) {
		return false, ErrMessageNotFound
	}
	if err != nil {
		return false, fmt.Errorf("error finding message %d: %w", id, err)
	}

	if !validText(update.MessageText) {
		return false, ErrInvalidMessageText
	}

	m.MessageText = update.MessageText
	err = svc.messages.Update(ctx, m)
	if errors.Is(err, ErrMessageNotFound) {
		return false, ErrMessageNotFound
	}
	if err != nil {
		return false, fmt.Errorf("error updating message %d: %w", id, err)
	}

	svc.events.MessageUpdated(id)
	return true, nil
}

func (svc *service) RetrieveMessagesByAccountID(ctx context.Context, accountID int) ([]Message, error) {
	messages, err := svc.messages.FindByPostedBy(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages for account %d: %w", accountID, err)
	}
	return nonNil(messages), nil
}

func (svc *service) verifyAuthor(ctx context.Context, postedBy int) error {
	if postedBy == 0 {
		return ErrInvalidAuthor
	}

	exists, err := svc.accounts.ExistsByID(ctx, postedBy)
	if err != nil {
		return fmt.Errorf("error finding account %d: %w", postedBy, err)
	}
	if !exists {
		return ErrInvalidAuthor
	}
	return nil
}

func nonNil(messages []Message) []Message {
	if messages == nil {
		return []Message{}
	}
	return messages
}

type nopEvents struct{}

func (nopEvents) MessagePosted(int, int) {}
func (nopEvents) MessageUpdated(int)     {}
func (nopEvents) MessageDeleted(int)     {}
