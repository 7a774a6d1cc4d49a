package socialmedia

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const maxMessageLength = 255

var (
	ErrInvalidMessageText = errors.New("message text must be between 1 and 255 characters")
	ErrInvalidAuthor      = errors.New("message author does not exist")
	ErrMessageNotFound    = errors.New("message not found")
	ErrInvalidID          = errors.New("id must be an integer")
	ErrMalformedRequest   = errors.New("malformed request body")
)

// MessageRepository is the message store. Store assigns the message id.
// Update and DeleteByID return ErrMessageNotFound when no row matches.
type MessageRepository interface {
	Store(ctx context.Context, m *Message) error
	Update(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id int) (*Message, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	FindAll(ctx context.Context) ([]Message, error)
	FindByPostedBy(ctx context.Context, accountID int) ([]Message, error)
	DeleteByID(ctx context.Context, id int) error
}

// Message is a short text posted by an account. TimePostedEpoch is supplied
// by the client and stored as is.
type Message struct {
	ID              int    `json:"messageId" bson:"_id"`
	PostedBy        int    `json:"postedBy" bson:"postedBy"`
	MessageText     string `json:"messageText" bson:"messageText"`
	TimePostedEpoch int64  `json:"timePostedEpoch" bson:"timePostedEpoch"`
}

func NewMessage(postedBy int, text string, timePosted int64) (*Message, error) {
	if !validText(text) {
		return nil, ErrInvalidMessageText
	}

	return &Message{PostedBy: postedBy, MessageText: text, TimePostedEpoch: timePosted}, nil
}

func validText(text string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	return n > 0 && n <= maxMessageLength
}
