package auth

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Account is a registered user of the application.
type Account struct {
	ID       int    `json:"accountId" bson:"_id"`
	Username string `json:"username" bson:"username"`
	Password string `json:"password" bson:"password"`
}

const minPasswordLength = 4

var (
	ErrInvalidUsername    = errors.New("username cannot be empty")
	ErrInvalidPassword    = errors.New("password must be at least 4 characters")
	ErrExistingUsername   = errors.New("username already taken")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("Unauthorized")
)

//NewAccount validates username and password and returns a new Account if
// arguments are valid
func NewAccount(username string, password string) (*Account, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrInvalidUsername
	}

	if strings.TrimSpace(password) == "" || utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrInvalidPassword
	}

	return &Account{Username: username, Password: password}, nil
}
