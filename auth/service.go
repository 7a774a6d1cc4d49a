package auth

import (
	"context"
	"errors"
	"fmt"
)

type service struct {
	accounts Repository
	events   Events
}

func NewService(accounts Repository, events Events) Service {
	if events == nil {
		events = nopEvents{}
	}
	return &service{accounts: accounts, events: events}
}

func (svc *service) Register(ctx context.Context, candidate Account) (Account, error) {
	acc, err := NewAccount(candidate.Username, candidate.Password)
	if err != nil {
		svc.events.RegistrationFailed(err)
		return Account{}, err
	}

	if err := svc.verifyNotInUse(ctx, acc.Username); err != nil {
		svc.events.RegistrationFailed(err)
		return Account{}, err
	}

	if err = svc.accounts.Store(ctx, acc); err != nil {
		svc.events.RegistrationFailed(err)
		if errors.Is(err, ErrExistingUsername) {
			return Account{}, ErrExistingUsername
		}
		return Account{}, fmt.Errorf("error saving account: %w", err)
	}

	svc.events.AccountCreated(acc.ID, acc.Username)
	return *acc, nil
}

func (svc *service) Login(ctx context.Context, credentials Account) (Account, error) {
	acc, err := svc.accounts.FindByUsernameAndPassword(ctx, credentials.Username, credentials.Password)
	if errors.Is(err, ErrNotFound) {
		svc.events.LoginFailed()
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, fmt.Errorf("error finding account: %w", err)
	}

	svc.events.LoginSucceeded(acc.ID)
	return *acc, nil
}

// verifyNotInUse is a fast path only; the repository's uniqueness constraint
// decides concurrent registrations.
func (svc *service) verifyNotInUse(ctx context.Context, username string) error {
	exists, err := svc.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return ErrExistingUsername
	}
	return nil
}

type nopEvents struct{}

func (nopEvents) AccountCreated(int, string) {}
func (nopEvents) RegistrationFailed(error)   {}
func (nopEvents) LoginSucceeded(int)         {}
func (nopEvents) LoginFailed()               {}
