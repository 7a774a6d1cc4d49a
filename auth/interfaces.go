package auth

import "context"

type Service interface {
	Register(ctx context.Context, candidate Account) (Account, error)
	Login(ctx context.Context, credentials Account) (Account, error)
}

// Events receives notifications about account activity.
type Events interface {
	AccountCreated(id int, username string)
	RegistrationFailed(reason error)
	LoginSucceeded(id int)
	LoginFailed()
}

// Repository is the account store. Store assigns the account id and must
// reject a duplicate username with ErrExistingUsername.
type Repository interface {
	Store(ctx context.Context, acc *Account) error
	ExistsByID(ctx context.Context, id int) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByUsernameAndPassword(ctx context.Context, username, password string) (*Account, error)
}
