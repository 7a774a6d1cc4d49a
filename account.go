package socialmedia

import "context"

// Accounts is the part of the account store the message service needs.
// auth.Repository implementations satisfy it.
type Accounts interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
}
