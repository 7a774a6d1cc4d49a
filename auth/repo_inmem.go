package auth

import (
	"context"
	"sync"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[int]*Account
	lastID   int
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[int]*Account{}}
}

func (repo *accountRepository) Store(_ context.Context, acc *Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, v := range repo.accounts {
		if v.Username == acc.Username {
			return ErrExistingUsername
		}
	}

	repo.lastID++
	acc.ID = repo.lastID
	stored := *acc
	repo.accounts[acc.ID] = &stored
	return nil
}

func (repo *accountRepository) ExistsByID(_ context.Context, id int) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	_, ok := repo.accounts[id]
	return ok, nil
}

func (repo *accountRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, v := range repo.accounts {
		if v.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (repo *accountRepository) FindByUsernameAndPassword(_ context.Context, username, password string) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, v := range repo.accounts {
		if v.Username == username && v.Password == password {
			acc := *v
			return &acc, nil
		}
	}
	return nil, ErrNotFound
}
