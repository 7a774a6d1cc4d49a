package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jimiolaniyan/socialmedia/storage"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (p *postgresRepository) Store(ctx context.Context, acc *Account) error {
	var id int
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id
	`, acc.Username, acc.Password).Scan(&id)
	if storage.IsUniqueViolation(err) {
		return ErrExistingUsername
	}
	if err != nil {
		return err
	}

	acc.ID = id
	return nil
}

func (p *postgresRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM account WHERE account_id = $1)`, id).Scan(&exists)
	return exists, err
}

func (p *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM account WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (p *postgresRepository) FindByUsernameAndPassword(ctx context.Context, username, password string) (*Account, error) {
	var acc Account
	err := p.db.QueryRowContext(ctx, `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1 AND password = $2
	`, username, password).Scan(&acc.ID, &acc.Username, &acc.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
