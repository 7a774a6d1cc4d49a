package socialmedia

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jimiolaniyan/socialmedia/storage"
)

const selectMessage = `SELECT message_id, posted_by, message_text, time_posted_epoch FROM message`

type postgresMessageRepository struct {
	db *sql.DB
}

func NewPostgresMessageRepository(db *sql.DB) MessageRepository {
	return &postgresMessageRepository{db: db}
}

func (p *postgresMessageRepository) Store(ctx context.Context, m *Message) error {
	var id int
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO message (posted_by, message_text, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`, m.PostedBy, m.MessageText, m.TimePostedEpoch).Scan(&id)
	if storage.IsForeignKeyViolation(err) {
		return ErrInvalidAuthor
	}
	if err != nil {
		return err
	}

	m.ID = id
	return nil
}

func (p *postgresMessageRepository) Update(ctx context.Context, m *Message) error {
	res, err := p.db.ExecContext(ctx, `UPDATE message SET message_text = $2 WHERE message_id = $1`, m.ID, m.MessageText)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (p *postgresMessageRepository) FindByID(ctx context.Context, id int) (*Message, error) {
	var m Message
	err := p.db.QueryRowContext(ctx, selectMessage+` WHERE message_id = $1`, id).
		Scan(&m.ID, &m.PostedBy, &m.MessageText, &m.TimePostedEpoch)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (p *postgresMessageRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM message WHERE message_id = $1)`, id).Scan(&exists)
	return exists, err
}

func (p *postgresMessageRepository) FindAll(ctx context.Context) ([]Message, error) {
	return p.query(ctx, selectMessage+` ORDER BY message_id`)
}

func (p *postgresMessageRepository) FindByPostedBy(ctx context.Context, accountID int) ([]Message, error) {
	return p.query(ctx, selectMessage+` WHERE posted_by = $1 ORDER BY message_id`, accountID)
}

func (p *postgresMessageRepository) DeleteByID(ctx context.Context, id int) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM message WHERE message_id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (p *postgresMessageRepository) query(ctx context.Context, query string, args ...interface{}) ([]Message, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.PostedBy, &m.MessageText, &m.TimePostedEpoch); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMessageNotFound
	}
	return nil
}
