package socialmedia

import (
	"context"
	"sort"
	"sync"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages map[int]*Message
	lastID   int
}

func NewMessageRepository() MessageRepository {
	return &messageRepository{messages: map[int]*Message{}}
}

func (repo *messageRepository) Store(_ context.Context, m *Message) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.lastID++
	m.ID = repo.lastID
	stored := *m
	repo.messages[m.ID] = &stored
	return nil
}

func (repo *messageRepository) Update(_ context.Context, m *Message) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.messages[m.ID]; !ok {
		return ErrMessageNotFound
	}
	stored := *m
	repo.messages[m.ID] = &stored
	return nil
}

func (repo *messageRepository) FindByID(_ context.Context, id int) (*Message, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if m, ok := repo.messages[id]; ok {
		found := *m
		return &found, nil
	}
	return nil, ErrMessageNotFound
}

func (repo *messageRepository) ExistsByID(_ context.Context, id int) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	_, ok := repo.messages[id]
	return ok, nil
}

func (repo *messageRepository) FindAll(_ context.Context) ([]Message, error) {
	return repo.filter(func(*Message) bool { return true }), nil
}

func (repo *messageRepository) FindByPostedBy(_ context.Context, accountID int) ([]Message, error) {
	return repo.filter(func(m *Message) bool { return m.PostedBy == accountID }), nil
}

func (repo *messageRepository) DeleteByID(_ context.Context, id int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.messages[id]; !ok {
		return ErrMessageNotFound
	}
	delete(repo.messages, id)
	return nil
}

// filter returns matching messages ordered by id.
func (repo *messageRepository) filter(keep func(*Message) bool) []Message {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := []Message{}
	for _, m := range repo.messages {
		if keep(m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
