package memory

import (
	"context"
	"slices"

	"github.com/lu-zhengda/mailbox/internal/domain"
)

// ListByFolder returns the messages filed in folder, newest additions first.
func (s *Store) ListByFolder(_ context.Context, folder domain.Folder) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listByFolder(folder), nil
}

func (s *Store) listByFolder(folder domain.Folder) []domain.Message {
	out := make([]domain.Message, 0)
	for i := range s.messages {
		if s.messages[i].Folder == folder {
			out = append(out, s.messages[i].Clone())
		}
	}
	return out
}

// Search returns the messages in folder that match query on any of sender,
// subject, preview, content or labels.
func (s *Store) Search(_ context.Context, folder domain.Folder, query string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Filter(s.listByFolder(folder), query), nil
}

// UnreadCount counts the unread messages in folder.
func (s *Store) UnreadCount(_ context.Context, folder domain.Folder) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for i := range s.messages {
		if s.messages[i].Folder == folder && !s.messages[i].IsRead {
			n++
		}
	}
	return n, nil
}

// GetMessage returns a copy of the message with the given ID.
func (s *Store) GetMessage(_ context.Context, id string) (*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrMessageNotFound
	}
	m := s.messages[i].Clone()
	return &m, nil
}

// AddMessage stores draft at the head of the collection under a fresh ID.
func (s *Store) AddMessage(_ context.Context, draft domain.Draft) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := draft.Materialize(s.issueID())
	s.messages = slices.Insert(s.messages, 0, m)
	return m.Clone(), nil
}

// DeleteMessage removes the message and its replies.
func (s *Store) DeleteMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.messages = slices.Delete(s.messages, i, i+1)
	delete(s.replies, id)
	return nil
}

func (s *Store) SetRead(_ context.Context, id string, read bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.messages[i].IsRead = read
	}
	return nil
}

func (s *Store) ToggleStar(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.messages[i].IsStarred = !s.messages[i].IsStarred
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.messages, func(m domain.Message) bool {
		return m.ID == id
	})
}
