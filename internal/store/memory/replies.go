package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/lu-zhengda/mailbox/internal/domain"
)

// AddReply appends a reply to the thread under messageID.
func (s *Store) AddReply(_ context.Context, messageID string, draft domain.ReplyDraft) (domain.Reply, error) {
	if err := draft.Validate(); err != nil {
		return domain.Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(messageID) < 0 {
		return domain.Reply{}, fmt.Errorf("failed to reply to %s: %w", messageID, domain.ErrMessageNotFound)
	}
	r := draft.Materialize(s.issueID())
	s.replies[messageID] = append(s.replies[messageID], r)
	return r, nil
}

// ListReplies returns the thread under messageID, oldest first.
func (s *Store) ListReplies(_ context.Context, messageID string) ([]domain.Reply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread := s.replies[messageID]
	out := make([]domain.Reply, len(thread))
	copy(out, thread)
	return out, nil
}

func (s *Store) DeleteReply(_ context.Context, messageID, replyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.replies[messageID]
	if !ok {
		return nil
	}
	s.replies[messageID] = slices.DeleteFunc(thread, func(r domain.Reply) bool {
		return r.ID == replyID
	})
	return nil
}

func (s *Store) ToggleReplyStar(_ context.Context, messageID, replyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := s.replies[messageID]
	for i := range thread {
		if thread[i].ID == replyID {
			thread[i].IsStarred = !thread[i].IsStarred
			return nil
		}
	}
	return nil
}
