// Package memory implements store.Store on plain Go slices guarded by a
// single mutex.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store is the in-memory email store. The zero value is not usable; call New.
type Store struct {
	mu sync.RWMutex

	// messages is kept in display order: the most recently added first.
	messages []domain.Message
	labels   []domain.Label
	replies  map[string][]domain.Reply

	// ids holds every ID ever issued or seeded so none is handed out twice,
	// even after the record is deleted.
	ids   map[string]struct{}
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		replies: make(map[string][]domain.Reply),
		ids:     make(map[string]struct{}),
		newID:   store.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed appends fixture data. It must not be called concurrently with
// readers that expect the seeded state to appear atomically; it takes the
// write lock for its whole duration.
func (s *Store) Seed(_ context.Context, f store.Fixtures) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("failed to seed: record without id")
		}
		if _, ok := s.ids[id]; ok {
			return fmt.Errorf("failed to seed %s: %w", id, domain.ErrDuplicateID)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("failed to seed %s: %w", id, domain.ErrDuplicateID)
		}
		seen[id] = struct{}{}
		return nil
	}

	seeded := make(map[string]struct{}, len(f.Messages))
	for _, m := range f.Messages {
		if err := claim(m.ID); err != nil {
			return err
		}
		seeded[m.ID] = struct{}{}
	}
	for _, l := range f.Labels {
		if err := claim(l.ID); err != nil {
			return err
		}
	}
	if err := domain.ValidateLabels(append(cloneLabels(s.labels), f.Labels...)); err != nil {
		return fmt.Errorf("failed to seed labels: %w", err)
	}
	for msgID, thread := range f.Replies {
		if _, ok := seeded[msgID]; !ok && s.indexOf(msgID) < 0 {
			return fmt.Errorf("failed to seed replies for %s: %w", msgID, domain.ErrMessageNotFound)
		}
		for _, r := range thread {
			if err := claim(r.ID); err != nil {
				return err
			}
		}
	}

	for id := range seen {
		s.ids[id] = struct{}{}
	}
	for _, m := range f.Messages {
		s.messages = append(s.messages, m.Clone())
	}
	s.labels = append(s.labels, f.Labels...)
	for msgID, thread := range f.Replies {
		s.replies[msgID] = append(s.replies[msgID], thread...)
	}
	return nil
}

// Close is a no-op; the store lives as long as the process holds it.
func (s *Store) Close() error {
	return nil
}

// issueID returns an ID never seen by this store. Callers hold the write lock.
func (s *Store) issueID() string {
	for {
		id := s.newID()
		if _, ok := s.ids[id]; ok || id == "" {
			continue
		}
		s.ids[id] = struct{}{}
		return id
	}
}

func cloneLabels(labels []domain.Label) []domain.Label {
	out := make([]domain.Label, len(labels))
	copy(out, labels)
	return out
}
