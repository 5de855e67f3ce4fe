package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/lu-zhengda/mailbox/internal/domain"
)

// ListLabels returns the labels in display order.
func (s *Store) ListLabels(_ context.Context) ([]domain.Label, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLabels(s.labels), nil
}

// AddLabel creates a label, rejecting names that collide case-insensitively.
func (s *Store) AddLabel(_ context.Context, name, color string) (domain.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := domain.ValidateLabelName(name, s.labels, ""); err != nil {
		return domain.Label{}, fmt.Errorf("failed to add label: %w", err)
	}
	l := domain.Label{
		ID:    s.issueID(),
		Name:  strings.TrimSpace(name),
		Color: color,
	}
	s.labels = append(s.labels, l)
	return l, nil
}

// DeleteLabel removes a label. Messages that reference it are left alone.
func (s *Store) DeleteLabel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.labels = slices.DeleteFunc(s.labels, func(l domain.Label) bool {
		return l.ID == id
	})
	return nil
}

// ReplaceLabels swaps in a full replacement set of labels. Entries without
// an ID are new labels and get one. A given ID must belong to an existing
// label or be one the store never issued. Nothing changes if the batch is
// invalid.
func (s *Store) ReplaceLabels(_ context.Context, batch []domain.Label) ([]domain.Label, error) {
	if err := domain.ValidateLabels(batch); err != nil {
		return nil, fmt.Errorf("failed to replace labels: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]struct{}, len(s.labels))
	for _, l := range s.labels {
		current[l.ID] = struct{}{}
	}
	for _, l := range batch {
		if l.ID == "" {
			continue
		}
		_, isLabel := current[l.ID]
		if _, issued := s.ids[l.ID]; issued && !isLabel {
			return nil, fmt.Errorf("failed to replace labels: label %s: %w", l.ID, domain.ErrDuplicateID)
		}
	}

	next := make([]domain.Label, len(batch))
	for i, l := range batch {
		l.Name = strings.TrimSpace(l.Name)
		if l.ID == "" {
			l.ID = s.issueID()
		} else {
			s.ids[l.ID] = struct{}{}
		}
		next[i] = l
	}
	s.labels = next
	return cloneLabels(next), nil
}
