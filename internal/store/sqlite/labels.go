package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

// ListLabels returns all labels in display order.
func (s *DB) ListLabels(ctx context.Context) ([]domain.Label, error) {
	return listLabels(ctx, s.db)
}

func listLabels(ctx context.Context, q sqlx.QueryerContext) ([]domain.Label, error) {
	labels := make([]domain.Label, 0)
	if err := sqlx.SelectContext(ctx, q, &labels,
		`SELECT id, name, color FROM labels ORDER BY position`); err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func insertLabel(ctx context.Context, tx *sqlx.Tx, l domain.Label) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO labels (id, position, name, color)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM labels), ?, ?)`,
		l.ID, l.Name, l.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to insert label: %w", err)
	}
	return nil
}

// AddLabel creates a label, rejecting names that collide case-insensitively.
func (s *DB) AddLabel(ctx context.Context, name, color string) (domain.Label, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Label{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := listLabels(ctx, tx)
	if err != nil {
		return domain.Label{}, err
	}
	if err := domain.ValidateLabelName(name, existing, ""); err != nil {
		return domain.Label{}, fmt.Errorf("failed to add label: %w", err)
	}

	id, err := s.issueID(ctx, tx)
	if err != nil {
		return domain.Label{}, err
	}
	l := domain.Label{ID: id, Name: strings.TrimSpace(name), Color: color}
	if err := insertLabel(ctx, tx, l); err != nil {
		return domain.Label{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Label{}, fmt.Errorf("failed to commit label: %w", err)
	}
	return l, nil
}

// DeleteLabel removes a label. Messages filed under it are not touched.
func (s *DB) DeleteLabel(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

// ReplaceLabels swaps the whole label set in one transaction. A given ID
// must belong to an existing label or be one never issued before.
func (s *DB) ReplaceLabels(ctx context.Context, batch []domain.Label) ([]domain.Label, error) {
	if err := domain.ValidateLabels(batch); err != nil {
		return nil, fmt.Errorf("failed to replace labels: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := listLabels(ctx, tx)
	if err != nil {
		return nil, err
	}
	current := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		current[l.ID] = struct{}{}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM labels`); err != nil {
		return nil, fmt.Errorf("failed to clear labels: %w", err)
	}

	out := make([]domain.Label, len(batch))
	for i, l := range batch {
		l.Name = strings.TrimSpace(l.Name)
		if l.ID == "" {
			if l.ID, err = s.issueID(ctx, tx); err != nil {
				return nil, err
			}
		} else if _, ok := current[l.ID]; !ok {
			fresh, err := reserveID(ctx, tx, l.ID)
			if err != nil {
				return nil, err
			}
			if !fresh {
				return nil, fmt.Errorf("failed to replace labels: label %s: %w", l.ID, domain.ErrDuplicateID)
			}
		}
		if err := insertLabel(ctx, tx, l); err != nil {
			return nil, err
		}
		out[i] = l
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit labels: %w", err)
	}
	return out, nil
}
