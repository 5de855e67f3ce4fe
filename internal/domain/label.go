package domain

import (
	"fmt"
	"strings"
)

type Label struct {
	ID    string
	Name  string
	Color string
}

// Folder returns the pseudo-folder tag for messages filed under the label.
func (l Label) Folder() Folder {
	return Folder(l.ID)
}

// NameKey is the form under which label names are compared.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateLabelName checks name against the existing labels, skipping the
// one with id skipID.
func ValidateLabelName(name string, existing []Label, skipID string) error {
	key := NameKey(name)
	if key == "" {
		return ErrEmptyName
	}
	for _, l := range existing {
		if l.ID == skipID {
			continue
		}
		if NameKey(l.Name) == key {
			return fmt.Errorf("label %q: %w", strings.TrimSpace(name), ErrDuplicateName)
		}
	}
	return nil
}

// ValidateLabels checks a full replacement set of labels. Any blank name or
// case-insensitive name collision rejects the whole batch, as does a
// repeated non-empty ID.
func ValidateLabels(batch []Label) error {
	names := make(map[string]struct{}, len(batch))
	ids := make(map[string]struct{}, len(batch))
	for i, l := range batch {
		key := NameKey(l.Name)
		if key == "" {
			return fmt.Errorf("label #%d: %w", i+1, ErrEmptyName)
		}
		if _, ok := names[key]; ok {
			return fmt.Errorf("label %q: %w", strings.TrimSpace(l.Name), ErrDuplicateName)
		}
		names[key] = struct{}{}
		if l.ID == "" {
			continue
		}
		if _, ok := ids[l.ID]; ok {
			return fmt.Errorf("label %s: %w", l.ID, ErrDuplicateID)
		}
		ids[l.ID] = struct{}{}
	}
	return nil
}
