package sqlite

import (
	"context"
	"slices"
	"testing"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/store"
	"github.com/lu-zhengda/mailbox/internal/store/storetest"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return newTestDB(t)
	})
}

func TestNew_CreatesTables(t *testing.T) {
	db := newTestDB(t)

	var tables []string
	err := db.db.SelectContext(context.Background(), &tables,
		"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		t.Fatalf("query sqlite_master error: %v", err)
	}

	expected := []string{"issued_ids", "labels", "message_labels", "messages", "replies"}
	for _, exp := range expected {
		if !slices.Contains(tables, exp) {
			t.Errorf("expected table %q not found in %v", exp, tables)
		}
	}
}

func TestNew_Isolated(t *testing.T) {
	ctx := context.Background()
	a := newTestDB(t)
	b := newTestDB(t)

	if _, err := a.AddMessage(ctx, domain.Draft{Sender: "You", Folder: domain.FolderSent}); err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}
	got, err := b.ListByFolder(ctx, domain.FolderSent)
	if err != nil {
		t.Fatalf("ListByFolder() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("second database sees %d messages, want 0", len(got))
	}
}

func TestLabelOrderSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	m, err := db.AddMessage(ctx, domain.Draft{
		Sender: "You",
		Folder: domain.FolderDrafts,
		Labels: []string{"zeta", "Alpha", "mid"},
	})
	if err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}

	got, err := db.GetMessage(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	if want := []string{"zeta", "Alpha", "mid"}; !slices.Equal(got.Labels, want) {
		t.Errorf("Labels = %v, want %v", got.Labels, want)
	}
	if got.Origin != nil {
		t.Errorf("Origin = %#v, want nil", got.Origin)
	}
}
