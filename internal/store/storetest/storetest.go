// Package storetest is the behavioral test suite every store.Store
// implementation must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/store"
)

// Factory returns a fresh, empty store. Cleanup is up to the factory.
type Factory func(t *testing.T) store.Store

// Run executes the whole suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"ListByFolder", testListByFolder},
		{"AddMessage", testAddMessage},
		{"AddMessage unique ids", testAddMessageUniqueIDs},
		{"Search", testSearch},
		{"UnreadCount", testUnreadCount},
		{"DeleteMessage", testDeleteMessage},
		{"ToggleStar", testToggleStar},
		{"GetMessage", testGetMessage},
		{"Snapshots", testSnapshots},
		{"AddLabel", testAddLabel},
		{"DeleteLabel", testDeleteLabel},
		{"ReplaceLabels", testReplaceLabels},
		{"Replies", testReplies},
		{"Seed", testSeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func fixtures() store.Fixtures {
	return store.Fixtures{
		Messages: []domain.Message{
			{
				ID: "1", Sender: "John Doe", Subject: "Meeting Request",
				Preview: "Would you like to meet?", Content: "<p>Would you like to meet?</p>",
				Timestamp: "10:30 AM", Folder: domain.FolderInbox,
				Origin: domain.Received{SenderEmail: "john@example.com"},
			},
			{
				ID: "2", Sender: "Alice Smith", Subject: "Project Update",
				Preview: "Status of the rollout", Content: "<p>Status of the rollout</p>",
				Timestamp: "Yesterday", Folder: domain.FolderInbox, Labels: []string{"Work"},
				Origin: domain.Received{SenderEmail: "alice@example.com"},
			},
			{
				ID: "3", Sender: "You", Subject: "Re: Budget",
				Preview: "Numbers attached", Content: "<p>Numbers attached</p>",
				Timestamp: "Mon", IsRead: true, Folder: domain.FolderSent,
				Origin: domain.Composed{To: "finance@example.com"},
			},
		},
		Labels: []domain.Label{
			{ID: "l1", Name: "Clients", Color: "red"},
			{ID: "l2", Name: "Personals", Color: "blue"},
		},
		Replies: map[string][]domain.Reply{
			"1": {
				{ID: "r1", Sender: "John Doe", Content: "Thanks for the update!", Timestamp: "10:45 AM"},
			},
		},
	}
}

func seed(t *testing.T, s store.Store) {
	t.Helper()
	if err := s.Seed(context.Background(), fixtures()); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
}

func ids(msgs []domain.Message) []string {
	out := make([]string, len(msgs))
	for i := range msgs {
		out[i] = msgs[i].ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testListByFolder(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	got, err := s.ListByFolder(ctx, domain.FolderInbox)
	if err != nil {
		t.Fatalf("ListByFolder() error: %v", err)
	}
	if want := []string{"1", "2"}; !equal(ids(got), want) {
		t.Errorf("ListByFolder(inbox) ids = %v, want %v", ids(got), want)
	}
	if r, ok := got[0].Origin.(domain.Received); !ok || r.SenderEmail != "john@example.com" {
		t.Errorf("got[0].Origin = %#v, want Received{john@example.com}", got[0].Origin)
	}

	got, err = s.ListByFolder(ctx, domain.Folder("no-such-folder"))
	if err != nil {
		t.Fatalf("ListByFolder(unknown) error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByFolder(unknown) count = %d, want 0", len(got))
	}
}

func testAddMessage(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	m, err := s.AddMessage(ctx, domain.Draft{
		Sender:  "You",
		Subject: "Hi",
		Content: "hello",
		Folder:  domain.FolderSent,
		Labels:  []string{},
		Origin:  domain.Composed{To: "bob@example.com", BCC: "eve@example.com"},
	})
	if err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}
	if m.ID == "" {
		t.Fatal("AddMessage() returned empty ID")
	}
	if m.Timestamp != domain.TimestampJustNow {
		t.Errorf("Timestamp = %q, want %q", m.Timestamp, domain.TimestampJustNow)
	}
	if m.IsRead || m.IsStarred {
		t.Errorf("IsRead, IsStarred = %v, %v, want false, false", m.IsRead, m.IsStarred)
	}

	sent, err := s.ListByFolder(ctx, domain.FolderSent)
	if err != nil {
		t.Fatalf("ListByFolder() error: %v", err)
	}
	if want := []string{m.ID, "3"}; !equal(ids(sent), want) {
		t.Errorf("ListByFolder(sent) ids = %v, want %v", ids(sent), want)
	}
	c, ok := sent[0].Composed()
	if !ok || c.To != "bob@example.com" || c.BCC != "eve@example.com" {
		t.Errorf("Composed() = %+v, %v", c, ok)
	}

	second, err := s.AddMessage(ctx, domain.Draft{Sender: "You", Folder: domain.FolderSent, IsRead: true})
	if err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}
	if !second.IsRead {
		t.Error("IsRead = false, want true as given")
	}
	sent, _ = s.ListByFolder(ctx, domain.FolderSent)
	if want := []string{second.ID, m.ID, "3"}; !equal(ids(sent), want) {
		t.Errorf("ListByFolder(sent) ids = %v, want %v", ids(sent), want)
	}
}

func testAddMessageUniqueIDs(t *testing.T, s store.Store) {
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		m, err := s.AddMessage(ctx, domain.Draft{Sender: "You", Folder: domain.FolderDrafts})
		if err != nil {
			t.Fatalf("AddMessage() #%d error: %v", i, err)
		}
		if seen[m.ID] {
			t.Fatalf("AddMessage() #%d reused id %q", i, m.ID)
		}
		seen[m.ID] = true
	}
	drafts, err := s.ListByFolder(ctx, domain.FolderDrafts)
	if err != nil {
		t.Fatalf("ListByFolder() error: %v", err)
	}
	if len(drafts) != 1000 {
		t.Errorf("ListByFolder(drafts) count = %d, want 1000", len(drafts))
	}
}

func testSearch(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	tests := []struct {
		name   string
		folder domain.Folder
		query  string
		want   []string
	}{
		{"blank returns folder", domain.FolderInbox, "", []string{"1", "2"}},
		{"whitespace returns folder", domain.FolderInbox, "  \t", []string{"1", "2"}},
		{"sender case-insensitive", domain.FolderInbox, "JOHN", []string{"1"}},
		{"subject", domain.FolderInbox, "update", []string{"2"}},
		{"preview", domain.FolderInbox, "rollout", []string{"2"}},
		{"label only", domain.FolderInbox, "work", []string{"2"}},
		{"trimmed", domain.FolderInbox, "  meeting  ", []string{"1"}},
		{"scoped to folder", domain.FolderInbox, "budget", nil},
		{"other folder", domain.FolderSent, "budget", []string{"3"}},
		{"no match", domain.FolderInbox, "invoice", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(ctx, tt.folder, tt.query)
			if err != nil {
				t.Fatalf("Search() error: %v", err)
			}
			if !equal(ids(got), tt.want) {
				t.Errorf("Search(%s, %q) ids = %v, want %v", tt.folder, tt.query, ids(got), tt.want)
			}
		})
	}

	// Search is pure.
	before, _ := s.ListByFolder(ctx, domain.FolderInbox)
	if _, err := s.Search(ctx, domain.FolderInbox, "john"); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	after, _ := s.ListByFolder(ctx, domain.FolderInbox)
	if !equal(ids(before), ids(after)) {
		t.Errorf("Search() changed the store: %v -> %v", ids(before), ids(after))
	}
}

func testUnreadCount(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	count := func() int {
		t.Helper()
		n, err := s.UnreadCount(ctx, domain.FolderInbox)
		if err != nil {
			t.Fatalf("UnreadCount() error: %v", err)
		}
		return n
	}

	if got := count(); got != 2 {
		t.Fatalf("UnreadCount(inbox) = %d, want 2", got)
	}
	if err := s.SetRead(ctx, "1", true); err != nil {
		t.Fatalf("SetRead() error: %v", err)
	}
	if got := count(); got != 1 {
		t.Errorf("UnreadCount(inbox) after SetRead = %d, want 1", got)
	}
	// Idempotent.
	if err := s.SetRead(ctx, "1", true); err != nil {
		t.Fatalf("SetRead() error: %v", err)
	}
	if got := count(); got != 1 {
		t.Errorf("UnreadCount(inbox) after repeated SetRead = %d, want 1", got)
	}
	if err := s.SetRead(ctx, "missing", true); err != nil {
		t.Errorf("SetRead(missing) error: %v, want nil", err)
	}
	if err := s.SetRead(ctx, "1", false); err != nil {
		t.Fatalf("SetRead() error: %v", err)
	}
	if got := count(); got != 2 {
		t.Errorf("UnreadCount(inbox) after unread = %d, want 2", got)
	}

	sent, err := s.UnreadCount(ctx, domain.FolderSent)
	if err != nil {
		t.Fatalf("UnreadCount(sent) error: %v", err)
	}
	if sent != 0 {
		t.Errorf("UnreadCount(sent) = %d, want 0", sent)
	}
}

func testDeleteMessage(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	if err := s.DeleteMessage(ctx, "1"); err != nil {
		t.Fatalf("DeleteMessage() error: %v", err)
	}
	inbox, _ := s.ListByFolder(ctx, domain.FolderInbox)
	if want := []string{"2"}; !equal(ids(inbox), want) {
		t.Errorf("ListByFolder(inbox) ids = %v, want %v", ids(inbox), want)
	}
	if _, err := s.GetMessage(ctx, "1"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("GetMessage(deleted) error = %v, want ErrMessageNotFound", err)
	}
	replies, err := s.ListReplies(ctx, "1")
	if err != nil {
		t.Fatalf("ListReplies() error: %v", err)
	}
	if len(replies) != 0 {
		t.Errorf("ListReplies(deleted) count = %d, want 0", len(replies))
	}

	if err := s.DeleteMessage(ctx, "1"); err != nil {
		t.Errorf("DeleteMessage(again) error: %v, want nil", err)
	}
	if err := s.DeleteMessage(ctx, "missing"); err != nil {
		t.Errorf("DeleteMessage(missing) error: %v, want nil", err)
	}
}

func testToggleStar(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	starred := func() bool {
		t.Helper()
		m, err := s.GetMessage(ctx, "2")
		if err != nil {
			t.Fatalf("GetMessage() error: %v", err)
		}
		return m.IsStarred
	}

	if err := s.ToggleStar(ctx, "2"); err != nil {
		t.Fatalf("ToggleStar() error: %v", err)
	}
	if !starred() {
		t.Error("IsStarred = false after one toggle, want true")
	}
	if err := s.ToggleStar(ctx, "2"); err != nil {
		t.Fatalf("ToggleStar() error: %v", err)
	}
	if starred() {
		t.Error("IsStarred = true after two toggles, want false")
	}
	if err := s.ToggleStar(ctx, "missing"); err != nil {
		t.Errorf("ToggleStar(missing) error: %v, want nil", err)
	}
}

func testGetMessage(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	m, err := s.GetMessage(ctx, "3")
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	if m.Subject != "Re: Budget" || m.Timestamp != "Mon" || !m.IsRead {
		t.Errorf("GetMessage() = %+v", m)
	}
	if c, ok := m.Composed(); !ok || c.To != "finance@example.com" {
		t.Errorf("Composed() = %+v, %v", c, ok)
	}

	if _, err := s.GetMessage(ctx, "missing"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("GetMessage(missing) error = %v, want ErrMessageNotFound", err)
	}
}

func testSnapshots(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	inbox, _ := s.ListByFolder(ctx, domain.FolderInbox)
	inbox[1].Labels[0] = "Tampered"
	inbox[1].Subject = "Tampered"

	m, err := s.GetMessage(ctx, "2")
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	m.Labels = append(m.Labels, "Extra")

	labels, _ := s.ListLabels(ctx)
	labels[0].Name = "Tampered"

	again, _ := s.GetMessage(ctx, "2")
	if again.Subject != "Project Update" || len(again.Labels) != 1 || again.Labels[0] != "Work" {
		t.Errorf("stored message changed through a snapshot: %+v", again)
	}
	labels, _ = s.ListLabels(ctx)
	if labels[0].Name != "Clients" {
		t.Errorf("stored label changed through a snapshot: %+v", labels[0])
	}
}

func testAddLabel(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	work, err := s.AddLabel(ctx, "Work", "bg-green-400")
	if err != nil {
		t.Fatalf("AddLabel() error: %v", err)
	}
	if work.ID == "" || work.Name != "Work" || work.Color != "bg-green-400" {
		t.Errorf("AddLabel() = %+v", work)
	}

	if _, err := s.AddLabel(ctx, "work", "other"); !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("AddLabel(work) error = %v, want ErrDuplicateName", err)
	}
	if _, err := s.AddLabel(ctx, "  CLIENTS ", "other"); !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("AddLabel(CLIENTS) error = %v, want ErrDuplicateName", err)
	}
	if _, err := s.AddLabel(ctx, "   ", "other"); !errors.Is(err, domain.ErrEmptyName) {
		t.Errorf("AddLabel(blank) error = %v, want ErrEmptyName", err)
	}

	labels, err := s.ListLabels(ctx)
	if err != nil {
		t.Fatalf("ListLabels() error: %v", err)
	}
	if len(labels) != 3 {
		t.Fatalf("ListLabels() count = %d, want 3", len(labels))
	}
	if labels[2].ID != work.ID {
		t.Errorf("labels[2].ID = %q, want %q", labels[2].ID, work.ID)
	}
	for _, l := range labels[:2] {
		if l.ID == work.ID {
			t.Errorf("AddLabel() reused id %q", l.ID)
		}
	}
}

func testDeleteLabel(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	m, err := s.AddMessage(ctx, domain.Draft{
		Sender: "Carol", Subject: "filed", Folder: domain.Folder("l1"), Labels: []string{"Clients"},
	})
	if err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}

	if err := s.DeleteLabel(ctx, "l1"); err != nil {
		t.Fatalf("DeleteLabel() error: %v", err)
	}
	labels, _ := s.ListLabels(ctx)
	if len(labels) != 1 || labels[0].ID != "l2" {
		t.Errorf("ListLabels() = %+v, want only l2", labels)
	}

	// No cascade: the message keeps its folder and label references.
	got, err := s.GetMessage(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	if got.Folder != domain.Folder("l1") || !got.HasLabel("Clients") {
		t.Errorf("message after DeleteLabel = %+v", got)
	}
	orphans, _ := s.ListByFolder(ctx, domain.Folder("l1"))
	if len(orphans) != 1 {
		t.Errorf("ListByFolder(l1) count = %d, want 1", len(orphans))
	}

	if err := s.DeleteLabel(ctx, "missing"); err != nil {
		t.Errorf("DeleteLabel(missing) error: %v, want nil", err)
	}
}

func testReplaceLabels(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	rejected := []struct {
		name    string
		batch   []domain.Label
		wantErr error
	}{
		{"empty name", []domain.Label{{ID: "l1", Name: "Clients"}, {ID: "l2", Name: " "}}, domain.ErrEmptyName},
		{"collision", []domain.Label{{ID: "l1", Name: "Team"}, {ID: "l2", Name: "TEAM"}}, domain.ErrDuplicateName},
		{"repeated id", []domain.Label{{ID: "l1", Name: "A"}, {ID: "l1", Name: "B"}}, domain.ErrDuplicateID},
		{"message id", []domain.Label{{ID: "l1", Name: "Clients"}, {ID: "1", Name: "Stolen"}}, domain.ErrDuplicateID},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ReplaceLabels(ctx, tt.batch); !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReplaceLabels() error = %v, want %v", err, tt.wantErr)
			}
			labels, _ := s.ListLabels(ctx)
			if len(labels) != 2 || labels[0].Name != "Clients" || labels[1].Name != "Personals" {
				t.Errorf("labels after rejected batch = %+v, want unchanged", labels)
			}
		})
	}

	got, err := s.ReplaceLabels(ctx, []domain.Label{
		{ID: "l2", Name: "Family", Color: "pink"},
		{Name: "Tech Team", Color: "yellow"},
	})
	if err != nil {
		t.Fatalf("ReplaceLabels() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "l2" || got[1].ID == "" {
		t.Fatalf("ReplaceLabels() = %+v", got)
	}
	labels, _ := s.ListLabels(ctx)
	if len(labels) != 2 {
		t.Fatalf("ListLabels() count = %d, want 2", len(labels))
	}
	if labels[0].Name != "Family" || labels[0].Color != "pink" {
		t.Errorf("labels[0] = %+v, want Family/pink", labels[0])
	}
	if labels[1].Name != "Tech Team" || labels[1].ID != got[1].ID {
		t.Errorf("labels[1] = %+v, want Tech Team/%s", labels[1], got[1].ID)
	}

	// An empty batch clears every label.
	if _, err := s.ReplaceLabels(ctx, nil); err != nil {
		t.Fatalf("ReplaceLabels(nil) error: %v", err)
	}
	labels, _ = s.ListLabels(ctx)
	if len(labels) != 0 {
		t.Errorf("ListLabels() count = %d, want 0", len(labels))
	}
}

func testReplies(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	r, err := s.AddReply(ctx, "1", domain.ReplyDraft{Sender: "You", Content: "Sounds good", InReplyTo: "John Doe"})
	if err != nil {
		t.Fatalf("AddReply() error: %v", err)
	}
	if r.ID == "" || r.Timestamp != domain.TimestampJustNow || r.InReplyTo != "John Doe" {
		t.Errorf("AddReply() = %+v", r)
	}

	if _, err := s.AddReply(ctx, "1", domain.ReplyDraft{Sender: "You", Content: "  "}); !errors.Is(err, domain.ErrEmptyReply) {
		t.Errorf("AddReply(blank) error = %v, want ErrEmptyReply", err)
	}
	if _, err := s.AddReply(ctx, "missing", domain.ReplyDraft{Sender: "You", Content: "hi"}); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("AddReply(missing) error = %v, want ErrMessageNotFound", err)
	}

	thread, err := s.ListReplies(ctx, "1")
	if err != nil {
		t.Fatalf("ListReplies() error: %v", err)
	}
	if len(thread) != 2 || thread[0].ID != "r1" || thread[1].ID != r.ID {
		t.Fatalf("ListReplies() = %+v, want [r1 %s]", thread, r.ID)
	}

	if err := s.ToggleReplyStar(ctx, "1", "r1"); err != nil {
		t.Fatalf("ToggleReplyStar() error: %v", err)
	}
	thread, _ = s.ListReplies(ctx, "1")
	if !thread[0].IsStarred || thread[1].IsStarred {
		t.Errorf("stars after toggle = %v, %v, want true, false", thread[0].IsStarred, thread[1].IsStarred)
	}
	if err := s.ToggleReplyStar(ctx, "1", "missing"); err != nil {
		t.Errorf("ToggleReplyStar(missing) error: %v, want nil", err)
	}

	if err := s.DeleteReply(ctx, "1", "r1"); err != nil {
		t.Fatalf("DeleteReply() error: %v", err)
	}
	thread, _ = s.ListReplies(ctx, "1")
	if len(thread) != 1 || thread[0].ID != r.ID {
		t.Errorf("ListReplies() after delete = %+v", thread)
	}
	if err := s.DeleteReply(ctx, "missing", "r1"); err != nil {
		t.Errorf("DeleteReply(missing) error: %v, want nil", err)
	}

	empty, err := s.ListReplies(ctx, "2")
	if err != nil {
		t.Fatalf("ListReplies(2) error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListReplies(2) count = %d, want 0", len(empty))
	}
}

func testSeed(t *testing.T, s store.Store) {
	ctx := context.Background()
	seed(t, s)

	dup := store.Fixtures{
		Messages: []domain.Message{
			{ID: "9", Sender: "New", Folder: domain.FolderInbox},
			{ID: "1", Sender: "Clash", Folder: domain.FolderInbox},
		},
	}
	if err := s.Seed(ctx, dup); !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("Seed(duplicate) error = %v, want ErrDuplicateID", err)
	}
	if _, err := s.GetMessage(ctx, "9"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("GetMessage(9) error = %v, want rejected seed to add nothing", err)
	}

	orphan := store.Fixtures{
		Labels:  []domain.Label{{ID: "label-9", Name: "Orphan", Color: "red"}},
		Replies: map[string][]domain.Reply{"label-9": {{ID: "reply-9", Content: "lost"}}},
	}
	if err := s.Seed(ctx, orphan); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("Seed(replies on label) error = %v, want ErrMessageNotFound", err)
	}
	if thread, _ := s.ListReplies(ctx, "label-9"); len(thread) != 0 {
		t.Errorf("ListReplies(label-9) count = %d, want 0", len(thread))
	}

	more := store.Fixtures{
		Messages: []domain.Message{{ID: "9", Sender: "Late", Folder: domain.FolderInbox}},
	}
	if err := s.Seed(ctx, more); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	inbox, _ := s.ListByFolder(ctx, domain.FolderInbox)
	if want := []string{"1", "2", "9"}; !equal(ids(inbox), want) {
		t.Errorf("ListByFolder(inbox) ids = %v, want %v", ids(inbox), want)
	}

	added, err := s.AddMessage(ctx, domain.Draft{Sender: "You", Folder: domain.FolderInbox})
	if err != nil {
		t.Fatalf("AddMessage() error: %v", err)
	}
	inbox, _ = s.ListByFolder(ctx, domain.FolderInbox)
	if want := []string{added.ID, "1", "2", "9"}; !equal(ids(inbox), want) {
		t.Errorf("ListByFolder(inbox) ids = %v, want %v", ids(inbox), want)
	}
}
