package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/logging"
	"github.com/lu-zhengda/mailbox/internal/mime"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := OpenStore(context.Background(), "memory", true)
	if err != nil {
		t.Fatalf("OpenStore() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewSession(s, logging.Discard(), Options{
		Self: mime.Identity{Name: "You", Email: "you@example.com"},
	})
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{"memory", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			s, err := OpenStore(ctx, backend, true)
			if err != nil {
				t.Fatalf("OpenStore(%s) error: %v", backend, err)
			}
			defer s.Close()
			inbox, err := s.ListByFolder(ctx, domain.FolderInbox)
			if err != nil {
				t.Fatalf("ListByFolder() error: %v", err)
			}
			if len(inbox) != 2 {
				t.Errorf("inbox count = %d, want 2", len(inbox))
			}
		})
	}

	empty, err := OpenStore(ctx, "memory", false)
	if err != nil {
		t.Fatalf("OpenStore() error: %v", err)
	}
	labels, _ := empty.ListLabels(ctx)
	if len(labels) != 0 {
		t.Errorf("unseeded store has %d labels", len(labels))
	}

	if _, err := OpenStore(ctx, "postgres", false); err == nil {
		t.Error("OpenStore(postgres) succeeded, want error")
	}
}

func TestSession_OpenMarksRead(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	m, replies, err := sess.Open(ctx, "1")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !m.IsRead {
		t.Error("opened message IsRead = false")
	}
	if len(replies) != 2 {
		t.Errorf("replies = %d, want 2", len(replies))
	}
	if got := sess.Selected(); got != "1" {
		t.Errorf("Selected() = %q, want %q", got, "1")
	}
	unread, _ := sess.Store().UnreadCount(ctx, domain.FolderInbox)
	if unread != 0 {
		t.Errorf("UnreadCount(inbox) = %d, want 0", unread)
	}

	if _, _, err := sess.Open(ctx, "missing"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("Open(missing) error = %v, want ErrMessageNotFound", err)
	}
}

func TestSession_SelectionLifecycle(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	if _, _, err := sess.Open(ctx, "2"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	sess.SelectFolder(domain.FolderSpam)
	if sess.Selected() != "" {
		t.Error("SelectFolder() kept the selection")
	}

	if _, _, err := sess.Open(ctx, "6"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := sess.Delete(ctx, "6"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if sess.Selected() != "" {
		t.Error("Delete() kept the deleted message selected")
	}

	if _, _, err := sess.Open(ctx, "5"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := sess.Delete(ctx, "4"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if sess.Selected() != "5" {
		t.Errorf("Selected() = %q after deleting another message, want %q", sess.Selected(), "5")
	}

	if err := sess.MarkUnread(ctx, "5"); err != nil {
		t.Fatalf("MarkUnread() error: %v", err)
	}
	if sess.Selected() != "" {
		t.Error("MarkUnread() kept the message open")
	}
}

func TestSession_Messages(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	msgs, err := sess.Messages(ctx, "london")
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "2" {
		t.Errorf("Messages(london) = %+v", msgs)
	}

	sess.SelectFolder(domain.FolderDesired)
	msgs, _ = sess.Messages(ctx, "")
	if len(msgs) != 1 || msgs[0].ID != "3" {
		t.Errorf("Messages() in desired = %+v", msgs)
	}
}

func TestSession_Send(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	if _, err := sess.Send(ctx, ComposeInput{Subject: "Hi", Body: "hello"}); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("Send() without recipients error = %v, want ErrNoRecipients", err)
	}

	m, err := sess.Send(ctx, ComposeInput{
		To:      " bob@example.com ",
		BCC:     "eve@example.com",
		Subject: "Hi",
		Body:    "**hello** there",
	})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if m.Folder != domain.FolderSent || !m.IsRead || m.Sender != "You" {
		t.Errorf("Send() = %+v", m)
	}
	if !strings.Contains(m.Content, "<strong>hello</strong>") {
		t.Errorf("Content = %q, want rendered markdown", m.Content)
	}
	if m.Preview != "hello there" {
		t.Errorf("Preview = %q, want %q", m.Preview, "hello there")
	}
	c, ok := m.Composed()
	if !ok || c.To != "bob@example.com" || c.BCC != "eve@example.com" {
		t.Errorf("Composed() = %+v, %v", c, ok)
	}

	sent, _ := sess.Store().ListByFolder(ctx, domain.FolderSent)
	if len(sent) != 2 || sent[0].ID != m.ID {
		t.Errorf("sent folder head = %v, want %s", sent[0].ID, m.ID)
	}
}

func TestSession_SaveDraft(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	m, err := sess.SaveDraft(ctx, ComposeInput{Subject: "later"})
	if err != nil {
		t.Fatalf("SaveDraft() error: %v", err)
	}
	if m.Folder != domain.FolderDrafts || !m.IsRead || m.Timestamp != domain.TimestampJustNow {
		t.Errorf("SaveDraft() = %+v", m)
	}
	drafts, _ := sess.Store().ListByFolder(ctx, domain.FolderDrafts)
	if len(drafts) != 2 || drafts[0].ID != m.ID {
		t.Errorf("drafts = %v", drafts)
	}
}

func TestSession_Reply(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	r, err := sess.Reply(ctx, "3", "  on it  ", "Sarah Wilson")
	if err != nil {
		t.Fatalf("Reply() error: %v", err)
	}
	if r.Sender != "You" || r.Content != "on it" || r.InReplyTo != "Sarah Wilson" {
		t.Errorf("Reply() = %+v", r)
	}
	if _, err := sess.Reply(ctx, "3", "   ", ""); !errors.Is(err, domain.ErrEmptyReply) {
		t.Errorf("Reply(blank) error = %v, want ErrEmptyReply", err)
	}

	replies, _ := sess.Replies(ctx, "3")
	if len(replies) != 3 || replies[2].ID != r.ID {
		t.Fatalf("Replies() = %+v", replies)
	}
	if err := sess.ToggleReplyStar(ctx, "3", r.ID); err != nil {
		t.Fatalf("ToggleReplyStar() error: %v", err)
	}
	if err := sess.DeleteReply(ctx, "3", replies[0].ID); err != nil {
		t.Fatalf("DeleteReply() error: %v", err)
	}
	replies, _ = sess.Replies(ctx, "3")
	if len(replies) != 2 || !replies[1].IsStarred {
		t.Errorf("Replies() = %+v", replies)
	}
}

func TestSession_Folders(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	folders, err := sess.Folders(ctx)
	if err != nil {
		t.Fatalf("Folders() error: %v", err)
	}
	if len(folders) != 8 {
		t.Fatalf("Folders() count = %d, want 8", len(folders))
	}
	if folders[0].Name != "Inbox" || folders[0].Unread != 1 {
		t.Errorf("folders[0] = %+v, want Inbox with 1 unread", folders[0])
	}
	if !folders[5].Label || folders[5].Name != "Clients" || folders[5].Color != "red" {
		t.Errorf("folders[5] = %+v, want Clients label", folders[5])
	}
}

func TestSession_DeleteOpenLabel(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	sess.SelectFolder(domain.Folder("label-2"))
	if err := sess.DeleteLabel(ctx, "label-1"); err != nil {
		t.Fatalf("DeleteLabel() error: %v", err)
	}
	if sess.Folder() != domain.Folder("label-2") {
		t.Errorf("Folder() = %q after deleting another label", sess.Folder())
	}
	if err := sess.DeleteLabel(ctx, "label-2"); err != nil {
		t.Fatalf("DeleteLabel() error: %v", err)
	}
	if sess.Folder() != domain.FolderInbox {
		t.Errorf("Folder() = %q, want inbox", sess.Folder())
	}
}

func TestSession_UpdateLabels(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	labels, _ := sess.Labels(ctx)
	labels[0].Name = "personals"
	if _, err := sess.UpdateLabels(ctx, labels); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("UpdateLabels() error = %v, want ErrDuplicateName", err)
	}

	sess.SelectFolder(domain.Folder("label-3"))
	got, err := sess.UpdateLabels(ctx, []domain.Label{
		{ID: "label-1", Name: "Customers", Color: "red"},
		{Name: "Travel", Color: "green"},
	})
	if err != nil {
		t.Fatalf("UpdateLabels() error: %v", err)
	}
	if len(got) != 2 || got[1].ID == "" {
		t.Errorf("UpdateLabels() = %+v", got)
	}
	if sess.Folder() != domain.FolderInbox {
		t.Errorf("Folder() = %q, want inbox after its label was dropped", sess.Folder())
	}

	if _, err := sess.AddLabel(ctx, "CUSTOMERS", "blue"); !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("AddLabel() error = %v, want ErrDuplicateName", err)
	}
}

func TestSession_Export(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t)

	var buf bytes.Buffer
	if err := sess.Export(ctx, "3", &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Subject: Meeting Request") {
		t.Errorf("export missing subject:\n%s", buf.String())
	}
	if err := sess.Export(ctx, "missing", &buf); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Errorf("Export(missing) error = %v, want ErrMessageNotFound", err)
	}
}
