package mime

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

func TestWrite_Composed(t *testing.T) {
	m := &domain.Message{
		ID:      "abc",
		Sender:  "You",
		Subject: "Quarterly numbers",
		Content: "<p>See <strong>attached</strong></p>",
		Folder:  domain.FolderSent,
		Labels:  []string{"Clients"},
		Origin: domain.Composed{
			To:  "Bob <bob@example.com>, carol@example.com",
			CC:  "dave@example.com",
			BCC: "secret@example.com",
		},
	}
	date := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := Write(&buf, m, Identity{Name: "Me", Email: "me@example.com"}, date); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if strings.Contains(buf.String(), "secret@example.com") {
		t.Error("Write() leaked the Bcc recipient")
	}

	mr, err := mail.CreateReader(&buf)
	if err != nil {
		t.Fatalf("CreateReader() error: %v", err)
	}
	defer mr.Close()

	subject, err := mr.Header.Subject()
	if err != nil {
		t.Fatalf("Subject() error: %v", err)
	}
	if subject != "Quarterly numbers" {
		t.Errorf("Subject = %q, want %q", subject, "Quarterly numbers")
	}

	from, err := mr.Header.AddressList("From")
	if err != nil {
		t.Fatalf("AddressList(From) error: %v", err)
	}
	if len(from) != 1 || from[0].Address != "me@example.com" {
		t.Errorf("From = %v, want me@example.com", from)
	}
	to, err := mr.Header.AddressList("To")
	if err != nil {
		t.Fatalf("AddressList(To) error: %v", err)
	}
	if len(to) != 2 || to[0].Address != "bob@example.com" || to[1].Address != "carol@example.com" {
		t.Errorf("To = %v", to)
	}
	if got := mr.Header.Get("Keywords"); got != "Clients" {
		t.Errorf("Keywords = %q, want %q", got, "Clients")
	}
	gotDate, err := mr.Header.Date()
	if err != nil {
		t.Fatalf("Date() error: %v", err)
	}
	if !gotDate.Equal(date) {
		t.Errorf("Date = %v, want %v", gotDate, date)
	}

	bodies := map[string]string{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart() error: %v", err)
		}
		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			t.Fatalf("part header = %T, want *mail.InlineHeader", p.Header)
		}
		ct, _, _ := h.ContentType()
		b, _ := io.ReadAll(p.Body)
		bodies[ct] = string(b)
	}
	if got := bodies["text/plain"]; got != "See attached" {
		t.Errorf("text/plain = %q, want %q", got, "See attached")
	}
	if got := bodies["text/html"]; got != m.Content {
		t.Errorf("text/html = %q, want %q", got, m.Content)
	}
}

func TestWrite_Received(t *testing.T) {
	m := &domain.Message{
		ID:      "1",
		Sender:  "John Doe",
		Subject: "Meeting Request",
		Content: "<p>Hi</p>",
		Folder:  domain.FolderInbox,
		Origin:  domain.Received{SenderEmail: "john@example.com"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, m, Identity{Name: "Me", Email: "me@example.com"}, time.Now()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	mr, err := mail.CreateReader(&buf)
	if err != nil {
		t.Fatalf("CreateReader() error: %v", err)
	}
	defer mr.Close()

	from, err := mr.Header.AddressList("From")
	if err != nil {
		t.Fatalf("AddressList(From) error: %v", err)
	}
	if len(from) != 1 || from[0].Name != "John Doe" || from[0].Address != "john@example.com" {
		t.Errorf("From = %v", from)
	}
	if got := mr.Header.Get("To"); got != "" {
		t.Errorf("To = %q, want empty", got)
	}
	if got := mr.Header.Get("X-Mailbox-Folder"); got != "inbox" {
		t.Errorf("X-Mailbox-Folder = %q, want inbox", got)
	}
}

func TestSetRecipients_Unparseable(t *testing.T) {
	var h mail.Header
	setRecipients(&h, "To", "  not an address  ")
	if got := h.Get("To"); got != "not an address" {
		t.Errorf("To = %q, want raw value", got)
	}
	setRecipients(&h, "Cc", "   ")
	if h.Has("Cc") {
		t.Error("blank Cc was written")
	}
}

func TestWrite_FromFallback(t *testing.T) {
	tests := []struct {
		name string
		msg  *domain.Message
		want string
	}{
		{
			name: "composed without sender email",
			msg:  &domain.Message{ID: "c1", Sender: "You", Folder: domain.FolderSent, Origin: domain.Composed{To: "bob@example.com"}},
			want: "you@mailbox.local",
		},
		{
			name: "received without sender email",
			msg:  &domain.Message{ID: "r1", Sender: "Someone", Folder: domain.FolderInbox, Origin: domain.Received{}},
			want: "unknown@mailbox.local",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.msg, Identity{Name: "You"}, time.Now()); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			if strings.Contains(buf.String(), "<@>") {
				t.Errorf("Write() produced an empty address:\n%s", buf.String())
			}
			mr, err := mail.CreateReader(&buf)
			if err != nil {
				t.Fatalf("CreateReader() error: %v", err)
			}
			defer mr.Close()
			from, err := mr.Header.AddressList("From")
			if err != nil {
				t.Fatalf("AddressList(From) error: %v", err)
			}
			if len(from) != 1 || from[0].Address != tt.want {
				t.Errorf("From = %v, want %s", from, tt.want)
			}
		})
	}
}

func TestWrite_InvalidHeaderWritesNothing(t *testing.T) {
	m := &domain.Message{
		ID:      "x",
		Sender:  "You",
		Content: "<p>hi</p>",
		Folder:  domain.FolderSent,
		Labels:  []string{"bad\r\nX-Injected: yes"},
		Origin:  domain.Composed{To: "bob@example.com"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, m, Identity{Name: "You", Email: "me@example.com"}, time.Now()); err == nil {
		t.Fatal("Write() error = nil, want header error")
	}
	if buf.Len() != 0 {
		t.Errorf("Write() left %d bytes of a partial document: %q", buf.Len(), buf.String())
	}
}
