// Package app holds the application session: the email store plus the UI
// state the store does not track, like the open folder and message.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/mime"
	"github.com/lu-zhengda/mailbox/internal/richtext"
	"github.com/lu-zhengda/mailbox/internal/store"
)

// ErrNoRecipients is returned when sending a message without a To address.
var ErrNoRecipients = errors.New("message has no recipients")

// Options configures a Session.
type Options struct {
	// Self is the identity used for sent mail, drafts and replies.
	Self          mime.Identity
	PreviewLength int
	Folder        domain.Folder
}

// ComposeInput is what the user typed into the composer. Body is markdown.
type ComposeInput struct {
	To      string
	CC      string
	BCC     string
	Subject string
	Body    string
	Labels  []string
}

// FolderInfo is one sidebar entry.
type FolderInfo struct {
	Folder domain.Folder
	Name   string
	// Color is set for user labels only.
	Color  string
	Unread int
	Label  bool
}

// Session serves one user for the lifetime of the process.
type Session struct {
	store      store.Store
	log        *slog.Logger
	self       mime.Identity
	previewLen int

	mu       sync.Mutex
	folder   domain.Folder
	selected string
}

// NewSession creates a Session over s.
func NewSession(s store.Store, logger *slog.Logger, opts Options) *Session {
	if opts.Folder == "" {
		opts.Folder = domain.FolderInbox
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = 90
	}
	if opts.Self.Name == "" {
		opts.Self.Name = "You"
	}
	return &Session{
		store:      s,
		log:        logger,
		self:       opts.Self,
		previewLen: opts.PreviewLength,
		folder:     opts.Folder,
	}
}

// Store returns the underlying store.
func (s *Session) Store() store.Store {
	return s.store
}

func (s *Session) Self() mime.Identity {
	return s.self
}

// Folder returns the folder currently shown.
func (s *Session) Folder() domain.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folder
}

// SelectFolder switches folders and closes the open message.
func (s *Session) SelectFolder(f domain.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folder = f
	s.selected = ""
}

// Selected returns the ID of the open message, or "".
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) CloseMessage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// Messages returns the current folder filtered by query.
func (s *Session) Messages(ctx context.Context, query string) ([]domain.Message, error) {
	return s.MessagesIn(ctx, s.Folder(), query)
}

// MessagesIn is Messages for an explicit folder.
func (s *Session) MessagesIn(ctx context.Context, folder domain.Folder, query string) ([]domain.Message, error) {
	msgs, err := s.store.Search(ctx, folder, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return msgs, nil
}

// Open selects a message and marks it read. It returns the message with
// its reply thread.
func (s *Session) Open(ctx context.Context, id string) (*domain.Message, []domain.Reply, error) {
	m, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open message %s: %w", id, err)
	}
	if !m.IsRead {
		if err := s.store.SetRead(ctx, id, true); err != nil {
			return nil, nil, fmt.Errorf("failed to mark message read: %w", err)
		}
		m.IsRead = true
	}
	replies, err := s.store.ListReplies(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load replies: %w", err)
	}

	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	s.log.Debug("message opened", "id", id, "replies", len(replies))
	return m, replies, nil
}

// Delete removes a message, closing it first if it is open.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteMessage(ctx, id); err != nil {
		s.log.Error("failed to delete message", "id", id, "error", err)
		return fmt.Errorf("failed to delete message: %w", err)
	}
	s.mu.Lock()
	if s.selected == id {
		s.selected = ""
	}
	s.mu.Unlock()
	s.log.Debug("message deleted", "id", id)
	return nil
}

func (s *Session) ToggleStar(ctx context.Context, id string) error {
	if err := s.store.ToggleStar(ctx, id); err != nil {
		return fmt.Errorf("failed to toggle star: %w", err)
	}
	return nil
}

// MarkUnread flags a message unread and closes it if it is open.
func (s *Session) MarkUnread(ctx context.Context, id string) error {
	if err := s.store.SetRead(ctx, id, false); err != nil {
		return fmt.Errorf("failed to mark message unread: %w", err)
	}
	s.mu.Lock()
	if s.selected == id {
		s.selected = ""
	}
	s.mu.Unlock()
	return nil
}

// Send files a composed message under sent. At least one To recipient is
// required.
func (s *Session) Send(ctx context.Context, in ComposeInput) (domain.Message, error) {
	if strings.TrimSpace(in.To) == "" {
		return domain.Message{}, ErrNoRecipients
	}
	m, err := s.store.AddMessage(ctx, s.draft(in, domain.FolderSent))
	if err != nil {
		s.log.Error("failed to send message", "error", err)
		return domain.Message{}, fmt.Errorf("failed to send message: %w", err)
	}
	s.log.Info("message sent", "id", m.ID, "to", in.To)
	return m, nil
}

// SaveDraft files a composed message under drafts. Any field may be empty.
func (s *Session) SaveDraft(ctx context.Context, in ComposeInput) (domain.Message, error) {
	m, err := s.store.AddMessage(ctx, s.draft(in, domain.FolderDrafts))
	if err != nil {
		s.log.Error("failed to save draft", "error", err)
		return domain.Message{}, fmt.Errorf("failed to save draft: %w", err)
	}
	s.log.Info("draft saved", "id", m.ID)
	return m, nil
}

func (s *Session) draft(in ComposeInput, folder domain.Folder) domain.Draft {
	content := richtext.Render(in.Body)
	return domain.Draft{
		Sender:  s.self.Name,
		Subject: strings.TrimSpace(in.Subject),
		Preview: richtext.Preview(content, s.previewLen),
		Content: content,
		IsRead:  true,
		Labels:  slices.Clone(in.Labels),
		Folder:  folder,
		Origin: domain.Composed{
			To:  strings.TrimSpace(in.To),
			CC:  strings.TrimSpace(in.CC),
			BCC: strings.TrimSpace(in.BCC),
		},
	}
}

// Reply appends body to the thread of messageID. inReplyTo optionally names
// the thread participant being answered.
func (s *Session) Reply(ctx context.Context, messageID, body, inReplyTo string) (domain.Reply, error) {
	r, err := s.store.AddReply(ctx, messageID, domain.ReplyDraft{
		Sender:    s.self.Name,
		Content:   strings.TrimSpace(body),
		InReplyTo: inReplyTo,
	})
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to send reply: %w", err)
	}
	s.log.Debug("reply sent", "message", messageID, "id", r.ID)
	return r, nil
}

func (s *Session) Replies(ctx context.Context, messageID string) ([]domain.Reply, error) {
	replies, err := s.store.ListReplies(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load replies: %w", err)
	}
	return replies, nil
}

func (s *Session) DeleteReply(ctx context.Context, messageID, replyID string) error {
	if err := s.store.DeleteReply(ctx, messageID, replyID); err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	return nil
}

func (s *Session) ToggleReplyStar(ctx context.Context, messageID, replyID string) error {
	if err := s.store.ToggleReplyStar(ctx, messageID, replyID); err != nil {
		return fmt.Errorf("failed to toggle reply star: %w", err)
	}
	return nil
}

// Folders lists the system folders followed by the user labels, each with
// its unread count.
func (s *Session) Folders(ctx context.Context) ([]FolderInfo, error) {
	labels, err := s.store.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	out := make([]FolderInfo, 0, len(domain.SystemFolders)+len(labels))
	for _, f := range domain.SystemFolders {
		out = append(out, FolderInfo{Folder: f, Name: f.DisplayName()})
	}
	for _, l := range labels {
		out = append(out, FolderInfo{Folder: l.Folder(), Name: l.Name, Color: l.Color, Label: true})
	}
	for i := range out {
		n, err := s.store.UnreadCount(ctx, out[i].Folder)
		if err != nil {
			return nil, fmt.Errorf("failed to count unread in %s: %w", out[i].Folder, err)
		}
		out[i].Unread = n
	}
	return out, nil
}

func (s *Session) Labels(ctx context.Context) ([]domain.Label, error) {
	labels, err := s.store.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

func (s *Session) AddLabel(ctx context.Context, name, color string) (domain.Label, error) {
	l, err := s.store.AddLabel(ctx, name, color)
	if err != nil {
		s.log.Warn("label rejected", "name", name, "error", err)
		return domain.Label{}, err
	}
	s.log.Debug("label added", "id", l.ID, "name", l.Name)
	return l, nil
}

// DeleteLabel removes a label. If its pseudo-folder is open the session
// falls back to the inbox.
func (s *Session) DeleteLabel(ctx context.Context, id string) error {
	if err := s.store.DeleteLabel(ctx, id); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	s.mu.Lock()
	if s.folder == domain.Folder(id) {
		s.folder = domain.FolderInbox
		s.selected = ""
	}
	s.mu.Unlock()
	s.log.Debug("label deleted", "id", id)
	return nil
}

// UpdateLabels replaces the whole label set, as the label manager saves it.
func (s *Session) UpdateLabels(ctx context.Context, batch []domain.Label) ([]domain.Label, error) {
	labels, err := s.store.ReplaceLabels(ctx, batch)
	if err != nil {
		s.log.Warn("label batch rejected", "error", err)
		return nil, err
	}

	s.mu.Lock()
	if !s.folder.IsSystem() && !slices.ContainsFunc(labels, func(l domain.Label) bool {
		return l.Folder() == s.folder
	}) {
		s.folder = domain.FolderInbox
		s.selected = ""
	}
	s.mu.Unlock()
	s.log.Debug("labels replaced", "count", len(labels))
	return labels, nil
}

// Export writes message id as an RFC 5322 document.
func (s *Session) Export(ctx context.Context, id string, w io.Writer) error {
	m, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to export message %s: %w", id, err)
	}
	if err := mime.Write(w, m, s.self, time.Now()); err != nil {
		return fmt.Errorf("failed to export message %s: %w", id, err)
	}
	return nil
}
