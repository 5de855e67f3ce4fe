package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/richtext"
)

// Messages emitted by readerModel.

type closeReaderMsg struct{}

type sendReplyMsg struct {
	messageID string
	body      string
	inReplyTo string
}

type replyAction int

const (
	replyDelete replyAction = iota
	replyStar
)

type replyActionMsg struct {
	messageID string
	replyID   string
	action    replyAction
}

const editorHeight = 4

// readerModel shows one message with its reply thread in a scrollable
// viewport, and hosts the reply editor.
type readerModel struct {
	message      *domain.Message
	replies      []domain.Reply
	replyCursor  int
	editor       textarea.Model
	replying     bool
	replyTarget  string
	content      string
	scrollOffset int
	maxScroll    int
	width        int
	height       int
	focused      bool
	visible      bool
}

func newReader() readerModel {
	ed := textarea.New()
	ed.Placeholder = "Write a reply..."
	ed.SetHeight(editorHeight)
	ed.CharLimit = 0
	return readerModel{editor: ed}
}

func (r readerModel) Update(msg tea.Msg) (readerModel, tea.Cmd) {
	if !r.focused || !r.visible || r.message == nil {
		return r, nil
	}

	if r.replying {
		return r.updateEditor(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	id := r.message.ID
	switch {
	case key.Matches(keyMsg, keys.Up):
		if r.scrollOffset > 0 {
			r.scrollOffset--
		}

	case key.Matches(keyMsg, keys.Down):
		if r.scrollOffset < r.maxScroll {
			r.scrollOffset++
		}

	case key.Matches(keyMsg, keys.NextReply):
		if r.replyCursor < len(r.replies)-1 {
			r.replyCursor++
			r.render()
		}

	case key.Matches(keyMsg, keys.PrevReply):
		if r.replyCursor > 0 {
			r.replyCursor--
			r.render()
		}

	case key.Matches(keyMsg, keys.Back):
		return r, func() tea.Msg { return closeReaderMsg{} }

	case key.Matches(keyMsg, keys.Reply):
		return r, r.openEditor("")

	case key.Matches(keyMsg, keys.ReplyTo):
		if reply, ok := r.highlighted(); ok {
			return r, r.openEditor(reply.Sender)
		}

	case key.Matches(keyMsg, keys.DeleteReply):
		if reply, ok := r.highlighted(); ok {
			return r, func() tea.Msg {
				return replyActionMsg{messageID: id, replyID: reply.ID, action: replyDelete}
			}
		}

	case key.Matches(keyMsg, keys.StarReply):
		if reply, ok := r.highlighted(); ok {
			return r, func() tea.Msg {
				return replyActionMsg{messageID: id, replyID: reply.ID, action: replyStar}
			}
		}

	case key.Matches(keyMsg, keys.Delete):
		return r, func() tea.Msg { return messageActionMsg{id: id, action: actionDelete} }

	case key.Matches(keyMsg, keys.Star):
		return r, func() tea.Msg { return messageActionMsg{id: id, action: actionStar} }

	case key.Matches(keyMsg, keys.Unread):
		return r, func() tea.Msg { return messageActionMsg{id: id, action: actionUnread} }
	}

	return r, nil
}

func (r readerModel) updateEditor(msg tea.Msg) (readerModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Back):
			r.closeEditor()
			return r, nil

		case key.Matches(keyMsg, keys.Send):
			body := strings.TrimSpace(r.editor.Value())
			if body == "" {
				return r, nil
			}
			out := sendReplyMsg{messageID: r.message.ID, body: body, inReplyTo: r.replyTarget}
			return r, func() tea.Msg { return out }
		}
	}

	var cmd tea.Cmd
	r.editor, cmd = r.editor.Update(msg)
	return r, cmd
}

func (r readerModel) View() string {
	if !r.visible || r.width == 0 || r.height == 0 {
		return ""
	}

	if r.message == nil {
		return mutedTextStyle.Render("No message selected")
	}

	lines := strings.Split(r.content, "\n")
	visibleHeight := max(r.viewportHeight(), 1)

	start := min(r.scrollOffset, len(lines))
	end := min(start+visibleHeight, len(lines))
	view := strings.Join(lines[start:end], "\n")

	if !r.replying {
		return view
	}

	title := "Reply"
	if r.replyTarget != "" {
		title = "Reply to " + r.replyTarget
	}
	return view + "\n" + titleStyle.Render(title) + "\n" + r.editor.View()
}

// Show displays msg and its replies, resetting scroll and the editor.
func (r *readerModel) Show(msg *domain.Message, replies []domain.Reply) {
	r.message = msg
	r.replies = replies
	r.replyCursor = 0
	r.visible = true
	r.scrollOffset = 0
	r.closeEditor()
	r.render()
}

// SetReplies refreshes the thread of the open message, as after a reply
// is sent or removed.
func (r *readerModel) SetReplies(replies []domain.Reply) {
	r.replies = replies
	if r.replyCursor >= len(replies) {
		r.replyCursor = max(len(replies)-1, 0)
	}
	r.render()
}

// SetMessage refreshes the open message without moving the viewport.
func (r *readerModel) SetMessage(msg *domain.Message) {
	r.message = msg
	r.render()
}

func (r *readerModel) Close() {
	r.visible = false
	r.message = nil
	r.replies = nil
	r.content = ""
	r.scrollOffset = 0
	r.maxScroll = 0
	r.closeEditor()
}

func (r *readerModel) SetSize(w, h int) {
	r.width = w
	r.height = h
	r.editor.SetWidth(max(w, 10))
	r.render()
}

func (r readerModel) IsVisible() bool {
	return r.visible
}

// Replying reports whether the reply editor is open.
func (r readerModel) Replying() bool {
	return r.replying
}

// MessageID returns the ID of the message shown, or "".
func (r readerModel) MessageID() string {
	if r.message == nil {
		return ""
	}
	return r.message.ID
}

func (r *readerModel) openEditor(target string) tea.Cmd {
	r.replying = true
	r.replyTarget = target
	r.editor.SetValue("")
	r.recalcMaxScroll()
	return r.editor.Focus()
}

func (r *readerModel) closeEditor() {
	r.replying = false
	r.replyTarget = ""
	r.editor.SetValue("")
	r.editor.Blur()
	r.recalcMaxScroll()
}

func (r readerModel) highlighted() (domain.Reply, bool) {
	if r.replyCursor < 0 || r.replyCursor >= len(r.replies) {
		return domain.Reply{}, false
	}
	return r.replies[r.replyCursor], true
}

func (r readerModel) viewportHeight() int {
	if r.replying {
		return r.height - editorHeight - 1
	}
	return r.height
}

func (r *readerModel) render() {
	if r.message == nil {
		r.content = ""
	} else {
		r.content = renderMessage(r.message, r.replies, r.replyCursor, r.width)
	}
	r.recalcMaxScroll()
}

func (r *readerModel) recalcMaxScroll() {
	if r.content == "" {
		r.maxScroll = 0
		r.scrollOffset = 0
		return
	}

	lines := strings.Count(r.content, "\n") + 1
	r.maxScroll = max(lines-max(r.viewportHeight(), 1), 0)
	if r.scrollOffset > r.maxScroll {
		r.scrollOffset = r.maxScroll
	}
}

// renderMessage formats a message with headers, its body as plain text,
// and the reply thread underneath.
func renderMessage(m *domain.Message, replies []domain.Reply, cursor, width int) string {
	var b strings.Builder

	header := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(mutedTextStyle.Render(fmt.Sprintf("%-9s", name+":")))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	from := m.Sender
	if email := m.SenderEmail(); email != "" {
		from = fmt.Sprintf("%s <%s>", m.Sender, email)
	}
	header("From", from)
	if c, ok := m.Composed(); ok {
		header("To", c.To)
		header("Cc", c.CC)
		header("Bcc", c.BCC)
	}
	header("Date", m.Timestamp)
	header("Subject", m.Subject)
	if len(m.Labels) > 0 {
		header("Labels", strings.Join(m.Labels, ", "))
	}
	if m.IsStarred {
		b.WriteString(starStyle.Render("★ Starred"))
		b.WriteByte('\n')
	}

	sep := mutedTextStyle.Render(strings.Repeat("─", max(width, 20)))
	b.WriteString(sep)
	b.WriteString("\n\n")

	body, err := richtext.PlainText(m.Content)
	if err != nil {
		body = m.Content
	}
	if body == "" {
		body = mutedTextStyle.Render("(no content)")
	}
	b.WriteString(body)

	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteByte('\n')
	b.WriteString(titleStyle.Render(fmt.Sprintf("Thread (%d)", len(replies))))

	for i, reply := range replies {
		b.WriteString("\n\n")
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		line := marker + reply.Sender + mutedTextStyle.Render(" · "+reply.Timestamp)
		if reply.IsStarred {
			line += starStyle.Render(" ★")
		}
		if i == cursor {
			line = unreadStyle.Render(line)
		}
		b.WriteString(line)
		if reply.InReplyTo != "" {
			b.WriteByte('\n')
			b.WriteString(mutedTextStyle.Render("  ↳ to " + reply.InReplyTo))
		}
		for _, l := range strings.Split(reply.Content, "\n") {
			b.WriteString("\n  ")
			b.WriteString(l)
		}
	}

	return b.String()
}
