package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

// Messages emitted by inboxModel.

type messageSelectedMsg struct {
	id string
}

type messageAction int

const (
	actionDelete messageAction = iota
	actionStar
	actionUnread
)

func (a messageAction) String() string {
	switch a {
	case actionDelete:
		return "delete"
	case actionStar:
		return "star"
	case actionUnread:
		return "unread"
	}
	return "unknown"
}

type messageActionMsg struct {
	id     string
	action messageAction
}

// inboxModel displays the messages of the current folder.
type inboxModel struct {
	messages []domain.Message
	cursor   int
	offset   int
	// selected is the message open in the reader, highlighted when the
	// list is not focused.
	selected string
	width    int
	height   int
	focused  bool
}

func newInbox() inboxModel {
	return inboxModel{}
}

func (m inboxModel) Update(msg tea.Msg) (inboxModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.messages)-1 {
				m.cursor++
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Enter):
			id := m.SelectedID()
			if id == "" {
				return m, nil
			}
			return m, func() tea.Msg { return messageSelectedMsg{id: id} }

		case key.Matches(msg, keys.Delete):
			return m, m.actionCmd(actionDelete)

		case key.Matches(msg, keys.Star):
			return m, m.actionCmd(actionStar)

		case key.Matches(msg, keys.Unread):
			return m, m.actionCmd(actionUnread)
		}
	}

	return m, nil
}

func (m inboxModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if len(m.messages) == 0 {
		return mutedTextStyle.Render("No messages")
	}

	var b strings.Builder
	end := min(m.offset+m.visibleRows(), len(m.messages))

	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		line := m.renderRow(i)
		switch {
		case i == m.cursor && m.focused:
			line = selectedStyle.Width(m.width).Render(line)
		case !m.focused && m.messages[i].ID == m.selected:
			line = lipgloss.NewStyle().Foreground(primaryColor).Render(line)
		}
		b.WriteString(line)
	}

	return b.String()
}

// SetMessages replaces the list, keeping the cursor on the same message
// when it is still present.
func (m *inboxModel) SetMessages(msgs []domain.Message) {
	current := m.SelectedID()
	m.messages = msgs
	for i := range msgs {
		if msgs[i].ID == current {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
}

func (m *inboxModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.adjustScroll()
}

// Reset moves the cursor back to the top, as after a folder switch.
func (m *inboxModel) Reset() {
	m.cursor = 0
	m.offset = 0
}

// SelectedID returns the ID of the highlighted message.
func (m inboxModel) SelectedID() string {
	if len(m.messages) == 0 || m.cursor >= len(m.messages) {
		return ""
	}
	return m.messages[m.cursor].ID
}

func (m inboxModel) visibleRows() int {
	if m.height < 1 {
		return 1
	}
	return m.height
}

func (m *inboxModel) adjustScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *inboxModel) clampCursor() {
	count := len(m.messages)
	if count == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	m.adjustScroll()
}

func (m inboxModel) actionCmd(action messageAction) tea.Cmd {
	id := m.SelectedID()
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		return messageActionMsg{id: id, action: action}
	}
}

func (m inboxModel) renderRow(idx int) string {
	e := m.messages[idx]

	star := "  "
	if e.IsStarred {
		star = starStyle.Render("★ ")
	}

	chips := renderLabelChips(e.Labels)
	date := e.Timestamp

	fromWidth := 18
	dateWidth := lipgloss.Width(date)
	chipsWidth := lipgloss.Width(chips)
	subjectWidth := m.width - fromWidth - dateWidth - chipsWidth - 6 // star(2) + two "  " gaps(4)
	if subjectWidth < 10 {
		subjectWidth = 10
	}

	from := truncate(e.Sender, fromWidth)
	subject := truncate(e.Subject, subjectWidth)
	if rest := subjectWidth - lipgloss.Width(subject) - 3; rest > 5 && e.Preview != "" {
		subject += mutedTextStyle.Render(" - " + truncate(e.Preview, rest))
	}

	fromCol := lipgloss.NewStyle().Width(fromWidth).Render(from)
	subjectCol := lipgloss.NewStyle().Width(subjectWidth).Render(subject)
	dateCol := mutedTextStyle.Width(dateWidth).Render(date)

	line := star + fromCol + "  " + subjectCol + chips + "  " + dateCol

	if !e.IsRead {
		line = unreadStyle.Render(line)
	}

	return line
}

func renderLabelChips(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range labels {
		b.WriteString(" ")
		b.WriteString(mutedTextStyle.Render("[" + l + "]"))
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
