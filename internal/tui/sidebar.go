package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/mailbox/internal/app"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/sahilm/fuzzy"
)

// folderSelectedMsg is sent when the user opens a folder or label via Enter.
type folderSelectedMsg struct {
	folder domain.Folder
}

// sidebarModel lists the system folders followed by the user labels.
// Labels can be narrowed with a fuzzy filter; system folders always show.
type sidebarModel struct {
	folders   []app.FolderInfo
	cursor    int
	active    domain.Folder
	filter    textinput.Model
	filtering bool
	width     int
	height    int
	focused   bool
}

func newSidebar() sidebarModel {
	ti := textinput.New()
	ti.Placeholder = "filter labels"
	ti.Prompt = "f "
	ti.CharLimit = 64
	return sidebarModel{
		active: domain.FolderInbox,
		filter: ti,
	}
}

// SetFolders updates the entries and their unread counts.
func (s *sidebarModel) SetFolders(folders []app.FolderInfo) {
	s.folders = folders
	s.clampCursor()
}

func (s *sidebarModel) SetActive(f domain.Folder) {
	s.active = f
}

func (s *sidebarModel) SetSize(w, h int) {
	s.width = w
	s.height = h
	s.filter.Width = max(w-2, 1)
}

// Filtering reports whether the filter input is capturing keys.
func (s sidebarModel) Filtering() bool {
	return s.filtering
}

func (s sidebarModel) Update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.filtering {
		switch {
		case key.Matches(keyMsg, keys.Back):
			s.filtering = false
			s.filter.SetValue("")
			s.filter.Blur()
			s.clampCursor()
			return s, nil
		case key.Matches(keyMsg, keys.Enter):
			// Jump to the best matching label.
			s.filtering = false
			s.filter.Blur()
			for i, f := range s.visible() {
				if f.Label {
					s.cursor = i
					break
				}
			}
			return s, s.selectCmd()
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.clampCursor()
		return s, cmd
	}

	total := len(s.visible())
	switch {
	case key.Matches(keyMsg, keys.Filter):
		s.filtering = true
		return s, s.filter.Focus()
	case key.Matches(keyMsg, keys.Back):
		if s.filter.Value() != "" {
			s.filter.SetValue("")
			s.clampCursor()
		}
	case total == 0:
	case key.Matches(keyMsg, keys.Up):
		s.cursor--
		if s.cursor < 0 {
			s.cursor = total - 1
		}
	case key.Matches(keyMsg, keys.Down):
		s.cursor++
		if s.cursor >= total {
			s.cursor = 0
		}
	case key.Matches(keyMsg, keys.Enter):
		return s, s.selectCmd()
	}

	return s, nil
}

func (s sidebarModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mailbox"))
	b.WriteString("\n\n")

	if len(s.folders) == 0 {
		b.WriteString(mutedTextStyle.Render("Loading folders..."))
		return b.String()
	}

	items := s.visible()
	labelHeader := false
	for i, f := range items {
		if f.Label && !labelHeader {
			labelHeader = true
			b.WriteString("\n")
			b.WriteString(mutedTextStyle.Render(strings.Repeat("─", max(s.width, 10))))
			b.WriteString("\n")
			b.WriteString(mutedTextStyle.Render("Labels:"))
			b.WriteString("\n")
		}
		b.WriteString(s.renderLine(f, i))
		b.WriteString("\n")
	}

	if s.filtering || s.filter.Value() != "" {
		if !labelHeader {
			b.WriteString("\n")
			b.WriteString(mutedTextStyle.Render("No matching labels"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.filter.View())
	}

	return b.String()
}

// visible returns the system folders followed by the labels matching the
// filter, best match first.
func (s sidebarModel) visible() []app.FolderInfo {
	var system, labels []app.FolderInfo
	for _, f := range s.folders {
		if f.Label {
			labels = append(labels, f)
		} else {
			system = append(system, f)
		}
	}

	pattern := strings.TrimSpace(s.filter.Value())
	if pattern == "" {
		return append(system, labels...)
	}

	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	out := system
	for _, match := range fuzzy.Find(pattern, names) {
		out = append(out, labels[match.Index])
	}
	return out
}

func (s sidebarModel) selectCmd() tea.Cmd {
	items := s.visible()
	if s.cursor < 0 || s.cursor >= len(items) {
		return nil
	}
	f := items[s.cursor].Folder
	return func() tea.Msg {
		return folderSelectedMsg{folder: f}
	}
}

func (s *sidebarModel) clampCursor() {
	n := len(s.visible())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s sidebarModel) renderLine(f app.FolderInfo, idx int) string {
	prefix := "  "
	if f.Folder == s.active {
		prefix = "▶ "
	}

	name := f.Name
	if f.Label {
		name = lipgloss.NewStyle().Foreground(labelColor(f.Color)).Render("● ") + name
	}

	badge := ""
	if f.Unread > 0 {
		badge = fmt.Sprintf(" %d", f.Unread)
	}

	width := max(s.width, 10)
	nameWidth := width - lipgloss.Width(prefix) - lipgloss.Width(badge)
	line := prefix + lipgloss.NewStyle().Width(max(nameWidth, 1)).MaxWidth(max(nameWidth, 1)).Render(name) + badgeStyle.Render(badge)

	padded := lipgloss.NewStyle().Width(width).Render(line)
	if s.focused && idx == s.cursor {
		return selectedStyle.Render(padded)
	}
	return padded
}
