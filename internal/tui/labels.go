package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

// Messages emitted by labelManagerModel.

type saveLabelsMsg struct {
	labels []domain.Label
}

type closeLabelsMsg struct{}

// labelManagerModel edits a working copy of the label set. Nothing reaches
// the store until the batch is saved, so a rejected save leaves both the
// store and the working copy as they were.
type labelManagerModel struct {
	labels  []domain.Label
	cursor  int
	input   textinput.Model
	editing bool
	// renaming is the index being renamed, or -1 while adding.
	renaming int
	errText  string
	width    int
	height   int
	visible  bool
}

func newLabelManager() labelManagerModel {
	ti := textinput.New()
	ti.Placeholder = "Label name"
	ti.Prompt = "> "
	ti.CharLimit = 64
	return labelManagerModel{input: ti, renaming: -1}
}

func (l labelManagerModel) Update(msg tea.Msg) (labelManagerModel, tea.Cmd) {
	if !l.visible {
		return l, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.editing {
		switch {
		case key.Matches(keyMsg, keys.Back):
			l.stopEditing()
			return l, nil
		case key.Matches(keyMsg, keys.Enter):
			l.commitEdit()
			return l, nil
		}
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Back):
		return l, func() tea.Msg { return closeLabelsMsg{} }

	case key.Matches(keyMsg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}

	case key.Matches(keyMsg, keys.Down):
		if l.cursor < len(l.labels)-1 {
			l.cursor++
		}

	case key.Matches(keyMsg, keys.Add):
		l.renaming = -1
		l.input.SetValue("")
		l.editing = true
		l.errText = ""
		return l, l.input.Focus()

	case key.Matches(keyMsg, keys.Rename):
		if len(l.labels) == 0 {
			return l, nil
		}
		l.renaming = l.cursor
		l.input.SetValue(l.labels[l.cursor].Name)
		l.input.CursorEnd()
		l.editing = true
		l.errText = ""
		return l, l.input.Focus()

	case key.Matches(keyMsg, keys.Color):
		if len(l.labels) > 0 {
			l.labels[l.cursor].Color = nextLabelColor(l.labels[l.cursor].Color)
		}

	case key.Matches(keyMsg, keys.Delete):
		if len(l.labels) > 0 {
			l.labels = slices.Delete(l.labels, l.cursor, l.cursor+1)
			l.cursor = min(l.cursor, max(len(l.labels)-1, 0))
		}

	case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.Send):
		batch := slices.Clone(l.labels)
		return l, func() tea.Msg { return saveLabelsMsg{labels: batch} }
	}

	return l, nil
}

func (l labelManagerModel) View() string {
	if !l.visible {
		return ""
	}

	var rows []string
	if len(l.labels) == 0 {
		rows = append(rows, mutedTextStyle.Render("No labels. Press a to add one."))
	}
	for i, lb := range l.labels {
		dot := lipgloss.NewStyle().Foreground(labelColor(lb.Color)).Render("●")
		line := fmt.Sprintf("%s %s %s", dot, lb.Name, mutedTextStyle.Render("("+lb.Color+")"))
		if lb.ID == "" {
			line += successTextStyle.Render("  new")
		}
		if i == l.cursor {
			line = selectedStyle.Width(max(l.width-6, 10)).Render(line)
		}
		rows = append(rows, line)
	}

	if l.editing {
		title := "New label"
		if l.renaming >= 0 {
			title = "Rename label"
		}
		rows = append(rows, "", titleStyle.Render(title), l.input.View())
	}
	if l.errText != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(errorColor).Render(l.errText))
	}
	rows = append(rows, "", mutedTextStyle.Render("a:add  e:rename  c:color  d:delete  enter/ctrl+s:save  esc:cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(0, 1).
		Width(l.width - 2)

	return titleStyle.Render(" Labels ") + "\n" + boxStyle.Render(strings.Join(rows, "\n"))
}

// Open starts editing a copy of labels.
func (l *labelManagerModel) Open(labels []domain.Label) {
	l.labels = slices.Clone(labels)
	l.cursor = 0
	l.errText = ""
	l.visible = true
	l.stopEditing()
}

func (l *labelManagerModel) Close() {
	l.visible = false
	l.labels = nil
	l.errText = ""
	l.stopEditing()
}

// SetError shows why a save was rejected. The working copy is kept so the
// user can fix it.
func (l *labelManagerModel) SetError(err error) {
	l.errText = err.Error()
}

func (l *labelManagerModel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.input.Width = max(w-8, 10)
}

func (l labelManagerModel) IsVisible() bool {
	return l.visible
}

func (l *labelManagerModel) commitEdit() {
	name := strings.TrimSpace(l.input.Value())
	if name == "" {
		l.errText = domain.ErrEmptyName.Error()
		return
	}
	if l.renaming >= 0 && l.renaming < len(l.labels) {
		l.labels[l.renaming].Name = name
	} else {
		l.labels = append(l.labels, domain.Label{Name: name, Color: labelColors[len(l.labels)%len(labelColors)]})
		l.cursor = len(l.labels) - 1
	}
	l.errText = ""
	l.stopEditing()
}

func (l *labelManagerModel) stopEditing() {
	l.editing = false
	l.renaming = -1
	l.input.SetValue("")
	l.input.Blur()
}
