package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages emitted by searchModel.

// searchQueryMsg carries the query after every edit so the list filters
// as the user types.
type searchQueryMsg struct {
	query string
}

type closeSearchMsg struct{}

// searchModel is the live filter input shown above the message list.
type searchModel struct {
	input   textinput.Model
	editing bool
	width   int
}

func newSearch() searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search mail..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return searchModel{input: ti}
}

func (s searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd) {
	if !s.editing {
		return s, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Back):
			return s, func() tea.Msg { return closeSearchMsg{} }
		case key.Matches(keyMsg, keys.Enter):
			// Keep the query and hand the keyboard back to the list.
			s.editing = false
			s.input.Blur()
			return s, nil
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if q := s.input.Value(); q != before {
		return s, tea.Batch(cmd, func() tea.Msg { return searchQueryMsg{query: q} })
	}
	return s, cmd
}

func (s searchModel) View() string {
	if !s.Visible() || s.width == 0 {
		return ""
	}
	return s.input.View()
}

// Open focuses the input, keeping any query already typed.
func (s *searchModel) Open() tea.Cmd {
	s.editing = true
	return s.input.Focus()
}

// Close clears the query and hides the input.
func (s *searchModel) Close() {
	s.editing = false
	s.input.SetValue("")
	s.input.Blur()
}

func (s *searchModel) SetSize(w int) {
	s.width = w
	s.input.Width = max(w-4, 1)
}

// Editing reports whether the input is capturing keys.
func (s searchModel) Editing() bool {
	return s.editing
}

// Visible reports whether the input line takes space above the list.
func (s searchModel) Visible() bool {
	return s.editing || s.input.Value() != ""
}

func (s searchModel) Query() string {
	return s.input.Value()
}
