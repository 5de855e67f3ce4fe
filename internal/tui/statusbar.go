package tui

import "github.com/charmbracelet/lipgloss"

type statusBar struct {
	message string
	width   int
	isError bool
	mode    overlay
	// replying is set while the reader's reply editor is open.
	replying      bool
	readerVisible bool
	confirming    bool
}

func newStatusBar() statusBar {
	return statusBar{message: "Ready"}
}

func (s *statusBar) setMessage(msg string) {
	s.message = msg
	s.isError = false
}

func (s *statusBar) setError(msg string) {
	s.message = msg
	s.isError = true
}

func (s statusBar) View() string {
	msgStyle := statusBarStyle
	if s.isError {
		msgStyle = msgStyle.Foreground(errorColor)
	}

	left := s.message
	shortcuts := s.shortcuts()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(shortcuts) - 2
	if gap < 0 {
		gap = 0
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + mutedTextStyle.Render(shortcuts)
	return msgStyle.Width(s.width).Render(content)
}

func (s statusBar) shortcuts() string {
	switch {
	case s.confirming:
		return "y:delete  any other key:cancel"
	case s.mode == overlayComposer:
		return "tab:fields  ctrl+s:send  ctrl+d:draft  esc:cancel"
	case s.mode == overlayLabels:
		return "a:add  e:rename  c:color  d:delete  ctrl+s:save  esc:cancel"
	case s.replying:
		return "ctrl+s:send reply  esc:cancel"
	case s.readerVisible:
		return "r/R:reply  n/p:thread  x:del reply  S:star reply  d:delete  s:star  u:unread  esc:back"
	}
	return "j/k:nav  enter:open  c:compose  /:search  L:labels  q:quit"
}
