package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Back        key.Binding
	Compose     key.Binding
	Reply       key.Binding
	ReplyTo     key.Binding
	NextReply   key.Binding
	PrevReply   key.Binding
	DeleteReply key.Binding
	StarReply   key.Binding
	Delete      key.Binding
	Star        key.Binding
	Unread      key.Binding
	Labels      key.Binding
	Search      key.Binding
	Filter      key.Binding
	Tab         key.Binding
	Send        key.Binding
	Draft       key.Binding
	Add         key.Binding
	Rename      key.Binding
	Color       key.Binding
	Confirm     key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Compose:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compose")),
	Reply:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reply")),
	ReplyTo:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reply to highlighted")),
	NextReply:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next reply")),
	PrevReply:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous reply")),
	DeleteReply: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete reply")),
	StarReply:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "star reply")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Star:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star")),
	Unread:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unread")),
	Labels:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "labels")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter labels")),
	Tab:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Send:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
	Draft:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "save draft")),
	Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Rename:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
	Color:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
	Confirm:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
