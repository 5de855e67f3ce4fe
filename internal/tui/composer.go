package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/mailbox/internal/app"
)

// Messages emitted by composerModel.

type sendMsg struct {
	input app.ComposeInput
	draft bool
}

type cancelComposeMsg struct{}

// Field indices within the composer form.
const (
	fieldTo = iota
	fieldCC
	fieldBCC
	fieldSubject
	fieldBody
	fieldCount
)

// composerModel is the form for writing a new message. The body is
// markdown and is rendered to HTML when sent.
type composerModel struct {
	inputs    [fieldBody]textinput.Model
	bodyInput textarea.Model

	activeField int
	width       int
	height      int
	visible     bool
}

var fieldLabels = [fieldBody]string{"To:", "Cc:", "Bcc:", "Subject:"}

func newComposer() composerModel {
	var c composerModel

	placeholders := [fieldBody]string{"recipient@example.com", "cc@example.com", "bcc@example.com", "Subject"}
	for i := range c.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 500
		ti.Prompt = ""
		c.inputs[i] = ti
	}
	c.inputs[fieldSubject].CharLimit = 200

	body := textarea.New()
	body.Placeholder = "Write your message... (markdown)"
	body.SetWidth(40)
	body.SetHeight(6)
	body.CharLimit = 0
	c.bodyInput = body

	return c
}

func (c composerModel) Update(msg tea.Msg) (composerModel, tea.Cmd) {
	if !c.visible {
		return c, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "tab":
			c.activeField = (c.activeField + 1) % fieldCount
			return c, c.updateFocus()

		case keyMsg.String() == "shift+tab":
			c.activeField = (c.activeField + fieldCount - 1) % fieldCount
			return c, c.updateFocus()

		case key.Matches(keyMsg, keys.Back):
			return c, func() tea.Msg { return cancelComposeMsg{} }

		case key.Matches(keyMsg, keys.Send):
			in := c.Input()
			return c, func() tea.Msg { return sendMsg{input: in} }

		case key.Matches(keyMsg, keys.Draft):
			in := c.Input()
			return c, func() tea.Msg { return sendMsg{input: in, draft: true} }
		}
	}

	var cmd tea.Cmd
	if c.activeField == fieldBody {
		c.bodyInput, cmd = c.bodyInput.Update(msg)
	} else {
		c.inputs[c.activeField], cmd = c.inputs[c.activeField].Update(msg)
	}
	return c, cmd
}

// View renders the form inside a bordered box.
func (c composerModel) View() string {
	if !c.visible {
		return ""
	}

	innerWidth := max(c.width-4, 20) // border + padding

	labelWidth := 10
	inputWidth := max(innerWidth-labelWidth, 10)
	for i := range c.inputs {
		c.inputs[i].Width = inputWidth
	}
	c.bodyInput.SetWidth(innerWidth)

	// border(2) header(1) fields(4) separator(1) spacing(1) help(1)
	c.bodyInput.SetHeight(max(c.height-11, 3))

	var rows []string
	for i := range c.inputs {
		label := mutedTextStyle.Render(fmt.Sprintf("%-9s", fieldLabels[i]))
		rows = append(rows, label+c.inputs[i].View())
	}
	rows = append(rows, mutedTextStyle.Render(strings.Repeat("─", innerWidth)))
	rows = append(rows, c.bodyInput.View())
	rows = append(rows, "")
	rows = append(rows, mutedTextStyle.Render("Tab:fields  Ctrl+S:send  Ctrl+D:save draft  Esc:cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(0, 1).
		Width(c.width - 2)

	header := titleStyle.Render(" Compose ")
	return header + "\n" + boxStyle.Render(strings.Join(rows, "\n"))
}

// Open shows an empty form with the To field focused.
func (c *composerModel) Open() tea.Cmd {
	c.clearFields()
	c.visible = true
	c.activeField = fieldTo
	return c.updateFocus()
}

func (c *composerModel) Close() {
	c.visible = false
	c.clearFields()
	c.updateFocus()
}

func (c *composerModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

func (c composerModel) IsVisible() bool {
	return c.visible
}

// Input returns what has been typed so far.
func (c composerModel) Input() app.ComposeInput {
	return app.ComposeInput{
		To:      c.inputs[fieldTo].Value(),
		CC:      c.inputs[fieldCC].Value(),
		BCC:     c.inputs[fieldBCC].Value(),
		Subject: c.inputs[fieldSubject].Value(),
		Body:    c.bodyInput.Value(),
	}
}

func (c *composerModel) clearFields() {
	for i := range c.inputs {
		c.inputs[i].SetValue("")
	}
	c.bodyInput.SetValue("")
}

// updateFocus focuses the active field and blurs the rest.
func (c *composerModel) updateFocus() tea.Cmd {
	for i := range c.inputs {
		c.inputs[i].Blur()
	}
	c.bodyInput.Blur()

	if !c.visible {
		return nil
	}
	if c.activeField == fieldBody {
		return c.bodyInput.Focus()
	}
	return c.inputs[c.activeField].Focus()
}
