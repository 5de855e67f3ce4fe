package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/mailbox/internal/app"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/fixture"
	"github.com/lu-zhengda/mailbox/internal/logging"
	"github.com/lu-zhengda/mailbox/internal/store/memory"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) model {
	t.Helper()
	s := memory.New()
	if err := fixture.Load(context.Background(), s); err != nil {
		t.Fatalf("fixture.Load() error: %v", err)
	}
	sess := app.NewSession(s, logging.Discard(), app.Options{})
	m := NewModel(sess, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

// apply runs cmd synchronously and feeds its message back into m.
func apply(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	next, _ := m.Update(cmd())
	return next.(model)
}

func testFolders() []app.FolderInfo {
	folders := make([]app.FolderInfo, 0, 8)
	for _, f := range domain.SystemFolders {
		folders = append(folders, app.FolderInfo{Folder: f, Name: f.DisplayName()})
	}
	return append(folders,
		app.FolderInfo{Folder: "label-1", Name: "Clients", Color: "red", Label: true},
		app.FolderInfo{Folder: "label-2", Name: "Personals", Color: "blue", Label: true},
		app.FolderInfo{Folder: "label-3", Name: "Tech Team", Color: "yellow", Label: true},
	)
}

func TestSidebarVisible_Filter(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"no filter", "", []string{"Clients", "Personals", "Tech Team"}},
		{"fuzzy", "tech", []string{"Tech Team"}},
		{"scattered letters", "pls", []string{"Personals"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSidebar()
			s.SetFolders(testFolders())
			s.filter.SetValue(tt.pattern)

			var labels []string
			system := 0
			for _, f := range s.visible() {
				if f.Label {
					labels = append(labels, f.Name)
				} else {
					system++
				}
			}
			if system != len(domain.SystemFolders) {
				t.Errorf("system folders = %d, want %d", system, len(domain.SystemFolders))
			}
			if len(labels) != len(tt.want) {
				t.Fatalf("labels = %v, want %v", labels, tt.want)
			}
			for i := range labels {
				if labels[i] != tt.want[i] {
					t.Errorf("labels[%d] = %q, want %q", i, labels[i], tt.want[i])
				}
			}
		})
	}
}

func TestSidebarUpdate_SelectsFolder(t *testing.T) {
	s := newSidebar()
	s.SetFolders(testFolders())
	s.focused = true

	s, _ = s.Update(runes("j"))
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter returned no command")
	}
	got, ok := cmd().(folderSelectedMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want folderSelectedMsg", cmd())
	}
	if got.folder != domain.FolderDesired {
		t.Errorf("folder = %q, want %q", got.folder, domain.FolderDesired)
	}
}

func TestSidebarUpdate_FilterThenSelect(t *testing.T) {
	s := newSidebar()
	s.SetFolders(testFolders())
	s.focused = true

	s, _ = s.Update(runes("f"))
	if !s.Filtering() {
		t.Fatal("expected filter input to be active")
	}
	s, _ = s.Update(runes("pers"))
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.Filtering() {
		t.Error("filter input still active after Enter")
	}
	got := cmd().(folderSelectedMsg)
	if got.folder != "label-2" {
		t.Errorf("folder = %q, want label-2", got.folder)
	}
}

func TestInboxUpdate_Actions(t *testing.T) {
	in := newInbox()
	in.focused = true
	in.SetSize(80, 10)
	in.SetMessages([]domain.Message{{ID: "a"}, {ID: "b"}})

	in, _ = in.Update(runes("j"))
	if got := in.SelectedID(); got != "b" {
		t.Fatalf("SelectedID() = %q, want b", got)
	}

	tests := []struct {
		key  string
		want messageAction
	}{
		{"d", actionDelete},
		{"s", actionStar},
		{"u", actionUnread},
	}
	for _, tt := range tests {
		_, cmd := in.Update(runes(tt.key))
		got, ok := cmd().(messageActionMsg)
		if !ok {
			t.Fatalf("%s: cmd() is not messageActionMsg", tt.key)
		}
		if got.id != "b" || got.action != tt.want {
			t.Errorf("%s: got %+v, want id b action %s", tt.key, got, tt.want)
		}
	}
}

func TestInboxSetMessages_KeepsCursor(t *testing.T) {
	in := newInbox()
	in.SetSize(80, 10)
	in.SetMessages([]domain.Message{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	in.cursor = 1

	in.SetMessages([]domain.Message{{ID: "new"}, {ID: "a"}, {ID: "b"}, {ID: "c"}})
	if got := in.SelectedID(); got != "b" {
		t.Errorf("SelectedID() = %q, want b", got)
	}

	in.SetMessages([]domain.Message{{ID: "a"}})
	if got := in.SelectedID(); got != "a" {
		t.Errorf("SelectedID() after shrink = %q, want a", got)
	}
}

func TestComposerUpdate_SendAndDraft(t *testing.T) {
	c := newComposer()
	c.Open()
	c.inputs[fieldTo].SetValue("bob@example.com")
	c.inputs[fieldSubject].SetValue("Hi")
	c.bodyInput.SetValue("**hello**")

	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	got := cmd().(sendMsg)
	if got.draft {
		t.Error("ctrl+s produced a draft")
	}
	if got.input.To != "bob@example.com" || got.input.Subject != "Hi" || got.input.Body != "**hello**" {
		t.Errorf("input = %+v", got.input)
	}

	_, cmd = c.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := cmd().(sendMsg); !got.draft {
		t.Error("ctrl+d did not produce a draft")
	}
}

func TestLabelManager_EditBatch(t *testing.T) {
	l := newLabelManager()
	l.Open([]domain.Label{
		{ID: "label-1", Name: "Clients", Color: "red"},
		{ID: "label-2", Name: "Personals", Color: "blue"},
	})

	l, _ = l.Update(runes("c"))
	if got := l.labels[0].Color; got != "blue" {
		t.Errorf("color after cycle = %q, want blue", got)
	}

	l, _ = l.Update(runes("j"))
	l, _ = l.Update(runes("d"))
	if len(l.labels) != 1 {
		t.Fatalf("len(labels) after delete = %d, want 1", len(l.labels))
	}

	l, _ = l.Update(runes("a"))
	l, _ = l.Update(runes("Urgent"))
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if l.editing {
		t.Fatal("still editing after Enter")
	}

	l, _ = l.Update(runes("e"))
	l, _ = l.Update(runes("!"))
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	got := cmd().(saveLabelsMsg).labels
	if len(got) != 2 {
		t.Fatalf("batch = %+v, want 2 labels", got)
	}
	if got[0].ID != "label-1" || got[0].Name != "Clients" {
		t.Errorf("batch[0] = %+v", got[0])
	}
	if got[1].ID != "" || got[1].Name != "Urgent!" {
		t.Errorf("batch[1] = %+v, want new label Urgent!", got[1])
	}
}

func TestLabelManager_RejectsBlankName(t *testing.T) {
	l := newLabelManager()
	l.Open(nil)

	l, _ = l.Update(runes("a"))
	l, _ = l.Update(runes("   "))
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(l.labels) != 0 {
		t.Errorf("len(labels) = %d, want 0", len(l.labels))
	}
	if l.errText == "" {
		t.Error("expected an error message")
	}
}

func TestModel_OpenAndMarkUnread(t *testing.T) {
	m := newTestModel(t)

	m = apply(t, m, m.loadMessagesCmd())
	if got := len(m.inbox.messages); got != 2 {
		t.Fatalf("inbox messages = %d, want 2", got)
	}

	m = apply(t, m, m.openMessageCmd("1"))
	if !m.reader.IsVisible() {
		t.Fatal("reader not visible after open")
	}
	if m.activePane != paneReader {
		t.Errorf("activePane = %v, want paneReader", m.activePane)
	}
	if got := m.session.Selected(); got != "1" {
		t.Errorf("Selected() = %q, want 1", got)
	}
	if got := len(m.reader.replies); got != 2 {
		t.Errorf("replies = %d, want 2", got)
	}

	m = apply(t, m, m.performActionCmd("1", actionUnread))
	if m.reader.IsVisible() {
		t.Error("reader still visible after marking unread")
	}
	if m.activePane != paneList {
		t.Errorf("activePane = %v, want paneList", m.activePane)
	}
}

func TestModel_StarKeepsReaderOpen(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, m.openMessageCmd("1"))

	m = apply(t, m, m.performActionCmd("1", actionStar))
	if !m.reader.IsVisible() {
		t.Fatal("reader closed after star")
	}

	next, _ := m.Update(m.refreshMessageCmd("1")())
	m = next.(model)
	if !m.reader.message.IsStarred {
		t.Error("reader message not starred after refresh")
	}
}

func TestModel_Reply(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, m.openMessageCmd("2"))

	m = apply(t, m, m.sendReplyCmd(sendReplyMsg{messageID: "2", body: "On it", inReplyTo: "John Doe"}))
	if got := len(m.reader.replies); got != 3 {
		t.Fatalf("replies = %d, want 3", got)
	}
	last := m.reader.replies[2]
	if last.Sender != "You" || last.Content != "On it" || last.InReplyTo != "John Doe" {
		t.Errorf("last reply = %+v", last)
	}
	if m.statusBar.message != "Reply sent" {
		t.Errorf("status = %q, want Reply sent", m.statusBar.message)
	}
}

func TestModel_SendRequiresRecipient(t *testing.T) {
	m := newTestModel(t)

	msg := m.sendCmd(app.ComposeInput{Subject: "No one"}, false)()
	got, ok := msg.(errMsg)
	if !ok {
		t.Fatalf("sendCmd() = %T, want errMsg", msg)
	}
	if !errors.Is(got.err, app.ErrNoRecipients) {
		t.Errorf("err = %v, want ErrNoRecipients", got.err)
	}

	msg = m.sendCmd(app.ComposeInput{Subject: "Later"}, true)()
	if _, ok := msg.(messageSentMsg); !ok {
		t.Fatalf("draft sendCmd() = %T, want messageSentMsg", msg)
	}
}

func TestModel_SaveLabelsRejected(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, m.loadLabelsForEditCmd())
	if m.overlay != overlayLabels {
		t.Fatalf("overlay = %v, want overlayLabels", m.overlay)
	}

	batch := []domain.Label{{Name: "Dup"}, {Name: "dup"}}
	m = apply(t, m, m.saveLabelsCmd(batch))
	if m.overlay != overlayLabels {
		t.Error("label manager closed after rejected save")
	}
	if m.labels.errText == "" {
		t.Error("expected rejection to be shown")
	}

	labels, err := m.session.Labels(context.Background())
	if err != nil {
		t.Fatalf("Labels() error: %v", err)
	}
	if len(labels) != 3 {
		t.Errorf("len(labels) = %d, want 3 (unchanged)", len(labels))
	}
}

func TestModel_FolderSelection(t *testing.T) {
	m := newTestModel(t)
	m = apply(t, m, m.openMessageCmd("1"))

	next, cmd := m.Update(folderSelectedMsg{folder: domain.FolderSent})
	m = next.(model)
	if m.reader.IsVisible() {
		t.Error("reader still visible after folder switch")
	}
	if got := m.session.Folder(); got != domain.FolderSent {
		t.Errorf("Folder() = %q, want sent", got)
	}

	m = apply(t, m, cmd)
	if got := len(m.inbox.messages); got != 1 {
		t.Errorf("sent messages = %d, want 1", got)
	}
}

func TestModel_LiveSearch(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(runes("/"))
	m = next.(model)
	if !m.search.Editing() {
		t.Fatal("search input not active after /")
	}

	next, cmd := m.Update(runes("zzz-no-match"))
	m = next.(model)
	if cmd == nil {
		t.Fatal("typing produced no command")
	}
	m = apply(t, m, m.loadMessagesCmd())
	if got := len(m.inbox.messages); got != 0 {
		t.Errorf("messages = %d, want 0", got)
	}

	next, _ = m.Update(closeSearchMsg{})
	m = next.(model)
	if m.search.Visible() {
		t.Error("search still visible after close")
	}
}

func TestModel_DropsStaleMessageList(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(runes("/"))
	m = next.(model)
	next, _ = m.Update(runes("jo"))
	m = next.(model)
	m = apply(t, m, m.loadMessagesCmd())
	want := m.inbox.messages
	status := m.statusBar.message

	stale := []struct {
		name string
		msg  messagesLoadedMsg
	}{
		{"older query", messagesLoadedMsg{folder: domain.FolderInbox, query: "j", messages: []domain.Message{{ID: "stale"}}}},
		{"other folder", messagesLoadedMsg{folder: domain.FolderSent, query: "jo", messages: []domain.Message{{ID: "stale"}}}},
	}
	for _, tt := range stale {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := m.Update(tt.msg)
			got := next.(model)
			if len(got.inbox.messages) != len(want) {
				t.Fatalf("messages = %d, want %d", len(got.inbox.messages), len(want))
			}
			for i := range want {
				if got.inbox.messages[i].ID != want[i].ID {
					t.Errorf("messages[%d] = %q, want %q", i, got.inbox.messages[i].ID, want[i].ID)
				}
			}
			if got.statusBar.message != status {
				t.Errorf("status = %q, want %q", got.statusBar.message, status)
			}
		})
	}
}

func TestModel_DeleteAsksFirst(t *testing.T) {
	tests := []struct {
		name      string
		answer    tea.KeyMsg
		wantGone  bool
		wantCount int
	}{
		{"confirmed", runes("y"), true, 1},
		{"declined", runes("n"), false, 2},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m = apply(t, m, m.loadMessagesCmd())
			id := m.inbox.SelectedID()

			next, cmd := m.Update(runes("d"))
			m = next.(model)
			m = apply(t, m, cmd)
			if m.pendingDelete != id {
				t.Fatalf("pendingDelete = %q, want %q", m.pendingDelete, id)
			}
			if _, err := m.session.Store().GetMessage(context.Background(), id); err != nil {
				t.Fatalf("message deleted before confirmation: %v", err)
			}

			next, cmd = m.Update(tt.answer)
			m = next.(model)
			if m.pendingDelete != "" {
				t.Error("prompt still pending after answer")
			}
			if tt.wantGone {
				m = apply(t, m, cmd)
				m = apply(t, m, m.loadMessagesCmd())
			}
			_, err := m.session.Store().GetMessage(context.Background(), id)
			if gone := errors.Is(err, domain.ErrMessageNotFound); gone != tt.wantGone {
				t.Errorf("deleted = %v, want %v", gone, tt.wantGone)
			}
			if got := len(m.inbox.messages); got != tt.wantCount {
				t.Errorf("inbox messages = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestNextLabelColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"red", "blue"},
		{"Gray", "red"},
		{"", "red"},
		{"mauve", "red"},
	}
	for _, tt := range tests {
		if got := nextLabelColor(tt.in); got != tt.want {
			t.Errorf("nextLabelColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyTheme(t *testing.T) {
	applyTheme("dark")
	if !lipgloss.HasDarkBackground() {
		t.Error("dark theme: HasDarkBackground() = false")
	}
	applyTheme("light")
	if lipgloss.HasDarkBackground() {
		t.Error("light theme: HasDarkBackground() = true")
	}
}
