package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lu-zhengda/mailbox/internal/app"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/logging"
)

type pane int

const (
	paneSidebar pane = iota
	paneList
	paneReader
)

// overlay is a form that takes over the content area and all keys.
type overlay int

const (
	overlayNone overlay = iota
	overlayComposer
	overlayLabels
)

// --- async result messages ---

type foldersLoadedMsg struct {
	folders []app.FolderInfo
	// current is the session folder, which may have fallen back to the
	// inbox after a label was removed.
	current domain.Folder
}

// messagesLoadedMsg carries the folder and query it was loaded for, so a
// result that arrives after the user moved on can be dropped.
type messagesLoadedMsg struct {
	folder   domain.Folder
	query    string
	messages []domain.Message
}

type messageOpenedMsg struct {
	message *domain.Message
	replies []domain.Reply
}

type messageRefreshedMsg struct {
	message *domain.Message
}

type repliesLoadedMsg struct {
	messageID string
	replies   []domain.Reply
	status    string
}

type messageSentMsg struct {
	message domain.Message
	draft   bool
}

type labelsForEditMsg struct {
	labels []domain.Label
}

type labelsSavedMsg struct {
	labels []domain.Label
}

type labelsRejectedMsg struct {
	err error
}

type actionDoneMsg struct {
	id     string
	action messageAction
}

type errMsg struct {
	err error
}

// Options configures the TUI.
type Options struct {
	// Theme is "light", "dark" or "system".
	Theme  string
	Logger *slog.Logger
}

// --- root model ---

type model struct {
	session *app.Session
	log     *slog.Logger

	sidebar  sidebarModel
	inbox    inboxModel
	search   searchModel
	reader   readerModel
	composer composerModel
	labels   labelManagerModel

	activePane pane
	overlay    overlay
	statusBar  statusBar
	// pendingDelete is the message waiting for a y/n answer.
	pendingDelete string

	width  int
	height int
}

// NewModel creates the root TUI model over sess.
func NewModel(sess *app.Session, opts Options) model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	inbox := newInbox()
	inbox.focused = true

	sidebar := newSidebar()
	sidebar.SetActive(sess.Folder())

	return model{
		session:    sess,
		log:        logger,
		activePane: paneList,
		sidebar:    sidebar,
		inbox:      inbox,
		search:     newSearch(),
		reader:     newReader(),
		composer:   newComposer(),
		labels:     newLabelManager(),
		statusBar:  newStatusBar(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.loadFoldersCmd(),
		m.loadMessagesCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- window resize ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.resizeSubModels()
		return m, nil

	// --- async result messages ---
	case foldersLoadedMsg:
		m.sidebar.SetFolders(msg.folders)
		m.sidebar.SetActive(msg.current)
		return m, nil

	case messagesLoadedMsg:
		if msg.folder != m.session.Folder() || msg.query != m.search.Query() {
			m.log.Debug("dropping stale message list", "folder", msg.folder, "query", msg.query)
			return m, nil
		}
		m.inbox.SetMessages(msg.messages)
		if q := m.search.Query(); q != "" {
			m.statusBar.setMessage(fmt.Sprintf("%d matching %q", len(msg.messages), q))
		} else {
			m.statusBar.setMessage(fmt.Sprintf("%s: %d messages", m.folderName(), len(msg.messages)))
		}
		return m, nil

	case messageOpenedMsg:
		m.reader.Show(msg.message, msg.replies)
		m.inbox.selected = msg.message.ID
		m.setFocus(paneReader)
		m.resizeSubModels()
		m.statusBar.setMessage(msg.message.Subject)
		// Opening marks the message read, so badges and list change.
		return m, tea.Batch(m.loadFoldersCmd(), m.loadMessagesCmd())

	case messageRefreshedMsg:
		if m.reader.MessageID() == msg.message.ID {
			m.reader.SetMessage(msg.message)
		}
		return m, nil

	case repliesLoadedMsg:
		if m.reader.MessageID() == msg.messageID {
			if m.reader.Replying() {
				m.reader.closeEditor()
			}
			m.reader.SetReplies(msg.replies)
		}
		m.syncStatus()
		m.statusBar.setMessage(msg.status)
		return m, nil

	case messageSentMsg:
		m.closeOverlay()
		if msg.draft {
			m.statusBar.setMessage("Draft saved")
		} else {
			m.statusBar.setMessage(fmt.Sprintf("Sent %q", msg.message.Subject))
		}
		return m, tea.Batch(m.loadFoldersCmd(), m.loadMessagesCmd())

	case labelsForEditMsg:
		m.labels.Open(msg.labels)
		m.overlay = overlayLabels
		m.syncStatus()
		m.resizeSubModels()
		return m, nil

	case labelsSavedMsg:
		m.closeOverlay()
		m.statusBar.setMessage(fmt.Sprintf("Saved %d labels", len(msg.labels)))
		return m, tea.Batch(m.loadFoldersCmd(), m.loadMessagesCmd())

	case labelsRejectedMsg:
		m.labels.SetError(msg.err)
		m.statusBar.setError(fmt.Sprintf("Labels not saved: %v", msg.err))
		return m, nil

	case actionDoneMsg:
		m.statusBar.setMessage(fmt.Sprintf("Action: %s done", msg.action))
		var cmds []tea.Cmd
		if m.reader.MessageID() == msg.id {
			if m.session.Selected() != msg.id {
				// Deleted or marked unread: the message is no longer open.
				m.closeReader()
			} else {
				cmds = append(cmds, m.refreshMessageCmd(msg.id))
			}
		}
		cmds = append(cmds, m.loadFoldersCmd(), m.loadMessagesCmd())
		return m, tea.Batch(cmds...)

	case errMsg:
		m.log.Error("tui command failed", "error", msg.err)
		m.statusBar.setError(fmt.Sprintf("Error: %v", msg.err))
		return m, nil

	// --- sub-model emitted messages ---
	case folderSelectedMsg:
		m.session.SelectFolder(msg.folder)
		m.sidebar.SetActive(msg.folder)
		m.closeReader()
		m.inbox.Reset()
		m.setFocus(paneList)
		m.statusBar.setMessage("Loading...")
		return m, m.loadMessagesCmd()

	case messageSelectedMsg:
		m.statusBar.setMessage("Loading message...")
		return m, m.openMessageCmd(msg.id)

	case messageActionMsg:
		if msg.action == actionDelete {
			m.pendingDelete = msg.id
			m.statusBar.confirming = true
			m.statusBar.setMessage("Delete this message? (y/n)")
			return m, nil
		}
		return m, m.performActionCmd(msg.id, msg.action)

	case sendReplyMsg:
		m.statusBar.setMessage("Sending reply...")
		return m, m.sendReplyCmd(msg)

	case replyActionMsg:
		return m, m.replyActionCmd(msg)

	case closeReaderMsg:
		m.closeReader()
		m.setFocus(paneList)
		return m, nil

	case sendMsg:
		return m, m.sendCmd(msg.input, msg.draft)

	case cancelComposeMsg, closeLabelsMsg:
		m.closeOverlay()
		return m, nil

	case saveLabelsMsg:
		m.statusBar.setMessage("Saving labels...")
		return m, m.saveLabelsCmd(msg.labels)

	case searchQueryMsg:
		return m, m.loadMessagesCmd()

	case closeSearchMsg:
		m.search.Close()
		m.resizeSubModels()
		m.setFocus(paneList)
		return m, m.loadMessagesCmd()

	// --- key events ---
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingDelete != "" {
		id := m.pendingDelete
		m.pendingDelete = ""
		m.statusBar.confirming = false
		if key.Matches(msg, keys.Confirm) {
			return m, m.performActionCmd(id, actionDelete)
		}
		m.statusBar.setMessage("Delete cancelled")
		return m, nil
	}

	// Overlays and text inputs get every key.
	switch {
	case m.overlay == overlayComposer:
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd

	case m.overlay == overlayLabels:
		var cmd tea.Cmd
		m.labels, cmd = m.labels.Update(msg)
		return m, cmd

	case m.search.Editing():
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case m.reader.Replying() && m.activePane == paneReader,
		m.sidebar.Filtering() && m.activePane == paneSidebar:
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Compose):
		m.overlay = overlayComposer
		m.syncStatus()
		m.resizeSubModels()
		return m, m.composer.Open()

	case key.Matches(msg, keys.Labels):
		return m, m.loadLabelsForEditCmd()

	case key.Matches(msg, keys.Search):
		m.setFocus(paneList)
		cmd := m.search.Open()
		m.resizeSubModels()
		return m, cmd

	case key.Matches(msg, keys.Back) && m.activePane == paneList && m.search.Query() != "":
		m.search.Close()
		m.resizeSubModels()
		return m, m.loadMessagesCmd()

	case key.Matches(msg, keys.Tab):
		m.cycleFocus()
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused delegates a key to the focused pane.
func (m model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activePane {
	case paneSidebar:
		m.sidebar, cmd = m.sidebar.Update(msg)
	case paneList:
		m.inbox, cmd = m.inbox.Update(msg)
	case paneReader:
		m.reader, cmd = m.reader.Update(msg)
	}
	m.syncStatus()
	return m, cmd
}

// updateInputs forwards non-key messages, such as cursor blinks, to the
// text inputs that may be waiting for them.
func (m model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.overlay {
	case overlayComposer:
		m.composer, cmd = m.composer.Update(msg)
		cmds = append(cmds, cmd)
	case overlayLabels:
		m.labels, cmd = m.labels.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.search.Editing() {
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.reader.Replying() {
		m.reader, cmd = m.reader.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.sidebar.Filtering() {
		m.sidebar, cmd = m.sidebar.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebarWidth, contentWidth := m.layoutWidths()
	contentHeight := m.height - 3 // reserve space for status bar

	sidebarView := sidebarStyle.
		Width(sidebarWidth).
		Height(contentHeight).
		Render(m.sidebar.View())

	var contentView string

	switch {
	case m.overlay == overlayComposer:
		contentView = lipgloss.NewStyle().
			Width(contentWidth).
			Height(contentHeight).
			Render(m.composer.View())

	case m.overlay == overlayLabels:
		contentView = lipgloss.NewStyle().
			Width(contentWidth).
			Height(contentHeight).
			Render(m.labels.View())

	case m.reader.IsVisible():
		// Split view: list (top) + reader (bottom).
		listHeight := contentHeight / 3
		readerHeight := contentHeight - listHeight

		listView := listStyle.
			Width(contentWidth).
			Height(listHeight).
			Render(m.listView())

		readerView := readerStyle.
			Width(contentWidth).
			Height(readerHeight).
			Render(m.reader.View())

		contentView = lipgloss.JoinVertical(lipgloss.Left, listView, readerView)

	default:
		contentView = listStyle.
			Width(contentWidth).
			Height(contentHeight).
			Render(m.listView())
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, contentView)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar.View())
}

// listView stacks the search input above the message list when a query
// is being typed or applied.
func (m model) listView() string {
	if !m.search.Visible() {
		return m.inbox.View()
	}
	return m.search.View() + "\n" + m.inbox.View()
}

// --- focus management ---

func (m *model) setFocus(p pane) {
	m.activePane = p
	m.sidebar.focused = (p == paneSidebar)
	m.inbox.focused = (p == paneList)
	m.reader.focused = (p == paneReader)
	m.syncStatus()
}

func (m *model) cycleFocus() {
	switch m.activePane {
	case paneSidebar:
		m.setFocus(paneList)
	case paneList:
		if m.reader.IsVisible() {
			m.setFocus(paneReader)
		} else {
			m.setFocus(paneSidebar)
		}
	default:
		m.setFocus(paneSidebar)
	}
}

func (m *model) closeReader() {
	m.reader.Close()
	m.inbox.selected = ""
	m.session.CloseMessage()
	if m.activePane == paneReader {
		m.setFocus(paneList)
	}
	m.resizeSubModels()
}

func (m *model) closeOverlay() {
	m.composer.Close()
	m.labels.Close()
	m.overlay = overlayNone
	m.syncStatus()
}

func (m *model) syncStatus() {
	m.statusBar.mode = m.overlay
	m.statusBar.readerVisible = m.reader.IsVisible() && m.activePane == paneReader
	m.statusBar.replying = m.reader.Replying()
}

func (m model) folderName() string {
	current := m.session.Folder()
	for _, f := range m.sidebar.folders {
		if f.Folder == current {
			return f.Name
		}
	}
	return current.DisplayName()
}

// --- layout helpers ---

func (m model) layoutWidths() (sidebarWidth, contentWidth int) {
	sidebarWidth = m.width / 5
	if sidebarWidth < 20 {
		sidebarWidth = 20
	}
	contentWidth = m.width - sidebarWidth - 2
	return
}

func (m *model) resizeSubModels() {
	if m.width == 0 {
		return
	}
	sidebarWidth, contentWidth := m.layoutWidths()
	contentHeight := m.height - 3

	// sidebarStyle: Border(2h + 2v) + Padding(2h + 2v) = 4h, 4v
	m.sidebar.SetSize(sidebarWidth-4, contentHeight-4)

	listHeight := contentHeight
	if m.reader.IsVisible() {
		listHeight = contentHeight / 3
		// readerStyle: Border(2h + 2v) + Padding(4h + 2v) = 6h, 4v
		m.reader.SetSize(contentWidth-6, contentHeight-listHeight-4)
	}

	// listStyle: Border(2h + 2v) + Padding(2h + 0v) = 4h, 2v
	rows := listHeight - 2
	if m.search.Visible() {
		rows--
	}
	m.search.SetSize(contentWidth - 4)
	m.inbox.SetSize(contentWidth-4, rows)

	m.composer.SetSize(contentWidth, contentHeight)
	m.labels.SetSize(contentWidth, contentHeight)
}

// --- async commands ---

func (m model) loadFoldersCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		folders, err := sess.Folders(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return foldersLoadedMsg{folders: folders, current: sess.Folder()}
	}
}

func (m model) loadMessagesCmd() tea.Cmd {
	sess := m.session
	folder := sess.Folder()
	query := m.search.Query()
	return func() tea.Msg {
		msgs, err := sess.MessagesIn(context.Background(), folder, query)
		if err != nil {
			return errMsg{err: err}
		}
		return messagesLoadedMsg{folder: folder, query: query, messages: msgs}
	}
}

func (m model) openMessageCmd(id string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		msg, replies, err := sess.Open(context.Background(), id)
		if err != nil {
			return errMsg{err: err}
		}
		return messageOpenedMsg{message: msg, replies: replies}
	}
}

func (m model) refreshMessageCmd(id string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		msg, err := sess.Store().GetMessage(context.Background(), id)
		if errors.Is(err, domain.ErrMessageNotFound) {
			return nil
		}
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to reload message: %w", err)}
		}
		return messageRefreshedMsg{message: msg}
	}
}

func (m model) performActionCmd(id string, action messageAction) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ctx := context.Background()
		var err error

		switch action {
		case actionDelete:
			err = sess.Delete(ctx, id)
		case actionStar:
			err = sess.ToggleStar(ctx, id)
		case actionUnread:
			err = sess.MarkUnread(ctx, id)
		default:
			return errMsg{err: fmt.Errorf("unknown action: %s", action)}
		}

		if err != nil {
			return errMsg{err: err}
		}
		return actionDoneMsg{id: id, action: action}
	}
}

func (m model) sendReplyCmd(r sendReplyMsg) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := sess.Reply(ctx, r.messageID, r.body, r.inReplyTo); err != nil {
			return errMsg{err: err}
		}
		replies, err := sess.Replies(ctx, r.messageID)
		if err != nil {
			return errMsg{err: err}
		}
		return repliesLoadedMsg{messageID: r.messageID, replies: replies, status: "Reply sent"}
	}
}

func (m model) replyActionCmd(r replyActionMsg) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ctx := context.Background()
		var (
			err    error
			status string
		)
		switch r.action {
		case replyDelete:
			err = sess.DeleteReply(ctx, r.messageID, r.replyID)
			status = "Reply deleted"
		case replyStar:
			err = sess.ToggleReplyStar(ctx, r.messageID, r.replyID)
			status = "Reply star toggled"
		}
		if err != nil {
			return errMsg{err: err}
		}
		replies, err := sess.Replies(ctx, r.messageID)
		if err != nil {
			return errMsg{err: err}
		}
		return repliesLoadedMsg{messageID: r.messageID, replies: replies, status: status}
	}
}

func (m model) sendCmd(in app.ComposeInput, draft bool) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ctx := context.Background()
		var (
			msg domain.Message
			err error
		)
		if draft {
			msg, err = sess.SaveDraft(ctx, in)
		} else {
			msg, err = sess.Send(ctx, in)
		}
		if err != nil {
			return errMsg{err: err}
		}
		return messageSentMsg{message: msg, draft: draft}
	}
}

func (m model) loadLabelsForEditCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		labels, err := sess.Labels(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return labelsForEditMsg{labels: labels}
	}
}

func (m model) saveLabelsCmd(batch []domain.Label) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		labels, err := sess.UpdateLabels(context.Background(), batch)
		if err != nil {
			return labelsRejectedMsg{err: err}
		}
		return labelsSavedMsg{labels: labels}
	}
}

// Run starts the Bubble Tea TUI application.
func Run(sess *app.Session, opts Options) error {
	applyTheme(opts.Theme)
	prog := tea.NewProgram(
		NewModel(sess, opts),
		tea.WithAltScreen(),
	)
	_, err := prog.Run()
	return err
}
