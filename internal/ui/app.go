package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/tally/internal/pages"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/session"
	"github.com/five82/tally/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Pages     []pages.Lister // one tab per page, in order
	Hub       *Hub
	Session   session.Session
	APIURL    string
	LogPath   string
	ThemeName string
	LastTab   string // page name to open first
	PrefsPath string
	Logger    *log.Logger
}

// inputMode is what plain keystrokes go to.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	pages     []pages.Lister
	hub       *Hub
	session   session.Session
	apiURL    string
	logPath   string
	prefsPath string
	log       *log.Logger

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	width   int
	height  int
	ready   bool
	now     time.Time

	// Active page state
	active  int
	loaded  []bool
	pending int
	view    pages.ViewState
	cursor  int
	column  int

	// Search bar
	mode        inputMode
	searchInput textinput.Model

	// Overlays
	modal       Modal
	showHelp    bool
	showLogs    bool
	logViewport viewport.Model
	logErr      error

	// Status line
	toast    pages.Toast
	hasToast bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	m := Model{
		ctx:         ctx,
		pages:       opts.Pages,
		hub:         opts.Hub,
		session:     opts.Session,
		apiURL:      opts.APIURL,
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		log:         logger,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     spin,
		now:         time.Now(),
		loaded:      make([]bool, len(opts.Pages)),
		searchInput: search,
	}
	for i, p := range opts.Pages {
		if p.Name() == opts.LastTab {
			m.active = i
		}
	}
	if page := m.page(); page != nil {
		m.hub.setActive(page)
		m.view = page.View()
		m.loaded[m.active] = true
		m.pending = 1
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockCmd(), m.spinner.Tick}
	if page := m.page(); page != nil {
		cmds = append(cmds, refreshCmd(m.ctx, page))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport = viewport.New(max(msg.Width-2, 0), max(msg.Height-2, 0))
		m.ready = true
		return m, nil

	case refreshMsg:
		m.sync()
		return m, nil

	case fetchedMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.sync()
		return m, nil

	case confirmDoneMsg, submitDoneMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		m.sync()
		return m, nil

	case logsMsg:
		m.handleLogs(msg)
		return m, nil

	case clockMsg:
		m.now = time.Time(msg)
		if m.hasToast && m.now.Sub(m.toast.At) > ToastDuration {
			m.hasToast = false
		}
		return m, clockCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading() {
			m.sync()
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if len(m.pages) == 0 {
		return "No pages configured"
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey routes keyboard input: overlays first, then the search bar, then
// list bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.mode == modeSearch {
		return m.handleSearchKey(msg)
	}

	page := m.page()
	if page == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
	case key.Matches(msg, m.keys.NextTab):
		cmd = m.switchTab(m.active + 1)
	case key.Matches(msg, m.keys.PrevTab):
		cmd = m.switchTab(m.active - 1)
	case key.Matches(msg, m.keys.JumpTab):
		if n := int(msg.Runes[0] - '1'); n < len(m.pages) {
			cmd = m.switchTab(n)
		}
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Refresh):
		cmd = m.refresh()
	case key.Matches(msg, m.keys.Escape):
		if m.view.Term != "" {
			page.ClearSearch()
			m.searchInput.SetValue("")
		}

	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.view.Rows) - 1
	case key.Matches(msg, m.keys.ColLeft):
		m.column = max(m.column-1, 0)
	case key.Matches(msg, m.keys.ColRight):
		m.column = max(min(m.column+1, len(page.Columns())-1), 0)
	case key.Matches(msg, m.keys.SortColumn):
		cols := page.Columns()
		if m.column < len(cols) {
			if err := page.SortBy(cols[m.column].Key); err != nil {
				m.notify(pages.ToastInfo, fmt.Sprintf("%s can't be sorted", cols[m.column].Label))
			}
		}
	case key.Matches(msg, m.keys.NextPage):
		if page.NextPage() {
			cmd = m.refresh()
		}
		m.cursor = 0
	case key.Matches(msg, m.keys.PrevPage):
		if page.PrevPage() {
			cmd = m.refresh()
		}
		m.cursor = 0
	case key.Matches(msg, m.keys.PageSize):
		if page.CyclePageSize() {
			cmd = m.refresh()
		}
		m.cursor = 0

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.view.Term)
		m.searchInput.CursorEnd()
		cmd = m.searchInput.Focus()
	case key.Matches(msg, m.keys.Filters):
		m.modal = newFilterModal(page)
	case key.Matches(msg, m.keys.Select):
		if row, ok := m.currentRow(); ok {
			page.ToggleRow(row.Key)
		}
	case key.Matches(msg, m.keys.SelectAll):
		page.ToggleAll()
	case key.Matches(msg, m.keys.Edit):
		if row, ok := m.currentRow(); ok {
			form, err := page.EditForm(row.Key)
			if err != nil {
				m.notifyErr(err)
				break
			}
			m.modal = newFormModal(m.ctx, page, form)
		}
	case key.Matches(msg, m.keys.New):
		form, err := page.CreateForm()
		if err != nil {
			m.notifyErr(err)
			break
		}
		m.modal = newFormModal(m.ctx, page, form)
	case key.Matches(msg, m.keys.Delete):
		cmd = m.requestDelete(page)
	}

	m.sync()
	return m, cmd
}

// requestDelete stages deletion of the selected rows, or of the cursor row
// when nothing is selected.
func (m *Model) requestDelete(page pages.Lister) tea.Cmd {
	targets := m.view.SelectedKeys
	if len(targets) == 0 {
		if row, ok := m.currentRow(); ok {
			targets = []string{row.Key}
		}
	}
	if err := page.RequestDelete(targets); err != nil {
		m.notifyErr(err)
		return nil
	}
	dialog := newConfirmModal(m.ctx, page)
	m.modal = dialog
	return dialog.Init()
}

// updateModal forwards msg to the open modal and closes it when asked.
func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = next
	}
	m.sync()
	return m, cmd
}

// switchTab activates page i, wrapping around, and fetches it the first
// time it is shown.
func (m *Model) switchTab(i int) tea.Cmd {
	n := len(m.pages)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	if i == m.active {
		return nil
	}
	m.active = i
	m.cursor = 0
	m.column = 0
	m.mode = modeBrowse
	m.searchInput.Blur()
	page := m.page()
	m.searchInput.SetValue(page.View().Term)
	m.hub.setActive(page)
	m.savePrefs()
	if !m.loaded[i] {
		return m.refresh()
	}
	return nil
}

func (m *Model) refresh() tea.Cmd {
	page := m.page()
	if page == nil {
		return nil
	}
	m.loaded[m.active] = true
	m.pending++
	return refreshCmd(m.ctx, page)
}

// sync re-reads the active page and collects notifications from every page.
func (m *Model) sync() {
	page := m.page()
	if page == nil {
		return
	}
	m.view = page.View()
	if m.cursor >= len(m.view.Rows) {
		m.cursor = len(m.view.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	for _, p := range m.pages {
		if t, ok := p.TakeToast(); ok && (!m.hasToast || !t.At.Before(m.toast.At)) {
			m.toast, m.hasToast = t, true
		}
	}
}

func (m *Model) notify(level pages.ToastLevel, text string) {
	m.toast = pages.Toast{Level: level, Text: text, At: time.Now()}
	m.hasToast = true
}

func (m *Model) notifyErr(err error) {
	level := pages.ToastError
	if errors.Is(err, pages.ErrLoading) || errors.Is(err, pages.ErrNothingSelected) {
		level = pages.ToastInfo
	}
	m.notify(level, err.Error())
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name}
	if page := m.page(); page != nil {
		p.LastTab = page.Name()
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

func (m Model) page() pages.Lister {
	if m.active < 0 || m.active >= len(m.pages) {
		return nil
	}
	return m.pages[m.active]
}

func (m Model) currentRow() (pages.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return pages.Row{}, false
	}
	return m.view.Rows[m.cursor], true
}

func (m Model) loading() bool {
	return m.pending > 0 || m.view.Phase == state.Loading
}

// renderMain renders header, command bar, table and status line.
func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		m.renderTable(max(m.height-3, 3)),
		m.renderStatusLine(),
	)
}

// Messages

type clockMsg time.Time

// refreshMsg asks the model to re-read page state after background work.
type refreshMsg struct{}

type fetchedMsg struct {
	page string
	err  error
}

// Commands

func clockCmd() tea.Cmd {
	return tea.Tick(ClockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func refreshCmd(ctx context.Context, page pages.Lister) tea.Cmd {
	return func() tea.Msg {
		return fetchedMsg{page: page.Name(), err: page.Refresh(ctx)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if len(opts.Pages) == 0 {
		return fmt.Errorf("ui requires at least one page")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	if opts.Hub == nil {
		opts.Hub = NewHub()
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	opts.Hub.attach(p)
	defer opts.Hub.attach(nil)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
