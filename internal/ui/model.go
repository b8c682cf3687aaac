package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/config"
	"github.com/five82/trawl/internal/finder"
	"github.com/five82/trawl/internal/logging"
	"github.com/five82/trawl/internal/prefs"
)

// Popup layout size in cells, roughly the extension popup's 700px width.
const (
	popupWidth  = 80
	popupHeight = 24
)

// Lines used by the header, the query input, the status line and the
// command bar.
const chromeLines = 4

// entryLines is the height of a bookmark or history row: title then URL.
const entryLines = 2

// Options configures the UI.
type Options struct {
	Context context.Context
	Engine  *finder.Engine
	// Events delivers store changes. Nil disables live reload.
	Events    <-chan browser.Source
	Layout    config.Layout
	Overscan  int
	ThemeName string
	LastTab   string
	// PrefsPath is where theme and tab are saved. Empty disables saving.
	PrefsPath string
	Logger    logrus.FieldLogger
	// OpenURL opens a URL in the user's browser. Nil uses browser.OpenURL.
	OpenURL func(ctx context.Context, rawURL string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	engine    *finder.Engine
	events    <-chan browser.Source
	log       logrus.FieldLogger
	openURL   func(context.Context, string) error
	prefsPath string
	layout    config.Layout

	keys    keyMap
	help    help.Model
	theme   Theme
	input   textinput.Model
	spinner spinner.Model

	tabs   []browser.Source
	active int
	query  string

	width    int
	height   int
	ready    bool
	showHelp bool
	// notice is a one-off message such as a failed open.
	notice string

	bookmarks *pane[browser.FlatEntry]
	history   *pane[browser.HistoryEntry]
	cookies   *pane[browser.Cookie]
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	open := opts.OpenURL
	if open == nil {
		open = browser.OpenURL
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	layout := opts.Layout
	if layout == "" {
		layout = config.LayoutFull
	}

	ti := textinput.New()
	ti.Placeholder = "Search bookmarks, history and cookies"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	m := Model{
		ctx:       ctx,
		engine:    opts.Engine,
		events:    opts.Events,
		log:       logging.OrDiscard(opts.Logger).WithField("component", "ui"),
		openURL:   open,
		prefsPath: opts.PrefsPath,
		layout:    layout,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		input:     ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		tabs:      browser.Sources(),
		bookmarks: newPane[browser.FlatEntry](browser.SourceBookmarks, entryLines, opts.Overscan),
		history:   newPane[browser.HistoryEntry](browser.SourceHistory, entryLines, opts.Overscan),
		cookies:   newPane[browser.Cookie](browser.SourceCookies, 1, opts.Overscan),
	}
	m.active = m.tabIndex(opts.LastTab)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.request(m.source(), false),
		m.waitForChange(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.syncAll()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg[browser.FlatEntry]:
		applyResult(m, m.bookmarks, msg.result)
		return m, nil

	case resultMsg[browser.HistoryEntry]:
		applyResult(m, m.history, msg.result)
		return m, nil

	case resultMsg[browser.Cookie]:
		applyResult(m, m.cookies, msg.result)
		return m, nil

	case storeChangedMsg:
		return m.handleStoreChanged(browser.Source(msg))

	case watchClosedMsg:
		m.events = nil
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.notice = "Open failed: " + msg.err.Error()
			m.log.WithField("url", msg.url).Warnf("open url: %v", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Bindings are checked before the
// input sees the key; anything unbound edits the query.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	p := m.pane(m.source())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Clear):
		if m.input.Value() == "" {
			return m.quit()
		}
		m.input.SetValue("")
		return m, m.queryChanged()

	case key.Matches(msg, m.keys.Help) && m.input.Value() == "":
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.engine != nil {
			m.engine.InvalidateAll()
		}
		for _, src := range m.tabs {
			m.pane(src).invalidate()
		}
		m.notice = ""
		return m, m.request(m.source(), true)

	case key.Matches(msg, m.keys.NextTab):
		return m, m.setTab(m.active + 1)
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.setTab(m.active - 1)
	case key.Matches(msg, m.keys.Bookmarks):
		return m, m.setTab(0)
	case key.Matches(msg, m.keys.History):
		return m, m.setTab(1)
	case key.Matches(msg, m.keys.CookiesTab):
		return m, m.setTab(2)

	case key.Matches(msg, m.keys.Up):
		p.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		p.move(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		p.move(-p.page())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		p.move(p.page())
		return m, nil
	case key.Matches(msg, m.keys.Top):
		p.moveTo(0)
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		p.moveTo(p.count() - 1)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.query {
		return m, tea.Batch(cmd, m.queryChanged())
	}
	return m, cmd
}

func (m *Model) queryChanged() tea.Cmd {
	m.query = m.input.Value()
	m.notice = ""
	return m.request(m.source(), false)
}

func (m *Model) setTab(i int) tea.Cmd {
	n := len(m.tabs)
	m.active = ((i % n) + n) % n
	m.notice = ""
	return m.request(m.source(), false)
}

func (m Model) handleStoreChanged(src browser.Source) (tea.Model, tea.Cmd) {
	m.log.WithField("source", src).Debug("store changed")
	if m.engine != nil {
		m.engine.Invalidate(src)
	}
	m.pane(src).invalidate()

	cmds := []tea.Cmd{m.waitForChange()}
	if src == m.source() {
		cmds = append(cmds, m.request(src, true))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) openSelected() tea.Cmd {
	var target string
	switch m.source() {
	case browser.SourceBookmarks:
		if e, ok := m.bookmarks.current(); ok {
			target = e.URL
		}
	case browser.SourceHistory:
		if e, ok := m.history.current(); ok {
			target = e.URL
		}
	}
	if strings.TrimSpace(target) == "" {
		return nil
	}
	ctx, open := m.ctx, m.openURL
	return func() tea.Msg {
		return openedMsg{url: target, err: open(ctx, target)}
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.savePrefs()
	return m, tea.Quit
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastTab: string(m.source())}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warnf("save prefs: %v", err)
	}
}

func (m Model) source() browser.Source { return m.tabs[m.active] }

func (m Model) tabIndex(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, src := range m.tabs {
		if string(src) == name {
			return i
		}
	}
	return 0
}

func (m Model) pane(src browser.Source) tabPane {
	switch src {
	case browser.SourceHistory:
		return m.history
	case browser.SourceCookies:
		return m.cookies
	default:
		return m.bookmarks
	}
}

// size returns the area the UI draws in. The popup layout is a fixed box
// that shrinks only when the terminal is smaller.
func (m Model) size() (width, height int) {
	if m.layout == config.LayoutPopup {
		return min(m.width, popupWidth), min(m.height, popupHeight)
	}
	return m.width, m.height
}

// listHeight is the number of lines available to src's rows.
func (m Model) listHeight(src browser.Source) int {
	_, h := m.size()
	h -= chromeLines
	if src == browser.SourceCookies {
		h-- // column header
	}
	return max(h, 1)
}

func (m Model) syncAll() {
	for _, src := range m.tabs {
		m.pane(src).sync(m.listHeight(src))
	}
}

// Run starts the Bubble Tea program. The full layout takes over the
// terminal; the popup layout renders inline.
func Run(opts Options) error {
	m := New(opts)
	var programOpts []tea.ProgramOption
	if m.layout == config.LayoutFull {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
