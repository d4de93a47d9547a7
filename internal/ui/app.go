package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/prefs"
	"github.com/five82/forkify/internal/state"
)

// Focus identifies the pane that receives navigation keys.
type Focus int

const (
	FocusResults Focus = iota
	FocusRecipe
	FocusBookmarks
	FocusSearch
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Dispatcher *event.Dispatcher
	State      *state.State
	Logger     *zap.Logger
	ThemeName  string
	PrefsPath  string
	Location   string // initial "#id", loaded on start
	ModalClose time.Duration
	CanUpload  bool

	ShowBookmarks bool // start with the bookmarks panel open
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	dispatcher *event.Dispatcher
	state      *state.State
	logger     *zap.Logger
	prefsPath  string
	modalClose time.Duration
	canUpload  bool
	keys       keyMap

	// UI state
	theme     Theme
	width     int
	height    int
	ready     bool
	focus     Focus
	prevFocus Focus
	location  string

	// Data state
	snapshot state.Snapshot

	// Panes
	searchInput      textinput.Model
	selectedResult   int
	selectedBookmark int
	showBookmarks    bool
	recipeViewport   viewport.Model
	shownRecipeID    string

	// Async state, keyed by region
	spinner spinner.Model
	loading map[region]bool
	errors  map[region]string

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	modalClose := opts.ModalClose
	if modalClose <= 0 {
		modalClose = DefaultModalClose
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search over 1,000,000 recipes..."
	search.CharLimit = 80

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		dispatcher:    opts.Dispatcher,
		state:         opts.State,
		logger:        logger,
		prefsPath:     prefsPath,
		modalClose:    modalClose,
		canUpload:     opts.CanUpload,
		keys:          DefaultKeyMap(),
		theme:         GetTheme(themeName),
		focus:         FocusResults,
		showBookmarks: opts.ShowBookmarks,
		location:      normalizeLocation(opts.Location),
		searchInput:   search,
		spinner:       spin,
		loading:       make(map[region]bool),
		errors:        make(map[region]string),
	}
	if m.state != nil {
		m.snapshot = m.state.Snapshot()
	}
	if locationID(m.location) != "" {
		m.loading[regionRecipe] = true
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	id := locationID(m.location)
	if id == "" {
		return nil
	}
	return tea.Batch(m.dispatch(event.RecipeRequested{ID: id}), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitUploadMsg:
		return m, m.start(event.RecipeUploaded{Upload: msg.upload})

	case dispatchedMsg:
		m.handleDispatched(msg)
		if m.modal != nil && msg.kind == event.KindRecipeUploaded {
			return m.updateModal(msg)
		}
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.focus == FocusSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
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

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		return m.updateModal(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	delete(m.errors, regionStatus)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.focusSearch()

	case key.Matches(msg, m.keys.Bookmarks):
		m.toggleBookmarksPanel()
		return m, nil

	case key.Matches(msg, m.keys.AddRecipe):
		return m.openUploadForm()

	case key.Matches(msg, m.keys.Tab):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.showBookmarks {
			m.toggleBookmarksPanel()
		}
		return m, nil

	case key.Matches(msg, m.keys.MoreServings):
		return m, m.changeServings(1)

	case key.Matches(msg, m.keys.FewerServings):
		return m, m.changeServings(-1)

	case key.Matches(msg, m.keys.ToggleBookmark):
		return m, m.toggleBookmark()
	}

	switch m.focus {
	case FocusResults:
		return m.handleResultsKey(msg)
	case FocusBookmarks:
		return m.handleBookmarksKey(msg)
	case FocusRecipe:
		return m.handleRecipeKey(msg)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.blurSearch()
		return m, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.SetValue("")
		m.blurSearch()
		if query == "" {
			return m, nil
		}
		m.showBookmarks = false
		m.focus = FocusResults
		m.selectedResult = 0
		return m, m.start(event.SearchSubmitted{Query: query})
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) focusSearch() tea.Cmd {
	if m.focus != FocusSearch {
		m.prevFocus = m.focus
	}
	m.focus = FocusSearch
	return m.searchInput.Focus()
}

func (m *Model) blurSearch() {
	m.searchInput.Blur()
	m.focus = m.prevFocus
	if m.focus == FocusSearch {
		m.focus = FocusResults
	}
}

// cycleFocus moves focus between the list column and the recipe pane.
func (m *Model) cycleFocus() {
	switch m.focus {
	case FocusResults, FocusBookmarks:
		m.focus = FocusRecipe
	default:
		m.focus = m.listFocus()
	}
}

func (m *Model) listFocus() Focus {
	if m.showBookmarks {
		return FocusBookmarks
	}
	return FocusResults
}

func (m *Model) toggleBookmarksPanel() {
	m.showBookmarks = !m.showBookmarks
	switch {
	case m.showBookmarks:
		m.focus = FocusBookmarks
		m.selectedBookmark = clampIndex(m.selectedBookmark, len(m.snapshot.Bookmarks))
	case m.focus == FocusBookmarks:
		m.focus = FocusResults
	}
	open := m.showBookmarks
	m.savePrefs(func(p *prefs.Prefs) { p.BookmarksOpen = open })
}

func (m *Model) savePrefs(change func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, change); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath != "" {
		name := m.theme.Name
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = name })
	}
	m.refreshRecipeViewport()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	sz := layout(width, height)
	if !m.ready {
		m.recipeViewport = viewport.New(sz.detailWidth, sz.height)
		m.ready = true
	} else {
		m.recipeViewport.Width = sz.detailWidth
		m.recipeViewport.Height = sz.height
	}
	m.searchInput.Width = max(10, sz.listWidth-4)
	m.refreshRecipeViewport()
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

func (m Model) openUploadForm() (tea.Model, tea.Cmd) {
	if !m.canUpload {
		m.errors[regionStatus] = "Uploading needs an api_key in config.toml"
		return m, nil
	}
	form := newUploadForm(m.modalClose)
	m.modal = form
	return m, form.Init()
}

func (m Model) anyLoading() bool {
	for _, busy := range m.loading {
		if busy {
			return true
		}
	}
	return false
}

// renderMain renders the header, the command bar and the panes.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderPanes())

	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{styles.Logo.Render("forkify")}
	if m.location != "" {
		parts = append(parts, styles.FaintText.Render(m.location))
	}
	parts = append(parts, styles.BookmarkMarker.Render("★ "+strconv.Itoa(len(m.snapshot.Bookmarks))))
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.MutedText.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05")))
	}
	return styles.Header.Width(max(m.width, 1)).Render(strings.Join(parts, "  "))
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	if m.focus == FocusSearch {
		return m.searchInput.View()
	}
	if msg := m.errors[regionStatus]; msg != "" {
		return styles.Footer.Render(styles.DangerText.Render(msg))
	}
	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, styles.AccentText.Render(h.Key)+" "+h.Desc)
	}
	return styles.Footer.Render(strings.Join(hints, "  "))
}

func (m Model) renderPanes() string {
	sz := layout(m.width, m.height)
	list := m.theme.Pane(m.focus == FocusResults || m.focus == FocusBookmarks || m.focus == FocusSearch, sz.listWidth, sz.height)
	detail := m.theme.Pane(m.focus == FocusRecipe, sz.detailWidth, sz.height)

	var left string
	if m.showBookmarks {
		left = list.Render(m.renderBookmarks(sz.listWidth, sz.height))
	} else {
		left = list.Render(m.renderResults(sz.listWidth, sz.height))
	}
	right := detail.Render(m.renderRecipe(sz.detailWidth, sz.height))

	if sz.compact {
		if m.focus == FocusRecipe {
			return right
		}
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if err != nil && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
