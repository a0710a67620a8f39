// Package state holds the bubbletea model of the list screen.
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/cristianoliveira/listkit/internal/logging"
)

const defaultViewportWidth = 80

// messageClearDuration is how long a status message stays on screen.
var messageClearDuration = 5 * time.Second

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeColumns
	modeStatusPick
	modeConfirm
)

type actionKind int

const (
	actionDelete actionKind = iota
	actionSetStatus
)

// pendingAction is a bulk action waiting for confirmation.
type pendingAction struct {
	kind   actionKind
	status domain.Status
	count  int
}

// Options wires a Model to its collaborators.
type Options struct {
	Context    context.Context
	Collection domain.Collection
	Repo       domain.Repository
	Store      app.SettingsStore
}

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	collection   domain.Collection
	repo         domain.Repository
	store        app.SettingsStore
	view         *app.RecordView
	coordinator  *listview.Coordinator[string]
	confirmBulk  bool
	selectAllCap int

	keys    keyMap
	help    help.Model
	search  textinput.Model
	spinner spinner.Model

	mode         mode
	cursor       int
	pickerCursor int
	pending      pendingAction
	busy         string
	hasMore      bool
	width        int

	errorHandler *errors.TUIHandler
	logger       logging.Logger
}

// NewModel creates the model and loads the first page.
func NewModel(opts Options) (*Model, error) {
	if opts.Repo == nil {
		return nil, fmt.Errorf("tui: repository is nil")
	}
	if opts.Store == nil {
		opts.Store = app.FileSettings{}
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	// Canceled on quit so background loads and bulk actions stop.
	ctx, cancel := context.WithCancel(parent)

	stored := settingsForView(opts.Store, opts.Collection)
	view, err := app.NewView(opts.Repo, opts.Collection, app.ViewOptionsFromConfig(opts.Collection), stored)
	if err != nil {
		cancel()
		return nil, err
	}
	for key, value := range stored.Filters {
		view.SetFilter(key, value)
	}
	if err := view.Refresh(ctx); err != nil {
		cancel()
		return nil, err
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"

	m := &Model{
		ctx:          ctx,
		cancel:       cancel,
		collection:   opts.Collection,
		repo:         opts.Repo,
		store:        opts.Store,
		view:         view,
		coordinator:  app.NewCoordinator(),
		confirmBulk:  config.GetBool("confirm_bulk", true),
		selectAllCap: config.GetInt("select_all_cap", listview.DefaultSelectAllCap),
		keys:         defaultKeyMap(),
		help:         help.New(),
		search:       search,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		errorHandler: errors.NewTUIHandler(nil),
		logger:       logging.With("component", "tui", "view", string(opts.Collection)),
	}
	return m, nil
}

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case rowsLoadedMsg:
		return m, m.handleRowsLoaded(msg)
	case bulkDoneMsg:
		return m, m.handleBulkDone(msg)
	case matchingIDsMsg:
		return m, m.handleMatchingIDs(msg)
	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case clearMessageMsg:
		if latest, ok := m.errorHandler.GetLatest(); ok && latest.Timestamp.Equal(msg.stamp) {
			m.errorHandler.Clear()
		}
		return m, nil
	case saveSettingsSuccessMsg:
		return m, nil
	case saveSettingsFailedMsg:
		return m, m.notify(m.errorHandler.Error, fmt.Sprintf("failed to save settings: %v", msg.err))
	}
	return m, nil
}

// ListView returns the list view backing the model.
func (m *Model) ListView() *app.RecordView {
	return m.view
}

// notify reports text through fn and schedules its removal.
func (m *Model) notify(fn func(string), text string) tea.Cmd {
	fn(text)
	latest, ok := m.errorHandler.GetLatest()
	if !ok {
		return nil
	}
	stamp := latest.Timestamp
	return tea.Tick(messageClearDuration, func(time.Time) tea.Msg {
		return clearMessageMsg{stamp: stamp}
	})
}

// clampCursor keeps the cursor on the current page.
func (m *Model) clampCursor() {
	n := len(m.view.PageRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
