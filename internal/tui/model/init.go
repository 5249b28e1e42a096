package model

import (
	"fmt"

	"assistpanel/internal/features"
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/transition"
	"assistpanel/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultKeyMap returns a KeyMap with the default bindings used by the panel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "jump to tab"),
		),
		Focus: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "use tab"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back / close"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close panel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy log"),
		),
	}
}

// DefaultHostKeyMap returns the lesson viewer bindings.
func DefaultHostKeyMap() HostKeyMap {
	return HostKeyMap{
		TogglePanel: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "panel"),
		),
		PinTab: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "pin"),
		),
		ReleaseTab: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "release"),
		),
		ToggleOnline: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "network"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Option customizes a Model at construction.
type Option func(*Model)

// WithDispatcher replaces the default feature units.
func WithDispatcher(d *features.Dispatcher) Option {
	return func(m *Model) { m.Dispatcher = d }
}

// WithTransition replaces the default slide transition.
func WithTransition(t transition.Transitioner) Option {
	return func(m *Model) { m.Transition = t }
}

// WithStore publishes every resolved state to s.
func WithStore(s *panel.StateStore) Option {
	return func(m *Model) { m.Store = s }
}

// WithLogChannel feeds the activity log from ch.
func WithLogChannel(ch <-chan logging.LogEntry) Option {
	return func(m *Model) { m.LogChannel = ch }
}

// WithDebug enables debug logging and debug lines in the activity log.
func WithDebug(debug bool) Option {
	return func(m *Model) { m.DebugMode = debug }
}

// WithSettings sets the initial preferences.
func WithSettings(s features.Settings) Option {
	return func(m *Model) { m.Settings = s }
}

// WithFeatureOptions configures the default feature units. Ignored when
// WithDispatcher is also given.
func WithFeatureOptions(o features.Options) Option {
	return func(m *Model) { m.featureOpts = &o }
}

// New mounts a panel. The mode, the seed of the active tab and the initial
// visibility come from props.
func New(props Props, opts ...Option) (*Model, error) {
	m := &Model{
		Props:       props,
		Mode:        panel.ModeFor(props.Embedded),
		Tabs:        panel.NewTabState(props.ActiveTab),
		Visibility:  panel.NewVisibility(props.IsOpen),
		Transition:  transition.NewSlide(0, 0),
		Progress:    1,
		Keys:        DefaultKeyMap(),
		HostKeys:    DefaultHostKeyMap(),
		Help:        help.New(),
		LogViewport: viewport.New(0, 0),
		ActivityLog: make([]string, 0),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.Dispatcher == nil {
		fo := features.Options{Settings: m.Settings}
		if m.featureOpts != nil {
			fo = *m.featureOpts
			fo.Settings = m.Settings
		}
		d, err := features.NewDefaultDispatcher(fo)
		if err != nil {
			return nil, fmt.Errorf("building feature units: %w", err)
		}
		m.Dispatcher = d
	}
	if m.Mode == panel.ModeEmbedded {
		// Embedded panels are always visible.
		m.Visibility = panel.NewVisibility(true)
		m.Transition = transition.None{}
	}
	if m.Visibility.Phase() == panel.PhaseEntering {
		m.Progress = 0
		m.Direction = transition.Enter
	}
	m.Resolve()
	return m, nil
}

// Init starts the feature units, the log listener and the enter transition
// of a panel mounted open.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Dispatcher.Init()}
	if m.LogChannel != nil {
		cmds = append(cmds, ListenForLogEntriesCmd(m.LogChannel))
	}
	if m.Visibility.Phase() == panel.PhaseEntering {
		cmds = append(cmds, m.Transition.Begin(transition.Enter, m.Visibility.Seq()))
	}
	return tea.Batch(cmds...)
}

// ListenForLogEntriesCmd waits for the next log entry.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}
