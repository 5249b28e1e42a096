package model

import (
	"time"

	"assistpanel/internal/features"
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/transition"
	"assistpanel/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Props is the construction contract of the panel. The host owns every
// field and passes a fresh copy whenever one changes.
type Props struct {
	IsOpen  bool
	OnClose func()
	// ActiveTab pins the active tab when non-empty.
	ActiveTab panel.TabID
	Embedded  bool
	Context   *panel.ContextPayload
	IsOnline  bool
}

// Overlay is a transient layer drawn above the panel body.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayLog
)

func (o Overlay) String() string {
	switch o {
	case OverlayHelp:
		return "help"
	case OverlayLog:
		return "log"
	default:
		return "none"
	}
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Constants for UI
const (
	MaxActivityLogLines = 1000
	StatusMessageTTL    = 3 * time.Second
)

// KeyMap defines the key bindings handled by the panel.
type KeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	JumpTab   key.Binding
	Focus     key.Binding
	Esc       key.Binding
	Close     key.Binding
	Help      key.Binding
	ToggleLog key.Binding
	CopyLogs  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.JumpTab, k.Focus, k.Esc, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab},
		{k.Focus, k.Esc, k.Close},
		{k.Help, k.ToggleLog, k.CopyLogs},
	}
}

// HostKeyMap holds the lesson viewer's own keys. They act on the host props,
// not on the panel.
type HostKeyMap struct {
	TogglePanel  key.Binding
	PinTab       key.Binding
	ReleaseTab   key.Binding
	ToggleOnline key.Binding
	Quit         key.Binding
}

// ShortHelp implements help.KeyMap.
func (k HostKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePanel, k.PinTab, k.ReleaseTab, k.ToggleOnline, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k HostKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePanel, k.PinTab, k.ReleaseTab},
		{k.ToggleOnline, k.Quit},
	}
}

// Model is the state of one mounted assistant panel.
type Model struct {
	Width  int
	Height int

	// Props as last received from the host.
	Props Props
	// Mode is decided at mount and never changes.
	Mode panel.Mode

	Tabs       panel.TabState
	Active     panel.TabID
	Visibility panel.Visibility

	Dispatcher *features.Dispatcher
	Transition transition.Transitioner
	// Progress of the running transition, 1 when idle.
	Progress  float64
	Direction transition.Direction

	UnitFocused bool
	Overlay     Overlay
	Settings    features.Settings

	Keys      KeyMap
	HostKeys  HostKeyMap
	Help      help.Model
	DebugMode bool

	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	// Logging
	LogChannel <-chan logging.LogEntry

	featureOpts *features.Options

	// Store receives a snapshot after every resolution, may be nil.
	Store *panel.StateStore
}

// UnitProps returns what the active feature unit receives.
func (m *Model) UnitProps() features.Props {
	return features.Props{IsOnline: m.Props.IsOnline, Context: m.Props.Context}
}

// ActiveUnit returns the feature unit of the resolved tab.
func (m *Model) ActiveUnit() features.Unit {
	return m.Dispatcher.Dispatch(m.Active)
}

// VisibleTabs returns the tabs of the mounted mode.
func (m *Model) VisibleTabs() []panel.TabDescriptor {
	return panel.VisibleTabs(m.Mode)
}

// Snapshot describes the panel for observers outside the UI loop.
func (m *Model) Snapshot() panel.State {
	return panel.State{
		ActiveTab:  m.Active,
		IsOpen:     m.Visibility.Open(),
		Mode:       m.Mode,
		Controlled: m.Tabs.Controlled(),
		Phase:      m.Visibility.Phase(),
	}
}

// SetStatusMessage updates the status bar message
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// ClearStatusMessage drops the status bar message.
func (m *Model) ClearStatusMessage() {
	m.StatusBarMessage = ""
	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
		m.StatusBarClearCancel = nil
	}
}
