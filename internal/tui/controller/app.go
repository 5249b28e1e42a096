package controller

import (
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/model"
	"assistpanel/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

// HostState is what the lesson viewer owns and hands to the panel as props.
type HostState struct {
	Open     bool
	Tab      panel.TabID
	Embedded bool
	Context  *panel.ContextPayload
	Online   bool
}

// Props builds the panel props for the current host state. OnClose flips
// the host's own flag, as a web host's state setter would.
func (h *HostState) Props() model.Props {
	return model.Props{
		IsOpen:    h.Open,
		OnClose:   func() { h.Open = false },
		ActiveTab: h.Tab,
		Embedded:  h.Embedded,
		Context:   h.Context,
		IsOnline:  h.Online,
	}
}

// AppModel wraps the host shell and the mounted panel
type AppModel struct {
	host     *HostState
	model    *model.Model
	width    int
	height   int
	quitting bool
}

// NewAppModel creates a new app wrapper
func NewAppModel(host *HostState, m *model.Model) AppModel {
	return AppModel{host: host, model: m}
}

// Host exposes the host state, mainly for tests.
func (a AppModel) Host() *HostState { return a.host }

// Panel exposes the mounted panel, mainly for tests.
func (a AppModel) Panel() *model.Model { return a.model }

// Init implements tea.Model
func (a AppModel) Init() tea.Cmd {
	return a.model.Init()
}

// Update implements tea.Model
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		return a, nil
	}

	var cmds []tea.Cmd
	// Props are re-read at the start of every cycle, and again after the
	// handler ran so host changes made by callbacks land in the same cycle.
	cmds = append(cmds, a.model.SetProps(a.host.Props()))
	quit, cmd := mainControllerDispatch(a.host, a.model, msg)
	cmds = append(cmds, cmd, a.model.SetProps(a.host.Props()))
	if quit {
		a.quitting = true
		cmds = append(cmds, tea.Quit)
	}
	return a, tea.Batch(cmds...)
}

// View implements tea.Model
func (a AppModel) View() string {
	if a.quitting {
		return ""
	}
	return view.Render(view.Screen{
		Width:     a.width,
		Height:    a.height,
		Header:    view.RenderHostHeader(a.host.Context, a.width),
		Body:      view.RenderLesson(a.host.Context),
		StatusBar: view.RenderHostStatusBar(a.host.Open, a.host.Tab, a.host.Online, a.width),
		Panel:     a.model,
	})
}
