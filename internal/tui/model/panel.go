package model

import (
	"assistpanel/internal/features"
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/transition"
	"assistpanel/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

const panelSubsystem = "Panel"

// Resolve computes the active tab for this update cycle and publishes the
// resulting snapshot. Leaving a tab drops unit focus.
func (m *Model) Resolve() panel.TabID {
	prev := m.Active
	m.Active = m.Tabs.Resolve(m.Mode)
	if prev != "" && prev != m.Active && m.UnitFocused {
		m.Dispatcher.Dispatch(prev).Blur()
		m.UnitFocused = false
	}
	m.publish()
	return m.Active
}

func (m *Model) publish() {
	if m.Store != nil {
		m.Store.Publish(m.Snapshot())
	}
}

// SetProps applies a new set of host props. The mode is fixed at mount, so
// a different Embedded value is ignored.
func (m *Model) SetProps(p Props) tea.Cmd {
	if p.Embedded != m.Props.Embedded {
		logging.Warn(panelSubsystem, "ignoring embedded=%t: mode is fixed to %s for this mount", p.Embedded, m.Mode)
		p.Embedded = m.Props.Embedded
	}
	m.Tabs.SetExternal(p.ActiveTab)

	var cmd tea.Cmd
	if m.Mode == panel.ModeFloating {
		cmd = m.startTransition(m.Visibility.SyncProp(p.IsOpen))
	}
	m.Props = p
	m.Resolve()
	return cmd
}

// SelectTab records a user selection. Tabs outside the mode cannot be
// selected; while the host pins a tab the selection is remembered but has
// no visible effect.
func (m *Model) SelectTab(id panel.TabID) {
	if !panel.IsVisible(m.Mode, id) {
		logging.Debug(panelSubsystem, "tab %q is not selectable in %s mode", id, m.Mode)
		return
	}
	if !m.Tabs.Select(id) {
		logging.Debug(panelSubsystem, "selection %q deferred, host pins %q", id, m.Tabs.External())
	}
	m.Resolve()
}

// RequestClose handles a close gesture. Only floating panels close, and
// OnClose fires once per gesture on an open panel.
func (m *Model) RequestClose(src CloseSource) tea.Cmd {
	if !m.Mode.Closable() {
		logging.Debug(panelSubsystem, "close from %s ignored in %s mode", src, m.Mode)
		return nil
	}
	if !m.Visibility.RequestClose() {
		return nil
	}
	logging.Debug(panelSubsystem, "closing panel (source: %s)", src)
	if m.Props.OnClose != nil {
		m.Props.OnClose()
	}
	cmd := m.startTransition(panel.ChangeClosed)
	m.publish()
	return cmd
}

func (m *Model) startTransition(change panel.Change) tea.Cmd {
	seq := m.Visibility.Seq()
	switch change {
	case panel.ChangeOpened:
		m.Direction = transition.Enter
		m.Progress = 0
		return m.Transition.Begin(transition.Enter, seq)
	case panel.ChangeClosed:
		m.Direction = transition.Exit
		m.Progress = 0
		m.BlurUnit()
		m.Overlay = OverlayNone
		closing := func() tea.Msg { return ClosingMsg{Seq: seq} }
		return tea.Batch(closing, m.Transition.Begin(transition.Exit, seq))
	}
	return nil
}

// HandleFrame advances the running transition. Frames of a superseded
// transition are dropped.
func (m *Model) HandleFrame(f transition.FrameMsg) tea.Cmd {
	if f.Seq != m.Visibility.Seq() || m.Visibility.Phase() == panel.PhaseIdle {
		return nil
	}
	m.Direction = f.Direction
	m.Progress = f.Progress
	if !f.Done {
		return m.Transition.Next(f)
	}
	if !m.Visibility.FinishTransition(f.Seq) {
		return nil
	}
	m.Progress = 1
	m.publish()
	if f.Direction == transition.Exit {
		seq := f.Seq
		return func() tea.Msg { return UnmountedMsg{Seq: seq} }
	}
	return nil
}

// FocusUnit routes keys to the active unit.
func (m *Model) FocusUnit() tea.Cmd {
	m.UnitFocused = true
	return m.ActiveUnit().Focus()
}

// BlurUnit returns keys to the panel.
func (m *Model) BlurUnit() {
	if m.UnitFocused {
		m.ActiveUnit().Blur()
		m.UnitFocused = false
	}
}

// HandleEscape unwinds one level: overlay, then unit state, then unit
// focus, then the panel itself.
func (m *Model) HandleEscape() tea.Cmd {
	if m.Overlay != OverlayNone {
		m.Overlay = OverlayNone
		return nil
	}
	if m.UnitFocused {
		if h, ok := m.ActiveUnit().(features.EscapeHandler); ok {
			if consumed, cmd := h.HandleEscape(); consumed {
				return cmd
			}
		}
		m.BlurUnit()
		return nil
	}
	return m.RequestClose(CloseFromKey)
}

// Mounted reports whether the panel is drawn at all.
func (m *Model) Mounted() bool {
	return m.Mode == panel.ModeEmbedded || m.Visibility.Mounted()
}
