package controller

import (
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const keySubsystem = "KeyHandler"

var writeClipboard = clipboard.WriteAll

// handleKeyMsg routes a key press. A focused unit receives everything but
// ctrl+c and esc; otherwise host keys come first, then panel keys.
func handleKeyMsg(h *HostState, m *model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, nil
	}
	interactive := m.Visibility.Open()

	if interactive && m.UnitFocused {
		if key.Matches(msg, m.Keys.Esc) {
			return false, m.HandleEscape()
		}
		return false, m.ActiveUnit().Update(msg, m.UnitProps())
	}
	if interactive && m.Overlay != model.OverlayNone {
		return false, handleOverlayKey(m, msg)
	}

	switch {
	case key.Matches(msg, m.HostKeys.Quit):
		return true, nil
	case key.Matches(msg, m.HostKeys.TogglePanel):
		h.Open = !h.Open
		LogDebug(m, keySubsystem, "host sets isOpen=%t", h.Open)
		return false, nil
	case key.Matches(msg, m.HostKeys.PinTab):
		h.Tab = panel.TabKnowledge
		LogDebug(m, keySubsystem, "host pins tab %s", h.Tab)
		return false, nil
	case key.Matches(msg, m.HostKeys.ReleaseTab):
		h.Tab = ""
		LogDebug(m, keySubsystem, "host releases tab control")
		return false, nil
	case key.Matches(msg, m.HostKeys.ToggleOnline):
		h.Online = !h.Online
		LogDebug(m, keySubsystem, "host sets isOnline=%t", h.Online)
		return false, nil
	}

	if !interactive {
		return false, nil
	}
	return false, handlePanelKey(m, msg)
}

// handlePanelKey processes panel navigation while no unit has focus.
func handlePanelKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.NextTab):
		m.SelectTab(panel.NextVisible(m.Mode, m.Active, 1))
	case key.Matches(msg, m.Keys.PrevTab):
		m.SelectTab(panel.NextVisible(m.Mode, m.Active, -1))
	case key.Matches(msg, m.Keys.JumpTab):
		pos := int(msg.String()[0] - '1')
		if id, ok := panel.TabAt(m.Mode, pos); ok {
			m.SelectTab(id)
		}
	case key.Matches(msg, m.Keys.Focus):
		return m.FocusUnit()
	case key.Matches(msg, m.Keys.Esc):
		return m.HandleEscape()
	case key.Matches(msg, m.Keys.Close):
		return m.RequestClose(model.CloseFromKey)
	case key.Matches(msg, m.Keys.Help):
		m.Overlay = model.OverlayHelp
	case key.Matches(msg, m.Keys.ToggleLog):
		m.Overlay = model.OverlayLog
		m.ActivityLogDirty = true
	}
	return nil
}

func handleOverlayKey(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.Keys.Esc) {
		m.Overlay = model.OverlayNone
		return nil
	}

	switch m.Overlay {
	case model.OverlayHelp:
		if key.Matches(msg, m.Keys.Help) {
			m.Overlay = model.OverlayNone
		}
	case model.OverlayLog:
		switch {
		case key.Matches(msg, m.Keys.ToggleLog):
			m.Overlay = model.OverlayNone
		case key.Matches(msg, m.Keys.CopyLogs):
			if err := writeClipboard(strings.Join(m.ActivityLog, "\n")); err != nil {
				LogError(keySubsystem, err, "Failed to copy logs")
				return m.SetStatusMessage("Copy logs failed", model.StatusBarError, model.StatusMessageTTL)
			}
			return m.SetStatusMessage("Logs copied to clipboard", model.StatusBarSuccess, model.StatusMessageTTL)
		default:
			var cmd tea.Cmd
			m.LogViewport, cmd = m.LogViewport.Update(msg)
			return cmd
		}
	}
	return nil
}
