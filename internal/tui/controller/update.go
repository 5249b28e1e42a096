package controller

import (
	"assistpanel/internal/features"
	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/model"
	"assistpanel/internal/tui/transition"
	"assistpanel/pkg/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// mainControllerDispatch routes one message to the host or the panel. It
// reports whether the program should quit.
func mainControllerDispatch(h *HostState, m *model.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case spinner.TickMsg, tea.MouseMsg, transition.FrameMsg, model.NewLogEntryMsg:
	default:
		LogDebug(m, controllerDispatchSubsystem, "Received msg: %T", msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyMsg(h, m, msg)

	case tea.MouseMsg:
		return false, handleMouseMsg(m, msg)

	// Host messages, also sent by the MCP control surface.
	case model.SetOpenMsg:
		h.Open = msg.Open
		return false, nil
	case model.SetActiveTabMsg:
		h.Tab = msg.Tab
		return false, nil
	case model.ReleaseTabMsg:
		h.Tab = ""
		return false, nil
	case model.SetContextMsg:
		h.Context = msg.Context
		return false, nil
	case model.SetOnlineMsg:
		h.Online = msg.Online
		return false, nil

	case transition.FrameMsg:
		return false, m.HandleFrame(msg)
	case model.SelectTabMsg:
		m.SelectTab(msg.Tab)
		return false, nil
	case model.CloseRequestMsg:
		return false, m.RequestClose(msg.Source)
	case model.ClosingMsg:
		LogDebug(m, controllerDispatchSubsystem, "panel exiting (seq %d)", msg.Seq)
		return false, nil
	case model.UnmountedMsg:
		LogDebug(m, controllerDispatchSubsystem, "panel unmounted (seq %d)", msg.Seq)
		return false, nil

	case features.StatusMsg:
		mt := model.StatusBarSuccess
		if msg.IsError {
			mt = model.StatusBarError
		}
		return false, m.SetStatusMessage(msg.Text, mt, model.StatusMessageTTL)
	case features.SettingsChangedMsg:
		m.Settings = msg.Settings
		design.Initialize(msg.Settings.DarkMode)
		return false, m.Dispatcher.Broadcast(msg, m.UnitProps())
	case model.ClearStatusBarMsg:
		m.ClearStatusMessage()
		return false, nil

	case model.NewLogEntryMsg:
		if msg.Entry.Level != logging.LevelDebug || m.DebugMode {
			model.AddRawLineToActivityLog(m, model.FormatLogEntry(msg.Entry))
		}
		if m.LogChannel == nil {
			return false, nil
		}
		return false, model.ListenForLogEntriesCmd(m.LogChannel)
	}

	// Everything else belongs to a feature unit: reply timers, spinners,
	// watcher events.
	return false, m.Dispatcher.Broadcast(msg, m.UnitProps())
}
