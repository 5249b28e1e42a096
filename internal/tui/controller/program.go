package controller

import (
	"fmt"

	"assistpanel/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram mounts the panel inside the host shell and returns the Bubble
// Tea program driving both.
func NewProgram(host *HostState, opts ...model.Option) (*tea.Program, error) {
	m, err := model.New(host.Props(), opts...)
	if err != nil {
		return nil, fmt.Errorf("mounting panel: %w", err)
	}
	LogInfo(controllerSubsystem, "panel mounted in %s mode, active tab %s", m.Mode, m.Active)

	app := NewAppModel(host, m)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	return p, nil
}

// Shutdown releases the resources held by the final model returned from
// tea.Program.Run.
func Shutdown(final tea.Model) error {
	app, ok := final.(AppModel)
	if !ok || app.model == nil {
		return nil
	}
	if err := app.model.Dispatcher.Close(); err != nil {
		LogWarn(controllerSubsystem, "closing feature units: %v", err)
		return err
	}
	return nil
}
