package view

import (
	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

func renderHelpOverlay(m *model.Model, width, height int) string {
	m.Help.Width = width
	title := design.HelpTitleStyle.Width(width).Render("Keys")
	body := m.Help.FullHelpView(m.Keys.FullHelp())
	viewer := design.HelpTitleStyle.Width(width).Render(hostTitle)
	hostBody := m.Help.FullHelpView(m.HostKeys.FullHelp())
	hint := design.DimStyle.Render("esc or ? to close")
	return lipgloss.JoinVertical(lipgloss.Left, title, body, "", viewer, hostBody, "", hint)
}

func renderLogOverlay(m *model.Model, width, height int) string {
	title := design.LogPanelTitleStyle.Render("Activity log")
	vpHeight := max(height-lipgloss.Height(title), 1)
	if m.LogViewport.Width != width || m.LogViewport.Height != vpHeight || m.ActivityLogDirty {
		m.LogViewport.Width = width
		m.LogViewport.Height = vpHeight
		m.LogViewport.SetContent(PrepareLogContent(m.ActivityLog, width))
		m.LogViewport.GotoBottom()
		m.ActivityLogDirty = false
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
}
