package controller

import (
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/components"
	"assistpanel/internal/tui/model"
	"assistpanel/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const mouseSubsystem = "Mouse"

// handleMouseMsg turns left clicks on marked zones into panel actions.
func handleMouseMsg(m *model.Model, msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if !m.Visibility.Open() {
		return nil
	}
	for _, id := range clickTargets(m) {
		if z := zone.Get(id); z != nil && z.InBounds(msg) {
			return handleZoneClick(m, id)
		}
	}
	return nil
}

// clickTargets lists the zones the panel reacts to, innermost first.
func clickTargets(m *model.Model) []string {
	ids := []string{components.CloseZoneID}
	for _, d := range m.VisibleTabs() {
		ids = append(ids, components.TabZoneID(d.ID))
	}
	if m.Mode.HasOverlay() {
		ids = append(ids, view.ScrimZoneID)
	}
	return ids
}

// handleZoneClick performs the action bound to a zone.
func handleZoneClick(m *model.Model, id string) tea.Cmd {
	LogDebug(m, mouseSubsystem, "click on %s", id)
	switch {
	case id == components.CloseZoneID:
		return m.RequestClose(model.CloseFromButton)
	case id == view.ScrimZoneID:
		return m.RequestClose(model.CloseFromOverlay)
	case strings.HasPrefix(id, components.TabZonePrefix):
		m.SelectTab(panel.TabID(strings.TrimPrefix(id, components.TabZonePrefix)))
	}
	return nil
}
