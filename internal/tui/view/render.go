package view

import (
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/components"
	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/model"
	"assistpanel/internal/tui/transition"
	"assistpanel/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// ScrimZoneID is the mouse zone of the dimmed area beside a floating panel.
const ScrimZoneID = "panel-scrim"

const panelTitle = "Assistant"

func init() {
	zone.NewGlobal()
}

// Screen is everything the host shell puts on the terminal.
type Screen struct {
	Width     int
	Height    int
	Header    string
	Body      string
	StatusBar string
	Panel     *model.Model
}

// Render composes the host screen with the panel according to its mode.
func Render(s Screen) string {
	if s.Width <= 0 || s.Height <= 0 {
		return "Initializing... (waiting for window size)"
	}
	headerHeight, statusHeight := 0, 0
	if s.Header != "" {
		headerHeight = lipgloss.Height(s.Header)
	}
	if s.StatusBar != "" {
		statusHeight = lipgloss.Height(s.StatusBar)
	}
	layout := components.NewLayout(s.Width, s.Height)
	contentHeight := layout.CalculateContentArea(headerHeight, statusHeight)

	var content string
	switch {
	case s.Panel == nil || !s.Panel.Mounted():
		content = utils.FitBlock(s.Body, s.Width, contentHeight)
	case s.Panel.Mode == panel.ModeEmbedded:
		content = renderEmbedded(s, layout, contentHeight)
	default:
		content = renderFloating(s, layout, contentHeight)
	}

	parts := []string{}
	if s.Header != "" {
		parts = append(parts, s.Header)
	}
	parts = append(parts, content)
	if s.StatusBar != "" {
		parts = append(parts, s.StatusBar)
	}
	return zone.Scan(components.JoinVertical(parts...))
}

// renderEmbedded places the panel inline, to the right of the host body.
func renderEmbedded(s Screen, layout *components.Layout, height int) string {
	hostWidth, panelWidth := layout.SplitVertical(0.55)
	body := lipgloss.NewStyle().Width(hostWidth).Render(utils.FitBlock(s.Body, hostWidth-1, height))
	return components.JoinHorizontal(body, RenderPanel(s.Panel, panelWidth, height))
}

// renderFloating dims the host body and slides the panel in from the right
// edge.
func renderFloating(s Screen, layout *components.Layout, height int) string {
	_, panelWidth := layout.FloatingSplit()
	m := s.Panel

	visible := panelWidth
	if m.Visibility.Phase() != panel.PhaseIdle {
		visible = panelWidth - transition.Offset(m.Direction, m.Progress, panelWidth)
	}
	scrimWidth := s.Width - visible

	scrimLines := strings.Split(utils.FitBlock(s.Body, scrimWidth, height), "\n")
	for i, l := range scrimLines {
		scrimLines[i] = design.ScrimStyle.Render(l + strings.Repeat(" ", max(scrimWidth-lipgloss.Width(l), 0)))
	}
	scrim := zone.Mark(ScrimZoneID, strings.Join(scrimLines, "\n"))
	if visible <= 0 {
		return scrim
	}

	panelLines := strings.Split(RenderPanel(m, panelWidth, height), "\n")
	for i, l := range panelLines {
		panelLines[i] = utils.TruncateString(l, visible)
	}
	return components.JoinHorizontal(scrim, strings.Join(panelLines, "\n"))
}

// RenderPanel draws the panel alone at the given size. It returns an empty
// string when the panel is not mounted.
func RenderPanel(m *model.Model, width, height int) string {
	if !m.Mounted() {
		return ""
	}
	pt := components.PanelTypeFloating
	if m.Mode == panel.ModeEmbedded {
		pt = components.PanelTypeEmbedded
	}
	frame := components.NewPanel(pt).
		WithDimensions(width, height).
		SetFocused(m.UnitFocused)

	innerWidth, _ := frame.InnerSize()

	strip := components.NewTabStrip(m.VisibleTabs()).
		WithActive(m.Active).
		WithWidth(innerWidth).
		WithCompact(m.Settings.CompactTabs).
		SetFocused(m.UnitFocused)
	strip.Numbers = true

	frame.WithHeader(renderPanelHeader(m, innerWidth)).
		WithTabs(strip.Render()).
		WithFooter(renderPanelFooter(m, innerWidth))

	bodyWidth, bodyHeight := frame.InnerSize()
	var body string
	switch m.Overlay {
	case model.OverlayHelp:
		body = renderHelpOverlay(m, bodyWidth, bodyHeight)
	case model.OverlayLog:
		body = renderLogOverlay(m, bodyWidth, bodyHeight)
	default:
		body = m.Dispatcher.Render(m.Active, m.UnitProps(), bodyWidth, bodyHeight)
	}
	return frame.WithContent(body).Render()
}

func renderPanelHeader(m *model.Model, width int) string {
	var right []string
	if m.Tabs.Controlled() {
		right = append(right, components.NewStatusIndicator(components.StatusTypePinned).IconOnly().Render())
	}
	if m.Props.IsOnline {
		right = append(right, components.NewStatusIndicator(components.StatusTypeOnline).IconOnly().Render())
	} else {
		right = append(right, components.NewStatusIndicator(components.StatusTypeOffline).Render())
	}

	h := components.NewHeader(panelTitle).
		WithWidth(width).
		WithClose(m.Mode.Closable()).
		WithRightContent(strings.Join(right, " "))

	d, _ := panel.Lookup(m.Active)
	if m.Mode == panel.ModeFloating {
		desc := d.Description
		if lesson := m.Props.Context.Lesson(); lesson != nil && lesson.Title != "" {
			desc += " · " + lesson.Title
		}
		h.WithDescription(desc)
	} else if m.Settings.ShowDescriptions {
		h.WithDescription(d.Description)
	}
	return h.Render()
}

func renderPanelFooter(m *model.Model, width int) string {
	if m.StatusBarMessage != "" {
		return components.NewStatusBar(width).
			WithMessage(m.StatusBarMessage, m.StatusBarMessageType).
			Render()
	}
	m.Help.Width = width
	return m.Help.ShortHelpView(m.Keys.ShortHelp())
}
