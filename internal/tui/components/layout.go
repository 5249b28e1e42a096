package components

import (
	"assistpanel/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// Layout helps split the host screen between lesson content and the panel
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a new layout manager
func NewLayout(width, height int) *Layout {
	return &Layout{
		Width:  width,
		Height: height,
	}
}

// SplitVertical splits the area vertically by percentage
func (l *Layout) SplitVertical(leftPercent float64) (leftWidth, rightWidth int) {
	if l.Width < design.MinPanelWidth*2 {
		l.Width = design.MinPanelWidth * 2
	}

	if leftPercent <= 0 || leftPercent >= 1 {
		leftPercent = 0.5
	}

	leftWidth = int(float64(l.Width) * leftPercent)
	rightWidth = l.Width - leftWidth

	if leftWidth < design.MinPanelWidth {
		leftWidth = design.MinPanelWidth
		rightWidth = l.Width - leftWidth
	}
	if rightWidth < design.MinPanelWidth {
		rightWidth = design.MinPanelWidth
		leftWidth = l.Width - rightWidth
	}

	return leftWidth, rightWidth
}

// FloatingSplit returns the columns left to the host and the panel width for
// a floating panel anchored to the right edge.
func (l *Layout) FloatingSplit() (hostWidth, panelWidth int) {
	panelWidth = design.FloatingPanelWidth(l.Width)
	return l.Width - panelWidth, panelWidth
}

// CalculateContentArea returns the available content area after accounting for header and status bar
func (l *Layout) CalculateContentArea(headerHeight, statusBarHeight int) int {
	contentHeight := l.Height - headerHeight - statusBarHeight
	if contentHeight < 0 {
		contentHeight = 0
	}
	return contentHeight
}

// JoinHorizontal joins components horizontally, top aligned
func JoinHorizontal(components ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, components...)
}

// JoinVertical joins components vertically
func JoinVertical(components ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, components...)
}
