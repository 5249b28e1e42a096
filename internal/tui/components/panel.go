package components

import (
	"strings"

	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// PanelType defines the visual style of a panel
type PanelType int

const (
	PanelTypeEmbedded PanelType = iota
	PanelTypeFloating
)

func (pt PanelType) String() string {
	if pt == PanelTypeFloating {
		return "Floating"
	}
	return "Embedded"
}

// Panel stacks header, tab strip, body and footer inside a frame
type Panel struct {
	Header  string
	Tabs    string
	Content string
	Footer  string
	Width   int
	Height  int
	Focused bool
	Type    PanelType
}

// NewPanel creates a new panel with default settings
func NewPanel(panelType PanelType) *Panel {
	return &Panel{
		Width:  design.MinPanelWidth,
		Height: design.MinPanelHeight,
		Type:   panelType,
	}
}

// WithHeader sets the rendered header
func (p *Panel) WithHeader(header string) *Panel {
	p.Header = header
	return p
}

// WithTabs sets the rendered tab strip
func (p *Panel) WithTabs(tabs string) *Panel {
	p.Tabs = tabs
	return p
}

// WithContent sets the panel content
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithFooter sets a line drawn at the bottom
func (p *Panel) WithFooter(footer string) *Panel {
	p.Footer = footer
	return p
}

// WithDimensions sets the panel dimensions
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// SetFocused updates the focus state
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// InnerSize reports the space left for content once the frame, header,
// tabs and footer are drawn.
func (p *Panel) InnerSize() (width, height int) {
	p.clamp()
	style := p.getStyle()
	width = p.Width - style.GetHorizontalFrameSize()
	height = p.Height - style.GetVerticalFrameSize() - p.chromeHeight()
	return max(width, 1), max(height, 1)
}

func (p *Panel) chromeHeight() int {
	h := 0
	if p.Header != "" {
		h += lipgloss.Height(p.Header)
	}
	if p.Tabs != "" {
		h += lipgloss.Height(p.Tabs) + 1
	}
	if p.Footer != "" {
		h += lipgloss.Height(p.Footer)
	}
	return h
}

func (p *Panel) clamp() {
	if p.Width < design.MinPanelWidth {
		p.Width = design.MinPanelWidth
	}
	if p.Height < design.MinPanelHeight {
		p.Height = design.MinPanelHeight
	}
}

// Render returns the styled panel
func (p *Panel) Render() string {
	p.clamp()
	style := p.getStyle()
	innerWidth := max(p.Width-style.GetHorizontalFrameSize(), 1)
	innerHeight := max(p.Height-style.GetVerticalFrameSize(), 1)

	var lines []string
	if p.Header != "" {
		lines = append(lines, p.Header)
	}
	if p.Tabs != "" {
		lines = append(lines, p.Tabs, design.DimStyle.Render(strings.Repeat("─", innerWidth)))
	}
	top := strings.Join(lines, "\n")
	topHeight := 0
	if top != "" {
		topHeight = lipgloss.Height(top)
	}
	footerHeight := 0
	if p.Footer != "" {
		footerHeight = lipgloss.Height(p.Footer)
	}

	body := utils.FitBlock(p.Content, innerWidth, max(innerHeight-topHeight-footerHeight, 0))
	parts := []string{}
	if top != "" {
		parts = append(parts, top)
	}
	if body != "" {
		parts = append(parts, body)
	}
	if p.Footer != "" {
		parts = append(parts, p.Footer)
	}
	content := utils.FitBlock(strings.Join(parts, "\n"), innerWidth, innerHeight)

	return style.
		Width(p.Width - style.GetHorizontalBorderSize()).
		Height(p.Height - style.GetVerticalBorderSize()).
		Render(content)
}

// getStyle returns the appropriate style based on panel state
func (p *Panel) getStyle() lipgloss.Style {
	switch p.Type {
	case PanelTypeFloating:
		return design.FloatingPanelStyle
	default:
		if p.Focused {
			return design.EmbeddedPanelStyle.BorderForeground(design.ColorBorderFocus)
		}
		return design.EmbeddedPanelStyle
	}
}
