package components

import (
	"strings"

	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// CloseZoneID is the mouse zone of the close button.
const CloseZoneID = "panel-close"

// Header represents the panel header
type Header struct {
	Title       string
	Description string
	Width       int
	Closable    bool
	// RightContent is drawn before the close button.
	RightContent string
}

// NewHeader creates a new header
func NewHeader(title string) *Header {
	return &Header{
		Title: title,
		Width: 80,
	}
}

// WithDescription adds a second, dimmed line
func (h *Header) WithDescription(description string) *Header {
	h.Description = description
	return h
}

// WithClose shows the close affordance
func (h *Header) WithClose(closable bool) *Header {
	h.Closable = closable
	return h
}

// WithRightContent adds content to the right side
func (h *Header) WithRightContent(content string) *Header {
	h.RightContent = content
	return h
}

// WithWidth sets the header width
func (h *Header) WithWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header
func (h *Header) Render() string {
	left := design.PanelTitleStyle.Render(h.Title)

	var right []string
	if h.RightContent != "" {
		right = append(right, h.RightContent)
	}
	if h.Closable {
		right = append(right, zone.Mark(CloseZoneID, design.CloseButtonStyle.Render(design.IconClose)))
	}
	rightContent := strings.Join(right, " ")

	line := left
	if rightContent != "" {
		leftWidth := lipgloss.Width(left)
		rightWidth := lipgloss.Width(rightContent)
		if leftWidth+rightWidth+1 <= h.Width {
			line = left + strings.Repeat(" ", h.Width-leftWidth-rightWidth) + rightContent
		} else {
			// keep the close button reachable
			line = utils.TruncateString(left, h.Width-rightWidth-1) + " " + rightContent
		}
	}
	line = utils.TruncateString(line, h.Width)

	if h.Description == "" {
		return line
	}
	desc := design.DimStyle.Render(utils.TruncateString(h.Description, h.Width))
	return lipgloss.JoinVertical(lipgloss.Left, line, desc)
}
