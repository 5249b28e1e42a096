package components

import (
	"fmt"

	"assistpanel/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// StatusType represents different status states
type StatusType int

const (
	StatusTypeOnline StatusType = iota
	StatusTypeOffline
	StatusTypePinned
	StatusTypeLesson
)

// StatusIndicator represents a status with icon and text
type StatusIndicator struct {
	Type     StatusType
	Text     string
	ShowIcon bool
	ShowText bool
}

// NewStatusIndicator creates a new status indicator
func NewStatusIndicator(statusType StatusType) *StatusIndicator {
	return &StatusIndicator{
		Type:     statusType,
		ShowIcon: true,
		ShowText: true,
	}
}

// WithText sets custom text for the status
func (s *StatusIndicator) WithText(text string) *StatusIndicator {
	s.Text = text
	return s
}

// IconOnly shows only the icon
func (s *StatusIndicator) IconOnly() *StatusIndicator {
	s.ShowIcon = true
	s.ShowText = false
	return s
}

// Render returns the styled status indicator
func (s *StatusIndicator) Render() string {
	style := s.getStyle()
	icon := style.Render(s.getIcon())
	text := style.Render(s.getText())
	switch {
	case s.ShowIcon && s.ShowText:
		return fmt.Sprintf("%s%s", design.SafeIcon(icon), text)
	case s.ShowIcon:
		return icon
	case s.ShowText:
		return text
	}
	return ""
}

// getIcon returns the appropriate icon for the status
func (s *StatusIndicator) getIcon() string {
	switch s.Type {
	case StatusTypeOnline:
		return design.IconOnline
	case StatusTypeOffline:
		return design.IconOffline
	case StatusTypePinned:
		return design.IconPin
	case StatusTypeLesson:
		return design.IconLesson
	default:
		return design.IconQuestion
	}
}

// getText returns the appropriate text for the status
func (s *StatusIndicator) getText() string {
	if s.Text != "" {
		return s.Text
	}
	switch s.Type {
	case StatusTypeOnline:
		return "online"
	case StatusTypeOffline:
		return "offline"
	case StatusTypePinned:
		return "pinned by host"
	case StatusTypeLesson:
		return "lesson"
	default:
		return "unknown"
	}
}

// getStyle returns the appropriate style for the status
func (s *StatusIndicator) getStyle() lipgloss.Style {
	switch s.Type {
	case StatusTypeOnline:
		return design.TextSuccessStyle
	case StatusTypeOffline:
		return design.TextWarningStyle
	case StatusTypePinned:
		return design.TextInfoStyle
	default:
		return design.TextSecondaryStyle
	}
}
