package features

import (
	"assistpanel/internal/panel"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Props is what every unit receives from the panel.
type Props struct {
	IsOnline bool
	Context  *panel.ContextPayload
}

// Unit is a feature view hosted in one tab.
type Unit interface {
	ID() panel.TabID
	Init() tea.Cmd
	Update(msg tea.Msg, props Props) tea.Cmd
	View(props Props, width, height int) string
	Focus() tea.Cmd
	Blur()
}

// EscapeHandler is implemented by units that use esc themselves (for
// example to leave an article). HandleEscape reports whether it consumed it.
type EscapeHandler interface {
	HandleEscape() (bool, tea.Cmd)
}

// Closer is implemented by units holding resources beyond the UI loop.
type Closer interface {
	Close() error
}

// StatusMsg asks the host to show a transient status bar message.
type StatusMsg struct {
	Text    string
	IsError bool
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, IsError: isErr} }
}

// For mocking in tests
var writeClipboard = clipboard.WriteAll

func copyToClipboard(what, content string) tea.Cmd {
	if err := writeClipboard(content); err != nil {
		return statusCmd("Copy "+what+" failed: "+err.Error(), true)
	}
	return statusCmd(what+" copied to clipboard", false)
}
