package model

import (
	"assistpanel/internal/panel"
	"assistpanel/pkg/logging"
)

// ---- Host messages ----

// SetOpenMsg carries a new isOpen value from the host.
type SetOpenMsg struct {
	Open bool
}

// SetActiveTabMsg asserts external control over the active tab. An empty
// Tab releases control.
type SetActiveTabMsg struct {
	Tab panel.TabID
}

// ReleaseTabMsg hands tab selection back to the user.
type ReleaseTabMsg struct{}

// SetContextMsg replaces the context payload.
type SetContextMsg struct {
	Context *panel.ContextPayload
}

// SetOnlineMsg updates the connectivity flag forwarded to units.
type SetOnlineMsg struct {
	Online bool
}

// ---- Panel messages ----

// SelectTabMsg is a user selection from the tab strip.
type SelectTabMsg struct {
	Tab panel.TabID
}

// CloseSource names the gesture that asked the panel to close.
type CloseSource string

const (
	CloseFromKey     CloseSource = "key"
	CloseFromButton  CloseSource = "button"
	CloseFromOverlay CloseSource = "overlay"
)

// CloseRequestMsg asks a floating panel to close.
type CloseRequestMsg struct {
	Source CloseSource
}

// ClosingMsg tells the host the panel started its exit transition and will
// unmount once it ends.
type ClosingMsg struct {
	Seq int
}

// UnmountedMsg tells the host the exit transition finished.
type UnmountedMsg struct {
	Seq int
}

// ---- Misc overlay / status bar ----

type ClearStatusBarMsg struct{}

// NewLogEntryMsg carries one entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}
