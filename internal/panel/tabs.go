package panel

import "strings"

// TabID identifies a selectable view inside the panel.
type TabID string

const (
	TabChat       TabID = "chat"
	TabAnalysis   TabID = "analysis"
	TabKnowledge  TabID = "knowledge"
	TabFilesystem TabID = "filesystem"
	TabAPI        TabID = "api"
	TabSettings   TabID = "settings"
)

// DefaultTab is used whenever no valid tab can be determined.
const DefaultTab = TabChat

// embeddedTabCount is how many leading registry entries embedded mode exposes.
const embeddedTabCount = 3

// TabDescriptor describes one entry of the tab strip. Icon is an opaque tag
// resolved by the view layer.
type TabDescriptor struct {
	ID          TabID  `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}

// registry is the fixed, ordered catalog. Order matters: embedded mode shows
// the first embeddedTabCount entries.
var registry = []TabDescriptor{
	{ID: TabChat, Label: "Chat", Description: "Ask the assistant about the lesson", Icon: "chat"},
	{ID: TabAnalysis, Label: "Analyze", Description: "Inspect a code sample", Icon: "analysis"},
	{ID: TabKnowledge, Label: "Knowledge", Description: "Browse reference articles", Icon: "knowledge"},
	{ID: TabFilesystem, Label: "Files", Description: "Browse the local workspace", Icon: "filesystem"},
	{ID: TabAPI, Label: "API", Description: "Configure the assistant provider", Icon: "api"},
	{ID: TabSettings, Label: "Settings", Description: "Panel preferences", Icon: "settings"},
}

// AllTabs returns every descriptor in registry order.
func AllTabs() []TabDescriptor {
	out := make([]TabDescriptor, len(registry))
	copy(out, registry)
	return out
}

// AllTabIDs returns every known identifier in registry order.
func AllTabIDs() []TabID {
	ids := make([]TabID, 0, len(registry))
	for _, d := range registry {
		ids = append(ids, d.ID)
	}
	return ids
}

// VisibleTabs returns the descriptors selectable under mode.
func VisibleTabs(mode Mode) []TabDescriptor {
	n := len(registry)
	if mode == ModeEmbedded {
		n = embeddedTabCount
	}
	out := make([]TabDescriptor, n)
	copy(out, registry[:n])
	return out
}

// Lookup returns the descriptor for id.
func Lookup(id TabID) (TabDescriptor, bool) {
	for _, d := range registry {
		if d.ID == id {
			return d, true
		}
	}
	return TabDescriptor{}, false
}

// Valid reports whether id is part of the closed tab set.
func (id TabID) Valid() bool {
	_, ok := Lookup(id)
	return ok
}

func (id TabID) String() string { return string(id) }

// ParseTabID normalizes s and reports whether it names a known tab. Unknown
// input yields DefaultTab and false.
func ParseTabID(s string) (TabID, bool) {
	id := TabID(strings.ToLower(strings.TrimSpace(s)))
	if id.Valid() {
		return id, true
	}
	return DefaultTab, false
}

// IsVisible reports whether id can be selected under mode.
func IsVisible(mode Mode, id TabID) bool {
	return indexOf(VisibleTabs(mode), id) >= 0
}

// NextVisible moves delta steps from id through the visible tabs of mode,
// wrapping at both ends. An id that is not visible starts from the first tab.
func NextVisible(mode Mode, id TabID, delta int) TabID {
	tabs := VisibleTabs(mode)
	idx := indexOf(tabs, id)
	if idx < 0 {
		return tabs[0].ID
	}
	n := len(tabs)
	idx = ((idx+delta)%n + n) % n
	return tabs[idx].ID
}

// TabAt returns the visible tab at the 0-based position, if any.
func TabAt(mode Mode, pos int) (TabID, bool) {
	tabs := VisibleTabs(mode)
	if pos < 0 || pos >= len(tabs) {
		return "", false
	}
	return tabs[pos].ID, true
}

func indexOf(tabs []TabDescriptor, id TabID) int {
	for i, d := range tabs {
		if d.ID == id {
			return i
		}
	}
	return -1
}
