package components

import (
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/utils"

	zone "github.com/lrstanley/bubblezone"
)

// TabZonePrefix prefixes the mouse zone id of every tab.
const TabZonePrefix = "panel-tab-"

// TabZoneID returns the mouse zone id of a tab.
func TabZoneID(id panel.TabID) string {
	return TabZonePrefix + string(id)
}

// TabStrip renders the selectable tabs of a panel.
type TabStrip struct {
	Tabs    []panel.TabDescriptor
	Active  panel.TabID
	Width   int
	Compact bool
	Focused bool
	Numbers bool
}

// NewTabStrip creates a tab strip over tabs
func NewTabStrip(tabs []panel.TabDescriptor) *TabStrip {
	return &TabStrip{Tabs: tabs, Width: 80, Numbers: true}
}

// WithActive marks the active tab
func (t *TabStrip) WithActive(id panel.TabID) *TabStrip {
	t.Active = id
	return t
}

// WithWidth sets the available width
func (t *TabStrip) WithWidth(width int) *TabStrip {
	t.Width = width
	return t
}

// WithCompact renders icons only
func (t *TabStrip) WithCompact(compact bool) *TabStrip {
	t.Compact = compact
	return t
}

// SetFocused highlights the active tab as holding keyboard focus
func (t *TabStrip) SetFocused(focused bool) *TabStrip {
	t.Focused = focused
	return t
}

func (t *TabStrip) label(i int, d panel.TabDescriptor) string {
	icon := design.TabIcon(d.Icon)
	if t.Compact {
		return icon
	}
	label := design.IconText(icon, d.Label)
	if t.Numbers {
		label = string(rune('1'+i)) + " " + label
	}
	return label
}

// Render returns the styled strip. When the labels do not fit the strip
// falls back to compact icons.
func (t *TabStrip) Render() string {
	parts := t.render()
	out := strings.Join(parts, design.TabSeparator)
	if !t.Compact && t.Width > 0 && utils.TruncateString(out, t.Width) != out {
		compact := *t
		compact.Compact = true
		out = strings.Join(compact.render(), design.TabSeparator)
	}
	return utils.TruncateString(out, t.Width)
}

func (t *TabStrip) render() []string {
	parts := make([]string, 0, len(t.Tabs))
	for i, d := range t.Tabs {
		style := design.TabStyle
		if d.ID == t.Active {
			style = design.TabActiveStyle
			if t.Focused {
				style = design.TabFocusedStyle
			}
		}
		parts = append(parts, zone.Mark(TabZoneID(d.ID), style.Render(t.label(i, d))))
	}
	return parts
}
