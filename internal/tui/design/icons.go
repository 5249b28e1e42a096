package design

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Icon constants
const (
	IconChat      = "💬"
	IconAnalysis  = "🔍"
	IconKnowledge = "📚"
	IconFolder    = "📁"
	IconKey       = "🔑"
	IconGear      = "⚙" // U+2699 without VS16
	IconClose     = "✕"
	IconOnline    = "●"
	IconOffline   = "○"
	IconPin       = "📌"
	IconLesson    = "🎓"
	IconQuestion  = "❓"
)

var tabIcons = map[string]string{
	"chat":       IconChat,
	"analysis":   IconAnalysis,
	"knowledge":  IconKnowledge,
	"filesystem": IconFolder,
	"api":        IconKey,
	"settings":   IconGear,
}

// TabIcon resolves an opaque icon tag. Unknown tags get a neutral glyph.
func TabIcon(tag string) string {
	if icon, ok := tabIcons[tag]; ok {
		return icon
	}
	return IconQuestion
}

// SafeIcon wraps an icon with proper spacing to prevent rendering issues
// It ensures that an icon doesn't "swallow" the next character by adding
// spaces depending on the display width of the icon:
//   - If the icon occupies a single cell we append 1 space.
//   - If the icon occupies two cells (common for many emojis / NerdFont glyphs)
//     we append 2 spaces so that at least one space is visible after the icon.
func SafeIcon(icon string) string {
	w := runewidth.StringWidth(icon)
	spaces := 1
	if w >= 2 {
		spaces = 2
	}
	return fmt.Sprintf("%s%s", icon, strings.Repeat(" ", spaces))
}

// IconText formats an icon with text, handling spacing properly
func IconText(icon string, text string) string {
	return fmt.Sprintf("%s%s", SafeIcon(icon), text)
}
