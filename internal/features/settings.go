package features

import (
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"

	tea "github.com/charmbracelet/bubbletea"
)

// Settings are the panel preferences a learner can change at runtime.
type Settings struct {
	DarkMode         bool `yaml:"darkMode"`
	ShowDescriptions bool `yaml:"showDescriptions"`
	CompactTabs      bool `yaml:"compactTabs"`
}

// SettingsChangedMsg is emitted whenever a toggle flips.
type SettingsChangedMsg struct {
	Settings Settings
}

type toggle struct {
	label string
	get   func(*Settings) *bool
}

var toggles = []toggle{
	{"Dark mode", func(s *Settings) *bool { return &s.DarkMode }},
	{"Show tab descriptions", func(s *Settings) *bool { return &s.ShowDescriptions }},
	{"Compact tab strip", func(s *Settings) *bool { return &s.CompactTabs }},
}

// SettingsUnit edits Settings.
type SettingsUnit struct {
	settings Settings
	cursor   int
	focused  bool
}

// NewSettingsUnit starts from initial.
func NewSettingsUnit(initial Settings) *SettingsUnit {
	return &SettingsUnit{settings: initial}
}

func (s *SettingsUnit) ID() panel.TabID { return panel.TabSettings }

func (s *SettingsUnit) Init() tea.Cmd { return nil }

func (s *SettingsUnit) Focus() tea.Cmd {
	s.focused = true
	return nil
}

func (s *SettingsUnit) Blur() { s.focused = false }

// Settings returns the current values.
func (s *SettingsUnit) Settings() Settings { return s.settings }

// Toggle flips the setting at index i.
func (s *SettingsUnit) Toggle(i int) tea.Cmd {
	if i < 0 || i >= len(toggles) {
		return nil
	}
	v := toggles[i].get(&s.settings)
	*v = !*v
	current := s.settings
	return func() tea.Msg { return SettingsChangedMsg{Settings: current} }
}

func (s *SettingsUnit) Update(msg tea.Msg, _ Props) tea.Cmd {
	switch msg := msg.(type) {
	case SettingsChangedMsg:
		s.settings = msg.Settings
	case tea.KeyMsg:
		if !s.focused {
			return nil
		}
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(toggles)-1 {
				s.cursor++
			}
		case "enter", " ":
			return s.Toggle(s.cursor)
		}
	}
	return nil
}

func (s *SettingsUnit) View(props Props, width, height int) string {
	if width < 4 || height < 1 {
		return ""
	}
	lines := []string{design.SubtitleStyle.Render("Preferences")}
	for i, t := range toggles {
		box := "[ ]"
		if *t.get(&s.settings) {
			box = "[x]"
		}
		row := box + " " + t.label
		if i == s.cursor {
			lines = append(lines, design.ListItemSelectedStyle.Render("▸ "+row))
		} else {
			lines = append(lines, design.ListItemStyle.Render("  "+row))
		}
	}
	status := "online"
	if !props.IsOnline {
		status = "offline"
	}
	lines = append(lines, "", design.DimStyle.Render("Connection: "+status))
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
