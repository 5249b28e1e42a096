package config

import (
	"time"

	"assistpanel/internal/features"
	"assistpanel/internal/panel"
)

// AssistPanelConfig is the top-level configuration structure for assistpanel.
type AssistPanelConfig struct {
	Panel    PanelConfig    `yaml:"panel"`
	Context  ContextConfig  `yaml:"context"`
	Features FeaturesConfig `yaml:"features"`
	MCP      MCPConfig      `yaml:"mcp"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PanelConfig describes how the host mounts the panel.
type PanelConfig struct {
	Embedded   *bool            `yaml:"embedded,omitempty"`
	StartOpen  *bool            `yaml:"startOpen,omitempty"`
	ActiveTab  string           `yaml:"activeTab,omitempty"` // empty leaves tab selection to the user
	Transition TransitionConfig `yaml:"transition"`
}

// TransitionConfig tunes the floating panel slide.
type TransitionConfig struct {
	Enabled  *bool         `yaml:"enabled,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Frames   int           `yaml:"frames,omitempty"`
}

// ContextConfig seeds the context payload handed to feature units.
type ContextConfig struct {
	Mode   string          `yaml:"mode,omitempty"` // "learning" or "general"
	Lesson panel.LessonRef `yaml:"lesson,omitempty"`
}

// FeaturesConfig configures the feature units.
type FeaturesConfig struct {
	Online       *bool          `yaml:"online,omitempty"`
	WorkspaceDir string         `yaml:"workspaceDir,omitempty"`
	ArticlesDir  string         `yaml:"articlesDir,omitempty"`
	ReplyDelay   time.Duration  `yaml:"replyDelay,omitempty"`
	Settings     SettingsConfig `yaml:"settings"`
}

// SettingsConfig holds the initial panel preferences. Unset fields keep the
// lower layer's value.
type SettingsConfig struct {
	DarkMode         *bool `yaml:"darkMode,omitempty"`
	ShowDescriptions *bool `yaml:"showDescriptions,omitempty"`
	CompactTabs      *bool `yaml:"compactTabs,omitempty"`
}

// MCPConfig defines the host control server.
type MCPConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

// LoggingConfig defines log level and the optional rotating log file.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `yaml:"maxBackups,omitempty"`
	MaxAgeDays int    `yaml:"maxAgeDays,omitempty"`
}

// Apply overlays the configured preferences on base.
func (s SettingsConfig) Apply(base features.Settings) features.Settings {
	if s.DarkMode != nil {
		base.DarkMode = *s.DarkMode
	}
	if s.ShowDescriptions != nil {
		base.ShowDescriptions = *s.ShowDescriptions
	}
	if s.CompactTabs != nil {
		base.CompactTabs = *s.CompactTabs
	}
	return base
}

// Payload builds the context payload, or nil when nothing is configured.
func (c ContextConfig) Payload() *panel.ContextPayload {
	mode := panel.ParseContextMode(c.Mode)
	hasLesson := c.Lesson.ID != "" || c.Lesson.Title != ""
	if mode == "" && !hasLesson {
		return nil
	}
	p := &panel.ContextPayload{Mode: mode}
	if hasLesson {
		lesson := c.Lesson
		p.CurrentLesson = &lesson
	}
	return p
}

// BoolValue returns *b, or def when b is unset.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
