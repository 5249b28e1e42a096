package config

import "time"

const (
	DefaultMCPHost = "localhost"
	DefaultMCPPort = 8091

	defaultReplyDelay   = 600 * time.Millisecond
	defaultSlideTime    = 180 * time.Millisecond
	defaultSlideFrames  = 6
	defaultLogMaxSizeMB = 10
	defaultLogBackups   = 3
	defaultLogMaxAge    = 14
)

// GetDefaultConfig returns the built-in configuration: a floating panel
// mounted open, uncontrolled tab selection, online, MCP surface off.
func GetDefaultConfig() AssistPanelConfig {
	return AssistPanelConfig{
		Panel: PanelConfig{
			Embedded:  Bool(false),
			StartOpen: Bool(true),
			Transition: TransitionConfig{
				Enabled:  Bool(true),
				Duration: defaultSlideTime,
				Frames:   defaultSlideFrames,
			},
		},
		Features: FeaturesConfig{
			Online:     Bool(true),
			ReplyDelay: defaultReplyDelay,
			Settings: SettingsConfig{
				ShowDescriptions: Bool(true),
			},
		},
		MCP: MCPConfig{
			Enabled: Bool(false),
			Host:    DefaultMCPHost,
			Port:    DefaultMCPPort,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogBackups,
			MaxAgeDays: defaultLogMaxAge,
		},
	}
}
