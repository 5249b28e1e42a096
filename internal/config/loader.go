package config

import (
	"fmt"
	"os"
	"path/filepath"

	"assistpanel/pkg/logging"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/assistpanel"
	projectConfigDir = ".assistpanel"
	configFileName   = "config.yaml"
)

// LoadConfig loads the assistpanel configuration by layering default, user, and project settings.
func LoadConfig() (AssistPanelConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return AssistPanelConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return AssistPanelConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	if err := config.Validate(); err != nil {
		return AssistPanelConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads an AssistPanelConfig from a YAML file.
func loadConfigFromFile(filePath string) (AssistPanelConfig, error) {
	var config AssistPanelConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return AssistPanelConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return AssistPanelConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Non-zero overlay
// values win.
func mergeConfigs(base, overlay AssistPanelConfig) AssistPanelConfig {
	merged := base

	// Panel
	if overlay.Panel.Embedded != nil {
		merged.Panel.Embedded = overlay.Panel.Embedded
	}
	if overlay.Panel.StartOpen != nil {
		merged.Panel.StartOpen = overlay.Panel.StartOpen
	}
	if overlay.Panel.ActiveTab != "" {
		merged.Panel.ActiveTab = overlay.Panel.ActiveTab
	}
	if overlay.Panel.Transition.Enabled != nil {
		merged.Panel.Transition.Enabled = overlay.Panel.Transition.Enabled
	}
	if overlay.Panel.Transition.Duration != 0 {
		merged.Panel.Transition.Duration = overlay.Panel.Transition.Duration
	}
	if overlay.Panel.Transition.Frames != 0 {
		merged.Panel.Transition.Frames = overlay.Panel.Transition.Frames
	}

	// Context: a lesson is replaced as a whole
	if overlay.Context.Mode != "" {
		merged.Context.Mode = overlay.Context.Mode
	}
	if overlay.Context.Lesson.ID != "" || overlay.Context.Lesson.Title != "" {
		merged.Context.Lesson = overlay.Context.Lesson
	}

	// Features
	if overlay.Features.Online != nil {
		merged.Features.Online = overlay.Features.Online
	}
	if overlay.Features.WorkspaceDir != "" {
		merged.Features.WorkspaceDir = overlay.Features.WorkspaceDir
	}
	if overlay.Features.ArticlesDir != "" {
		merged.Features.ArticlesDir = overlay.Features.ArticlesDir
	}
	if overlay.Features.ReplyDelay != 0 {
		merged.Features.ReplyDelay = overlay.Features.ReplyDelay
	}
	if s := overlay.Features.Settings.DarkMode; s != nil {
		merged.Features.Settings.DarkMode = s
	}
	if s := overlay.Features.Settings.ShowDescriptions; s != nil {
		merged.Features.Settings.ShowDescriptions = s
	}
	if s := overlay.Features.Settings.CompactTabs; s != nil {
		merged.Features.Settings.CompactTabs = s
	}

	// MCP
	if overlay.MCP.Enabled != nil {
		merged.MCP.Enabled = overlay.MCP.Enabled
	}
	if overlay.MCP.Host != "" {
		merged.MCP.Host = overlay.MCP.Host
	}
	if overlay.MCP.Port != 0 {
		merged.MCP.Port = overlay.MCP.Port
	}

	// Logging
	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.File != "" {
		merged.Logging.File = overlay.Logging.File
	}
	if overlay.Logging.MaxSizeMB != 0 {
		merged.Logging.MaxSizeMB = overlay.Logging.MaxSizeMB
	}
	if overlay.Logging.MaxBackups != 0 {
		merged.Logging.MaxBackups = overlay.Logging.MaxBackups
	}
	if overlay.Logging.MaxAgeDays != 0 {
		merged.Logging.MaxAgeDays = overlay.Logging.MaxAgeDays
	}

	return merged
}

// Validate rejects values no component could work with.
func (c AssistPanelConfig) Validate() error {
	if c.MCP.Port < 0 || c.MCP.Port > 65535 {
		return fmt.Errorf("mcp.port %d out of range", c.MCP.Port)
	}
	if c.Panel.Transition.Frames < 0 {
		return fmt.Errorf("panel.transition.frames must not be negative, got %d", c.Panel.Transition.Frames)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
