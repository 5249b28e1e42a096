package features

import "time"

// Options configures the default unit set.
type Options struct {
	WorkspaceDir string
	ReplyDelay   time.Duration
	Settings     Settings
	ExtraDocs    []Article
}

// DefaultUnits builds one unit per tab.
func DefaultUnits(opts Options) []Unit {
	return []Unit{
		NewChatUnit(opts.ReplyDelay),
		NewAnalyzerUnit(),
		NewKnowledgeUnit(append(BuiltinArticles(), opts.ExtraDocs...), opts.Settings.DarkMode),
		NewFilesystemUnit(opts.WorkspaceDir),
		NewAPIConfigUnit(),
		NewSettingsUnit(opts.Settings),
	}
}

// NewDefaultDispatcher wires DefaultUnits into a Dispatcher.
func NewDefaultDispatcher(opts Options) (*Dispatcher, error) {
	return NewDispatcher(DefaultUnits(opts)...)
}
