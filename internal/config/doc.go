// Package config provides configuration management for assistpanel.
//
// Configuration is loaded from several YAML sources and merged in order,
// later sources overriding earlier ones:
//
//  1. Default configuration (built into the binary)
//  2. User configuration (~/.config/assistpanel/config.yaml)
//  3. Project configuration (./.assistpanel/config.yaml)
//
// Command-line flags are applied by the caller after LoadConfig returns.
//
// # Configuration Structure
//
//	panel:
//	  embedded: false
//	  startOpen: true
//	  activeTab: ""          # empty: the user picks the tab
//	  transition:
//	    enabled: true
//	    duration: 180ms
//	    frames: 6
//
//	context:
//	  mode: learning         # or "general"
//	  lesson:
//	    id: go-101
//	    title: Goroutines
//	    tags: [goroutines, concurrency]
//
//	features:
//	  online: true
//	  workspaceDir: ./exercises
//	  articlesDir: ./docs/articles
//	  replyDelay: 600ms
//	  settings:
//	    darkMode: true
//	    showDescriptions: true
//	    compactTabs: false
//
//	mcp:
//	  enabled: false
//	  host: localhost
//	  port: 8091
//
//	logging:
//	  level: info
//	  file: /tmp/assistpanel.log
//	  maxSizeMB: 10
//	  maxBackups: 3
//	  maxAgeDays: 14
//
// # Merge Rules
//
// Scalar values from a later layer replace earlier ones when set. Optional
// booleans are pointers so that "false" can override a default of "true".
// A lesson is replaced as a whole when the later layer names one.
package config
