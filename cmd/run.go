package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"assistpanel/internal/config"
	"assistpanel/internal/features"
	"assistpanel/internal/mcpserver"
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/controller"
	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/model"
	"assistpanel/internal/tui/transition"
	"assistpanel/pkg/logging"

	"github.com/spf13/cobra"
)

const runSubsystem = "Run"

// runOptions holds the flags of the run command.
type runOptions struct {
	embedded    bool
	tab         string
	closed      bool
	contextMode string
	lessonID    string
	lessonTitle string
	offline     bool
	debug       bool
	mcp         bool
	mcpPort     int
	logFile     string
	workspace   string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the lesson viewer with the assistant panel",
		Long: `Opens the terminal lesson viewer and mounts the assistant panel.

By default the panel floats over the right edge of the lesson and can be
toggled with 'a'. With --embedded it sits beside the lesson and cannot be
closed. --tab pins the active tab the way a host application would; press
'R' inside the viewer to hand selection back to the keyboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applyRunFlags(cmd, opts, &cfg)
			return runPanel(cmd.Context(), cfg, opts.debug)
		},
	}

	cmd.Flags().BoolVar(&opts.embedded, "embedded", false, "Embed the panel beside the lesson instead of floating over it")
	cmd.Flags().StringVar(&opts.tab, "tab", "", "Pin the active tab (chat, analysis, knowledge, filesystem, api, settings)")
	cmd.Flags().BoolVar(&opts.closed, "closed", false, "Start with the floating panel closed")
	cmd.Flags().StringVar(&opts.contextMode, "context-mode", "", "Context mode passed to the panel: learning or general")
	cmd.Flags().StringVar(&opts.lessonID, "lesson-id", "", "ID of the lesson currently open")
	cmd.Flags().StringVar(&opts.lessonTitle, "lesson-title", "", "Title of the lesson currently open")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Tell the feature units the learner is offline")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&opts.mcp, "mcp", false, "Start the MCP control server")
	cmd.Flags().IntVar(&opts.mcpPort, "mcp-port", 0, "Port of the MCP control server")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Also write logs to this file, rotated by size")
	cmd.Flags().StringVar(&opts.workspace, "workspace", "", "Root directory of the files tab (default: current directory)")
	return cmd
}

// applyRunFlags overrides config values with the flags the user set.
func applyRunFlags(cmd *cobra.Command, opts *runOptions, cfg *config.AssistPanelConfig) {
	flags := cmd.Flags()
	if flags.Changed("embedded") {
		cfg.Panel.Embedded = config.Bool(opts.embedded)
	}
	if flags.Changed("tab") {
		cfg.Panel.ActiveTab = opts.tab
	}
	if flags.Changed("closed") {
		cfg.Panel.StartOpen = config.Bool(!opts.closed)
	}
	if flags.Changed("context-mode") {
		cfg.Context.Mode = opts.contextMode
	}
	if flags.Changed("lesson-id") {
		cfg.Context.Lesson.ID = opts.lessonID
	}
	if flags.Changed("lesson-title") {
		cfg.Context.Lesson.Title = opts.lessonTitle
	}
	if flags.Changed("offline") {
		cfg.Features.Online = config.Bool(!opts.offline)
	}
	if flags.Changed("workspace") {
		cfg.Features.WorkspaceDir = opts.workspace
	}
	if flags.Changed("mcp") {
		cfg.MCP.Enabled = config.Bool(opts.mcp)
	}
	if flags.Changed("mcp-port") {
		cfg.MCP.Port = opts.mcpPort
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	if opts.debug {
		cfg.Logging.Level = "debug"
	}
}

// hostFromConfig builds the initial host state.
func hostFromConfig(cfg config.AssistPanelConfig) *controller.HostState {
	host := &controller.HostState{
		Open:     config.BoolValue(cfg.Panel.StartOpen, true),
		Embedded: config.BoolValue(cfg.Panel.Embedded, false),
		Context:  cfg.Context.Payload(),
		Online:   config.BoolValue(cfg.Features.Online, true),
	}
	if cfg.Panel.ActiveTab != "" {
		// Unknown ids are passed through; the panel falls back to chat.
		host.Tab = panel.TabID(cfg.Panel.ActiveTab)
		if _, ok := panel.ParseTabID(cfg.Panel.ActiveTab); !ok {
			logging.Warn(runSubsystem, "unknown tab %q, the panel will show %s", cfg.Panel.ActiveTab, panel.DefaultTab)
		}
	}
	return host
}

func transitionFromConfig(tc config.TransitionConfig) transition.Transitioner {
	if !config.BoolValue(tc.Enabled, true) {
		return transition.None{}
	}
	return transition.NewSlide(tc.Duration, tc.Frames)
}

func featureOptions(cfg config.AssistPanelConfig, settings features.Settings) (features.Options, error) {
	opts := features.Options{
		WorkspaceDir: cfg.Features.WorkspaceDir,
		ReplyDelay:   cfg.Features.ReplyDelay,
		Settings:     settings,
	}
	if opts.WorkspaceDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return opts, fmt.Errorf("resolving workspace directory: %w", err)
		}
		opts.WorkspaceDir = wd
	}
	if dir := cfg.Features.ArticlesDir; dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return opts, fmt.Errorf("articles directory: %w", err)
		}
		docs, err := features.LoadArticles(os.DirFS(dir))
		if err != nil {
			return opts, fmt.Errorf("loading articles from %s: %w", dir, err)
		}
		opts.ExtraDocs = docs
	}
	return opts, nil
}

func runPanel(ctx context.Context, cfg config.AssistPanelConfig, debug bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logChan := logging.InitForTUI(level, logging.FileOptions{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", err)
		}
	}()

	settings := cfg.Features.Settings.Apply(features.Settings{DarkMode: design.DetectDarkMode()})
	design.Initialize(settings.DarkMode)

	fo, err := featureOptions(cfg, settings)
	if err != nil {
		return err
	}

	host := hostFromConfig(cfg)
	store := &panel.StateStore{}
	p, err := controller.NewProgram(host,
		model.WithStore(store),
		model.WithLogChannel(logChan),
		model.WithDebug(debug),
		model.WithSettings(settings),
		model.WithFeatureOptions(fo),
		model.WithTransition(transitionFromConfig(cfg.Panel.Transition)),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var srv *mcpserver.Server
	if config.BoolValue(cfg.MCP.Enabled, false) {
		srv = mcpserver.New(mcpserver.Config{
			Host:    cfg.MCP.Host,
			Port:    cfg.MCP.Port,
			Version: rootCmd.Version,
		}, p, store)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("starting mcp server: %w", err)
		}
		logging.Info(runSubsystem, "MCP control server listening on %s/sse", srv.BaseURL())
	}

	final, err := p.Run()
	if srv != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if stopErr := srv.Stop(stopCtx); stopErr != nil {
			logging.Warn(runSubsystem, "stopping mcp server: %v", stopErr)
		}
		stopCancel()
	}
	if shutdownErr := controller.Shutdown(final); shutdownErr != nil {
		logging.Warn(runSubsystem, "shutdown: %v", shutdownErr)
	}
	if err != nil {
		return fmt.Errorf("running panel: %w", err)
	}
	return nil
}
