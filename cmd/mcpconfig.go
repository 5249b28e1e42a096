package cmd

import (
	"fmt"

	"assistpanel/internal/config"
	"assistpanel/internal/mcpserver"

	"github.com/spf13/cobra"
)

func newMCPConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-config",
		Short: "Print the MCP client configuration for the panel control server",
		Long: `Prints an mcpServers snippet pointing at the control server that
'assistpanel run --mcp' starts, using host and port from the config files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), mcpserver.ClientConfigJSON(cfg.MCP.Host, cfg.MCP.Port))
			return nil
		},
	}
}
