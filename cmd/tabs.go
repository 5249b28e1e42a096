package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"assistpanel/internal/panel"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	tabsEmbedded bool
	tabsOutput   string
)

func newTabsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List the tabs of the assistant panel",
		Long: `Lists the tabs the panel shows, in order. The floating panel shows
all of them; the embedded panel only the first three.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTabs(cmd.OutOrStdout(), panel.ModeFor(tabsEmbedded), tabsOutput)
		},
	}
	cmd.Flags().BoolVar(&tabsEmbedded, "embedded", false, "List the tabs of the embedded layout")
	cmd.Flags().StringVarP(&tabsOutput, "output", "o", "text", "Output format: text or yaml")
	return cmd
}

func printTabs(w io.Writer, mode panel.Mode, format string) error {
	tabs := panel.VisibleTabs(mode)
	switch format {
	case "yaml":
		out, err := yaml.Marshal(map[string]interface{}{
			"mode": mode.String(),
			"tabs": tabs,
		})
		if err != nil {
			return fmt.Errorf("encoding tabs: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tID\tLABEL\tDESCRIPTION")
		for i, t := range tabs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, t.ID, t.Label, t.Description)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want text or yaml)", format)
	}
}
