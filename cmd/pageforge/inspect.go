package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/pageforge/internal/cli"
	"github.com/aretw0/pageforge/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print a session's site as json, yaml, outline or mermaid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		exporter, ok := cli.Exporters()[format]
		if !ok {
			return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(cli.ExporterNames(), ", "))
		}

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.build.Close()

		var buf bytes.Buffer
		if err := rt.build.Engine.Export(cmd.Context(), &buf, args[0], exporter); err != nil {
			return fmt.Errorf("error loading session '%s': %w", args[0], err)
		}

		out := buf.String()
		if format == "outline" && term.IsTerminal(int(os.Stdout.Fd())) {
			if render, err := tui.NewRenderer(); err == nil {
				if rendered, err := render(out); err == nil {
					out = rendered
				}
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", "outline", "Output format: json, yaml, outline or mermaid")
}
