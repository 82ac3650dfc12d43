package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/pageforge/internal/cli"
	"github.com/aretw0/pageforge/internal/presentation/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <session-id>",
	Short: "Edit a session interactively",
	Long: `Starts a line-oriented editor on the session. Each line is either a JSON
command or the shorthand form:

  add_node kind=Paragraph content="Hello" style.color=#333
  move_node nodeId=abc direction=up
  undo

Piped input is executed without prompts, which makes edit usable in scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.build.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		opts := cli.REPLOptions{
			Engine:      rt.build.Engine,
			SessionID:   args[0],
			In:          os.Stdin,
			Out:         cmd.OutOrStdout(),
			Interactive: interactive,
			Logger:      rt.logger,
		}
		if interactive {
			if render, err := tui.NewRenderer(); err == nil {
				opts.Render = render
			}
		}
		return cli.RunREPL(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
