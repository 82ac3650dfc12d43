package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/editor"
)

var newCmd = &cobra.Command{
	Use:   "new <session-id>",
	Short: "Create a session holding the default site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.build.Close()

		id := args[0]
		eng := rt.build.Engine
		if _, err := eng.Load(cmd.Context(), id); err == nil {
			return fmt.Errorf("session '%s' already exists", id)
		} else if !errors.Is(err, domain.ErrSessionNotFound) {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		update, err := eng.Do(cmd.Context(), id, func(ctx context.Context, s *editor.Session) error {
			if name != "" {
				s.RenameSite(ctx, name)
			}
			return nil
		})
		if err != nil {
			return err
		}
		site := update.Current
		fmt.Fprintf(cmd.OutOrStdout(), "Created session '%s' (%s, %d page(s))\n", id, site.SiteName, len(site.Pages))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("name", "", "Site name (defaults to the built-in name)")
}
