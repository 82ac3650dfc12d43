package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pageforge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pageforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pageforge version %s\n", strings.TrimSpace(pageforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
