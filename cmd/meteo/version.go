package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/meteo/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "meteo %s (commit=%s, built=%s, go=%s)\n",
			info.Version, info.Commit, info.BuildDate, info.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
