package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codepathfinder/polyglot-callgraph/analytics"
)

// Version and GitCommit are set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and commit information",
	Run: func(_ *cobra.Command, _ []string) {
		analytics.ReportEvent(analytics.EventVersionCommand)
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
