package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codepathfinder/polyglot-callgraph/analytics"
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "polyglot-callgraph - multi-language call-graph and class-hierarchy analyzer",
	Long: `analyzer builds class hierarchies and resolves call sites across
JavaScript, TypeScript, Python and Rust source trees.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")
}
