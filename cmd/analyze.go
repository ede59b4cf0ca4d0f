package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codepathfinder/polyglot-callgraph/analytics"
	"github.com/codepathfinder/polyglot-callgraph/internal/config"
	"github.com/codepathfinder/polyglot-callgraph/internal/diagnostics"
	"github.com/codepathfinder/polyglot-callgraph/internal/pipeline"
	"github.com/codepathfinder/polyglot-callgraph/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <paths...>",
	Short: "Analyze source trees and emit class hierarchies and resolved call sites",
	Long: `analyze walks the given files and directories, extracts class/struct/
trait/interface definitions, detects call sites, resolves receiver types and
method dispatch, and writes the results in the requested format.

Examples:
  analyzer analyze ./src
  analyzer analyze ./src --lang js,ts --format json
  analyzer analyze ./src --format sarif --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("lang", "", "comma-separated languages to analyze (js,ts,py,rs); default all")
	analyzeCmd.Flags().String("format", "text", "output format: text, json, or sarif")
	analyzeCmd.Flags().Int("workers", 0, "worker pool size; default runtime.NumCPU()")
	analyzeCmd.Flags().String("config", "", "operator-supplied language configuration YAML override")
	analyzeCmd.Flags().BoolP("verbose", "v", false, "show progress and statistics")
	analyzeCmd.Flags().Bool("debug", false, "show per-file debug diagnostics")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	langFlag, _ := cmd.Flags().GetString("lang")
	format, _ := cmd.Flags().GetString("format")
	workers, _ := cmd.Flags().GetInt("workers")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")
	disableMetrics, _ := cmd.Flags().GetBool("disable-metrics")

	if format != "text" && format != "json" && format != "sarif" {
		return fmt.Errorf("analyze: unknown --format %q (want text, json, or sarif)", format)
	}

	languages, err := config.ParseLanguages(langFlag)
	if err != nil {
		return err
	}

	settings := config.Settings{
		Workers:        workers,
		Format:         format,
		Languages:      languages,
		ConfigPath:     configPath,
		DisableMetrics: disableMetrics,
	}

	table, err := settings.BuildTable()
	if err != nil {
		return err
	}

	verbosity := output.VerbosityDefault
	if debug {
		verbosity = output.VerbosityDebug
	} else if verbose {
		verbosity = output.VerbosityVerbose
	}
	logger := output.NewLogger(verbosity)

	files, err := discoverFiles(args)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	logger.Progress(color.GreenString("Discovered %d candidate files", len(files)))

	sink := diagnostics.NewSink()
	result, err := pipeline.Run(context.Background(), files, pipeline.Options{
		Workers:   settings.Workers,
		Table:     table,
		Logger:    logger,
		Sink:      sink,
		Languages: languages,
	})
	if err != nil {
		analytics.ReportEvent(analytics.EventAnalyzeError)
		return fmt.Errorf("analyze: %w", err)
	}
	logger.PrintTimingSummary()

	var classCount, callCount int
	var langsSeen []string
	seen := map[string]bool{}
	for _, f := range result.Files {
		classCount += len(f.Classes)
		callCount += len(f.FunctionCalls) + len(f.MethodCalls) + len(f.ConstructorCalls)
	}
	for lang := range languages {
		if !seen[string(lang)] {
			seen[string(lang)] = true
			langsSeen = append(langsSeen, string(lang))
		}
	}
	analytics.ReportRunSummary(len(result.Files), langsSeen, classCount, callCount)

	return writeResults(cmd, format, result)
}

func writeResults(cmd *cobra.Command, format string, result *pipeline.Result) error {
	opts := output.NewDefaultOptions()
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		opts.Verbosity = output.VerbosityVerbose
	}

	switch format {
	case "json":
		return output.NewJSONFormatter(opts).Format(result.Files, result.Diagnostics)
	case "sarif":
		return output.NewSARIFFormatter(opts).Format(result.Files)
	default:
		return output.NewTextFormatter(opts).Format(result.Files, result.Diagnostics)
	}
}

// discoverFiles expands each argument into a flat file list: a file path is
// taken as-is, a directory is walked recursively. Extension filtering by
// supported language happens later, in the pipeline itself.
func discoverFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
