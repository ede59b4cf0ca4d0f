// Package analytics reports coarse, anonymous usage counters — never source
// text or identifiers — gated by --disable-metrics (spec §1a, §4.9).
package analytics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
)

// Event names reported via ReportEvent.
const (
	EventAnalyzeCommand = "executed_analyze_command"
	EventVersionCommand = "executed_version_command"
	EventAnalyzeError   = "error_processing_analyze"
)

var (
	// PublicKey is the posthog project key. Left empty, ReportEvent is a
	// no-op regardless of enableMetrics.
	PublicKey     string
	enableMetrics bool
)

// Init sets whether usage events are reported, per --disable-metrics.
func Init(disableMetrics bool) {
	enableMetrics = !disableMetrics
}

func createEnvFile() {
	homeDir, err := os.UserHomeDir()
	envFile := filepath.Join(homeDir, ".polyglot-callgraph", ".env")
	if err != nil {
		fmt.Println("Error getting user home directory:", err)
		return
	}
	// create .env file
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// create directory
		if err := os.MkdirAll(filepath.Dir(envFile), os.ModePerm); err != nil {
			fmt.Println("Error creating directory:", err)
			return
		}
		env := map[string]string{
			"uuid": uuid.New().String(),
		}
		err = godotenv.Write(env, envFile)
		if err != nil {
			fmt.Println("Error writing to .env file:", err)
		}
	}
}

// LoadEnvFile ensures a local install identifier exists and loads it into
// the process environment.
func LoadEnvFile() {
	createEnvFile()
	envFile := filepath.Join(os.Getenv("HOME"), ".polyglot-callgraph", ".env")
	err := godotenv.Load(envFile)
	if err != nil {
		return
	}
}

// ReportEvent fires a single named counter event, when metrics are enabled
// and a public key is configured.
func ReportEvent(event string) {
	if enableMetrics && PublicKey != "" {
		client, err := posthog.NewWithConfig(
			PublicKey,
			posthog.Config{
				Endpoint: "https://us.i.posthog.com",
			},
		)
		if err != nil {
			fmt.Println(err)
			return
		}
		err = client.Enqueue(posthog.Capture{
			DistinctId: os.Getenv("uuid"),
			Event:      event,
		})
		defer client.Close()
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}

// ReportRunSummary fires coarse, non-identifying counters about one
// analysis run: how many files, which languages, how much was emitted.
// Never includes file paths, source text, or symbol names.
func ReportRunSummary(filesAnalyzed int, languages []string, classCount, callCount int) {
	if !enableMetrics || PublicKey == "" {
		return
	}
	client, err := posthog.NewWithConfig(
		PublicKey,
		posthog.Config{Endpoint: "https://us.i.posthog.com"},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close()
	err = client.Enqueue(posthog.Capture{
		DistinctId: os.Getenv("uuid"),
		Event:      EventAnalyzeCommand,
		Properties: posthog.NewProperties().
			Set("files_analyzed", filesAnalyzed).
			Set("languages", languages).
			Set("class_count", classCount).
			Set("call_count", callCount),
	})
	if err != nil {
		fmt.Println(err)
	}
}
