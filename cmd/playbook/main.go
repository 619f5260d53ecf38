package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "playbook"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Multi-strategy trade decision engine",
		Version: version,
		Long: `Playbook turns pre-computed multi-timeframe indicator snapshots into a single
best actionable trade recommendation, chosen among competing rule-based
strategies with their own gatekeepers, confidence scoring, and risk geometry.`,
	}

	decideCmd := &cobra.Command{
		Use:   "decide",
		Short: "Run the decision cascade on a snapshot file",
		Long:  "Evaluate all strategies against a JSON snapshot file and print the composite decision",
		RunE:  runDecide,
	}
	decideCmd.Flags().String("input", "", "Path to JSON file with symbol and per-timeframe snapshots")
	decideCmd.Flags().String("mode", "STANDARD", "Operating mode (STANDARD|AGGRESSIVE)")
	decideCmd.Flags().String("strategy", "", "Evaluate only this strategy instead of the cascade")
	decideCmd.Flags().String("profiles", "", "Optional yaml profile table overriding the built-in thresholds")
	_ = decideCmd.MarkFlagRequired("input")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decision engine over HTTP",
		Long:  "Expose POST /v1/decide, GET /health and GET /metrics on a local-only listener",
		RunE:  runServe,
	}
	serveCmd.Flags().String("host", "127.0.0.1", "Listen host")
	serveCmd.Flags().Int("port", 8080, "Listen port")
	serveCmd.Flags().String("profiles", "", "Optional yaml profile table overriding the built-in thresholds")

	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
