package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/cmd/keyvars/commands"
	"github.com/systmms/keyvars/internal/config"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	code := run()
	memguard.Purge()
	os.Exit(code)
}

func run() int {
	var (
		configFile  string
		noColor     bool
		debug       bool
		metricsFile string
	)

	cfg := &config.Config{Metrics: metrics.New()}

	rootCmd := &cobra.Command{
		Use:   "keyvars",
		Short: "Namespaced environment variables in the OS keychain",
		Long: `keyvars keeps environment variables in the operating system's credential
store, grouped into a root namespace, per-service namespaces and
per-environment namespaces, and runs commands with the merged result.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write this run's counters in Prometheus text format to a file")

	rootCmd.AddCommand(
		commands.NewSetCommand(cfg),
		commands.NewGetCommand(cfg),
		commands.NewRmCommand(cfg),
		commands.NewLsCommand(cfg),
		commands.NewExecCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	err := rootCmd.Execute()

	if metricsFile != "" {
		if werr := cfg.Metrics.WriteFile(metricsFile); werr != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write metrics: %v\n", werr)
		}
	}

	var exitErr commands.ExitCodeError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}
