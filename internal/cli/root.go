// Package cli wires the stampede commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stampede-dev/stampede/internal/config"
	"github.com/stampede-dev/stampede/internal/logging"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "stampede",
	Short:   "Shape, inspect and monitor HTTP load tests",
	Version: version,
	Long: `Stampede builds staged load profiles (spike, ramp-up, steady,
stress-ramp) for an external load engine, validates target responses
before a run, and exports the engine's live statistics to Prometheus.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	RootCmd.PersistentFlags().String("log-file", "", "Also log to this file (rotated)")

	RootCmd.AddCommand(profileCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(exportCmd)
}

// loadConfig reads the config named by --config (or the defaults) and
// builds the logger from the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	logFile, _ := cmd.Flags().GetString("log-file")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if logFile == "" {
		logFile = cfg.Log.File
	}
	logger := logging.New(logging.Options{
		Verbose:  verbose || cfg.Log.Verbose,
		NoColor:  noColor,
		FilePath: logFile,
	})

	return cfg, logger, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
