// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"

	"fjacquet/stmt-csv/internal/config"
	"fjacquet/stmt-csv/internal/container"
	"fjacquet/stmt-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	DryRun bool
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for subcommands
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "stmt-csv",
		Short: "A CLI tool to import Taiwanese bank and credit-card statements into categorized CSV records.",
		Long: `stmt-csv is a CLI tool that parses pasted bank and credit-card statement text
or spreadsheet exports, assigns stable record IDs, applies replacement and
category rules, and reconciles the result against a local record store.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to stmt-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := initialize(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags are the flags common to the import commands
	SharedFlags = CommonFlags{}
)

// initialize loads the configuration and wires the container.
func initialize() error {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	AppConfig = cfg
	Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	logging.SetLogger(Log)

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	AppContainer = c
	return nil
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (\"-\" reads standard input)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "CSV output prefix, one file per record family")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.DryRun, "dry-run", "n", false, "Do not save accepted records to the record store")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "text", "Report format: text, json or yaml")
}

// GetContainer returns the application container, or nil before initialization.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}
