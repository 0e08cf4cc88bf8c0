package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/djhshih/qlsub/internal/config"
	"github.com/djhshih/qlsub/internal/dispatch"
	"github.com/djhshih/qlsub/internal/utils"
)

var (
	debugMode bool
	quietMode bool
)

var rootCmd = &cobra.Command{
	Use:           "qlsub",
	Short:         "qlsub: generate and submit idempotent cluster jobs from a list of input files.",
	Version:       config.VERSION,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load defaults
		config.LoadDefaults()

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			utils.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: Load values from Viper into Global config
		config.LoadFromViper()

		// Step 4: Apply command-line flags (highest priority)
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("qlsub Version: %s", utils.StyleInfo(config.VERSION))
			if config.Global.Scheduler != "" {
				utils.PrintDebug("Configured scheduler: %s", config.Global.Scheduler)
			}
		}

		if quietMode {
			utils.QuietMode = true
			config.Global.Quiet = true
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra's automatic error printing is silenced. For submit-command
		// failures print the captured scheduler output (trimmed) and exit
		// non-zero. For other errors, print the default error string.
		if se, ok := err.(*dispatch.SubmitError); ok {
			out := strings.TrimSpace(se.Output)
			if out != "" {
				fmt.Fprintln(os.Stderr, out)
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress informational output (errors still shown)")
}
