package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/djhshih/qlsub/internal/config"
	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// configKeys is the list of known configuration keys for shell completion
var configKeys = []string{
	"scheduler",
	"submit_cmd",
	"out_dir",
	"history_file",
	"export_env",
	"marker_suffix",
}

// configKeysCompletion returns config keys for shell completion
func configKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		// First arg: complete config keys
		return configKeys, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		// Second arg: complete values based on the key
		return configValueCompletion(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configValueCompletion returns suggested values for a config key
func configValueCompletion(key string) []string {
	switch key {
	case "scheduler":
		return []string{"sge", "pbs", "lsf", "slurm"}
	case "submit_cmd":
		return []string{"qsub", "bsub", "sbatch"}
	case "export_env":
		return []string{"true", "false"}
	default:
		return nil
	}
}

func isConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}
	return false
}

// orHint renders a value, or a dimmed hint when the value is empty.
func orHint(value, hint string) string {
	if value == "" {
		return utils.StyleDebug(hint)
	}
	return value
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage qlsub configuration",
	Long: `Manage qlsub configuration settings.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (QLSUB_*)
  3. User config file (~/.config/qlsub/config.yaml)
  4. System config file (/etc/qlsub/config.yaml)
  5. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(utils.StyleTitle("Effective configuration:"))
		fmt.Printf("  scheduler:     %s\n", orHint(config.Global.Scheduler, "(auto-detect)"))
		fmt.Printf("  submit_cmd:    %s\n", orHint(config.Global.SubmitCmd, "(profile default)"))
		fmt.Printf("  out_dir:       %s\n", config.Global.OutDir)
		fmt.Printf("  history_file:  %s\n", orHint(config.Global.HistoryFile, "(disabled)"))
		fmt.Printf("  export_env:    %t\n", config.Global.ExportEnv)
		fmt.Printf("  marker_suffix: %s\n", config.Global.MarkerSuffix)

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Println()
			fmt.Printf("  config file:   %s\n", utils.StylePath(used))
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print one configuration value",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: configKeysCompletion,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !isConfigKey(key) {
			return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(configKeys, ", "))
		}
		fmt.Println(viper.GetString(key))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>",
	Short:             "Set a configuration value and save it to the user config",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeysCompletion,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !isConfigKey(key) {
			return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(configKeys, ", "))
		}
		if key == "scheduler" && value != "" {
			if _, err := scheduler.ParseKind(value); err != nil {
				return err
			}
		}

		viper.Set(key, value)
		if err := config.SaveConfig(); err != nil {
			return err
		}

		path, _ := config.GetUserConfigPath()
		utils.PrintSuccess("Set %s = %s in %s", utils.StyleName(key), value, utils.StylePath(path))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the user config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetUserConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write the current effective configuration to the user config file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(); err != nil {
			return err
		}

		path, _ := config.GetUserConfigPath()
		utils.PrintSuccess("Config written to %s", utils.StylePath(path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}
