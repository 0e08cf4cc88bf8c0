package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/djhshih/qlsub/internal/history"
	"github.com/djhshih/qlsub/internal/joblist"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (QLSUB_*)
// 3. User config file (~/.config/qlsub/config.yaml)
// 4. System config file (/etc/qlsub/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// Set config search paths (order matters)
	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "qlsub"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".qlsub"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/qlsub")

	// Current directory (for development)
	viper.AddConfigPath(".")

	// Environment variables
	viper.SetEnvPrefix("QLSUB")
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults apply
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("scheduler", "")
	viper.SetDefault("submit_cmd", "")
	viper.SetDefault("out_dir", "out")
	viper.SetDefault("history_file", history.DefaultPath())
	viper.SetDefault("export_env", true)
	viper.SetDefault("marker_suffix", joblist.DefaultMarkerSuffix)
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".qlsub", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "qlsub", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	if scheduler := viper.GetString("scheduler"); scheduler != "" {
		Global.Scheduler = scheduler
	}
	if cmd := viper.GetString("submit_cmd"); cmd != "" {
		Global.SubmitCmd = cmd
	}
	if outDir := viper.GetString("out_dir"); outDir != "" {
		Global.OutDir = outDir
	}

	// An explicit empty history_file disables recording, so the value is
	// taken as-is rather than only when non-empty.
	Global.HistoryFile = viper.GetString("history_file")
	Global.ExportEnv = viper.GetBool("export_env")

	if suffix := viper.GetString("marker_suffix"); suffix != "" {
		Global.MarkerSuffix = suffix
	}
}
