package config

import (
	"github.com/djhshih/qlsub/internal/history"
	"github.com/djhshih/qlsub/internal/joblist"
)

const VERSION = "0.2.1"

// Config holds global application settings
type Config struct {
	Debug   bool
	Quiet   bool
	Version string

	Scheduler    string // manager identity; empty means auto-detect per run
	SubmitCmd    string // submit command override; empty means profile default
	OutDir       string // default output directory
	HistoryFile  string // history record path; empty disables recording
	ExportEnv    bool   // include the caller-environment export directive
	MarkerSuffix string // completion-marker filename suffix
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to the built-in defaults.
func LoadDefaults() {
	Global = Config{
		Debug:   false,
		Quiet:   false,
		Version: VERSION,

		Scheduler:    "",
		SubmitCmd:    "",
		OutDir:       "out",
		HistoryFile:  history.DefaultPath(),
		ExportEnv:    true,
		MarkerSuffix: joblist.DefaultMarkerSuffix,
	}
}
