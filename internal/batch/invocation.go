package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/djhshih/qlsub/internal/joblist"
	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// Invocation is the fully resolved option set for one submission run.
// Normalize it once; afterwards the Runner only reads it.
type Invocation struct {
	ListPath     string         // input list file
	Name         string         // batch name; stem of the list when empty
	Kind         scheduler.Kind // manager identity
	OutDir       string         // output directory
	Ext          string         // output extension (file mode)
	DirMode      bool           // outputs are directories named after the stem
	ArrayMode    bool           // one task-array submission instead of per-record
	DryRun       bool           // generate scripts, never submit
	SubmitCmd    string         // submit command override
	Options      string         // extra manager options, one directive line
	Prefix       string         // payload prefix command
	ModulesFile  string         // optional environment-module file
	ExportEnv    bool           // include the caller-environment export directive
	ScriptDir    string         // where scripts are written; <OutDir>/scripts when empty
	WorkDir      string         // working directory restored inside each script
	MarkerSuffix string         // completion-marker filename suffix
	RunID        string         // unique run identifier
}

// Normalize fills derived fields and absolutizes paths.
func (inv *Invocation) Normalize() error {
	if inv.ListPath != "" {
		if abs, err := filepath.Abs(inv.ListPath); err == nil {
			inv.ListPath = abs
		}
	}
	if inv.Name == "" && inv.ListPath != "" {
		inv.Name = utils.Stem(inv.ListPath)
	}
	if inv.OutDir == "" {
		inv.OutDir = "out"
	}
	if abs, err := filepath.Abs(inv.OutDir); err == nil {
		inv.OutDir = abs
	}
	if inv.ScriptDir == "" {
		inv.ScriptDir = filepath.Join(inv.OutDir, "scripts")
	}
	if abs, err := filepath.Abs(inv.ScriptDir); err == nil {
		inv.ScriptDir = abs
	}
	if inv.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		inv.WorkDir = wd
	}
	if inv.RunID == "" {
		inv.RunID = uuid.NewString()
	}
	return nil
}

// Validate checks the arguments a run cannot proceed without.
func (inv *Invocation) Validate() error {
	if inv.ListPath == "" {
		return fmt.Errorf("%w: input list file", ErrMissingArgument)
	}
	if !inv.DirMode && inv.Ext == "" {
		return fmt.Errorf("%w: output extension (--ext) in file mode", ErrMissingArgument)
	}
	return nil
}

// RecordOptions derives the record-building options for this invocation.
func (inv *Invocation) RecordOptions() joblist.Options {
	return joblist.Options{
		OutDir:       inv.OutDir,
		Ext:          inv.Ext,
		DirMode:      inv.DirMode,
		ScriptDir:    inv.ScriptDir,
		ArrayMode:    inv.ArrayMode,
		BatchName:    inv.Name,
		MarkerSuffix: inv.MarkerSuffix,
	}
}

// ManifestPath returns where this run's manifest is written.
func (inv *Invocation) ManifestPath() string {
	return filepath.Join(inv.ScriptDir, inv.Name+".manifest.yaml")
}

// ArrayScriptPath returns the aggregate task-array script path.
func (inv *Invocation) ArrayScriptPath() string {
	return filepath.Join(inv.ScriptDir, inv.Name+".array.sh")
}

// CommandLine reconstructs the invocation as a command line for the history
// record. It is rebuilt from resolved options rather than raw arguments so
// defaulted and configured values show up explicitly.
func (inv *Invocation) CommandLine() []string {
	args := []string{"qlsub", "submit", inv.ListPath, "-s", string(inv.Kind), "-o", inv.OutDir}
	if inv.DirMode {
		args = append(args, "-d")
	} else {
		args = append(args, "-e", inv.Ext)
	}
	if inv.Prefix != "" {
		args = append(args, "-p", inv.Prefix)
	}
	if inv.Options != "" {
		args = append(args, "-O", inv.Options)
	}
	if inv.ModulesFile != "" {
		args = append(args, "-m", inv.ModulesFile)
	}
	if inv.ArrayMode {
		args = append(args, "-a")
	}
	if inv.DryRun {
		args = append(args, "-n")
	}
	if !inv.ExportEnv {
		args = append(args, "--no-export")
	}
	if inv.SubmitCmd != "" {
		args = append(args, "--submit-cmd", inv.SubmitCmd)
	}
	return args
}
