package cmd

import (
	"github.com/spf13/cobra"

	"github.com/djhshih/qlsub/internal/batch"
	"github.com/djhshih/qlsub/internal/config"
	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// PathFlags holds the record-path flags shared by submit, status, and clean.
// All three must derive identical output, marker, and script paths from a
// list, so they register the same flag set.
type PathFlags struct {
	OutDir    string
	Ext       string
	DirMode   bool
	ScriptDir string
	Name      string
	Array     bool
}

// RegisterPathFlags registers the shared path flags on a cobra command
func RegisterPathFlags(cmd *cobra.Command, flags *PathFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.OutDir, "out-dir", "o", "", "output directory (config default: out)")
	f.StringVarP(&flags.Ext, "ext", "e", "", "output file extension (required unless --dirs)")
	f.BoolVarP(&flags.DirMode, "dirs", "d", false, "derive one output directory per record instead of a file")
	f.StringVar(&flags.ScriptDir, "script-dir", "", "directory for generated scripts (default: <out-dir>/scripts)")
	f.StringVar(&flags.Name, "name", "", "batch name (default: stem of the list file)")
	f.BoolVarP(&flags.Array, "array", "a", false, "task-array mode; scripts are named <name>.<index>.sh")
}

// Invocation assembles the shared parts of a run from the flags and the
// effective configuration. Callers fill command-specific fields afterwards
// and then Normalize/Validate.
func (p *PathFlags) Invocation(listPath string) batch.Invocation {
	outDir := p.OutDir
	if outDir == "" {
		outDir = config.Global.OutDir
	}
	return batch.Invocation{
		ListPath:     listPath,
		Name:         p.Name,
		OutDir:       outDir,
		Ext:          p.Ext,
		DirMode:      p.DirMode,
		ScriptDir:    p.ScriptDir,
		ArrayMode:    p.Array,
		ExportEnv:    config.Global.ExportEnv,
		MarkerSuffix: config.Global.MarkerSuffix,
	}
}

// resolveKind picks the manager identity: the flag wins, then the configured
// default, then PATH-based detection.
func resolveKind(flagValue string) (scheduler.Kind, error) {
	name := flagValue
	if name == "" {
		name = config.Global.Scheduler
	}
	if name == "" {
		kind, err := scheduler.Detect()
		if err != nil {
			return "", err
		}
		utils.PrintDebug("Detected scheduler: %s", utils.StyleInfo(string(kind)))
		return kind, nil
	}
	return scheduler.ParseKind(name)
}
