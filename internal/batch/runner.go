package batch

import (
	"fmt"
	"os"

	"github.com/djhshih/qlsub/internal/joblist"
	"github.com/djhshih/qlsub/internal/marker"
	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/script"
	"github.com/djhshih/qlsub/internal/utils"
)

// Submitter hands one generated script to the batch manager. Satisfied by
// dispatch.Dispatcher.
type Submitter interface {
	Submit(scriptPath string) (string, error)
}

// Summary counts what one run did.
type Summary struct {
	Records   int // records read from the list
	Skipped   int // completed records left alone
	Generated int // scripts written
	Submitted int // scripts handed to the manager
	Failed    int // records that failed to generate or submit
}

// Runner drives one submission run: scan records, gate each on its
// completion marker, generate scripts, dispatch, aggregate in array mode,
// and write the manifest.
type Runner struct {
	inv       Invocation
	profile   *scheduler.Profile
	submitter Submitter
}

// NewRunner resolves the manager profile and checks mode compatibility.
// Array mode against a manager without array syntax fails here, before any
// directory or file is touched.
func NewRunner(inv Invocation, submitter Submitter) (*Runner, error) {
	profile, err := scheduler.Resolve(inv.Kind)
	if err != nil {
		return nil, err
	}
	if inv.ArrayMode && !profile.SupportsArray() {
		return nil, fmt.Errorf("%w: %s has no array directive", scheduler.ErrArrayUnsupported, profile.Kind)
	}
	return &Runner{inv: inv, profile: profile, submitter: submitter}, nil
}

// Profile returns the resolved manager profile.
func (r *Runner) Profile() *scheduler.Profile {
	return r.profile
}

// Run executes the whole run and returns its summary. Per-record failures
// are reported and counted, never returned: one bad record does not stop the
// rest of the batch. Only configuration-level failures abort.
func (r *Runner) Run() (*Summary, error) {
	inv := r.inv

	var moduleLines []string
	if inv.ModulesFile != "" {
		lines, err := script.LoadModuleFile(inv.ModulesFile)
		if err != nil {
			return nil, err
		}
		moduleLines = lines
	}
	gen := script.New(r.profile, script.Options{
		ExtraOptions: inv.Options,
		Prefix:       inv.Prefix,
		WorkDir:      inv.WorkDir,
		ExportEnv:    inv.ExportEnv,
		ModuleLines:  moduleLines,
	})

	if err := utils.EnsureDir(inv.OutDir); err != nil {
		return nil, err
	}
	if err := utils.EnsureDir(inv.ScriptDir); err != nil {
		return nil, err
	}

	file, err := os.Open(inv.ListPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input list: %w", err)
	}
	defer file.Close()

	summary := &Summary{}
	manifest := NewManifest(inv)

	src := joblist.NewScanner(file, inv.RecordOptions())
	for src.Scan() {
		rec := src.Record()
		summary.Records++

		action, err := r.processRecord(gen, rec)
		if err != nil {
			utils.PrintError("record %d (%s): %v", rec.Index, rec.Stem, err)
			summary.Failed++
			action = ActionFailed
		}
		switch action {
		case ActionSkipped:
			summary.Skipped++
		case ActionGenerated:
			summary.Generated++
		case ActionSubmitted:
			summary.Generated++
			summary.Submitted++
		}
		manifest.Add(rec, action)
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input list: %w", err)
	}

	var arrayErr error
	if inv.ArrayMode && src.Count() > 0 {
		arrayErr = r.submitArray(gen, src.Count())
		if arrayErr == nil && !inv.DryRun {
			// The aggregate submission carries every generated record.
			summary.Submitted = summary.Generated
			manifest.MarkSubmitted()
		}
	}

	if err := manifest.Write(inv.ManifestPath()); err != nil {
		// Submissions already went out; losing the manifest is not fatal.
		utils.PrintWarning("manifest not written: %v", err)
	}

	if arrayErr != nil {
		return summary, arrayErr
	}
	return summary, nil
}

// processRecord decides and performs one record's work. The completion
// marker gates both generation and submission; absent, nonzero, and
// unreadable markers all mean the record must run.
func (r *Runner) processRecord(gen *script.Generator, rec joblist.Record) (Action, error) {
	if marker.Completed(rec.Marker) {
		utils.PrintMessage("skipping %s: already completed", utils.StyleName(rec.Stem))
		return ActionSkipped, nil
	}

	if r.inv.DirMode {
		if err := utils.EnsureDir(rec.Output); err != nil {
			return ActionFailed, err
		}
	}
	if err := gen.WriteRecord(rec); err != nil {
		return ActionFailed, err
	}
	if r.inv.ArrayMode {
		// The aggregate script submits array tasks after the stream.
		return ActionGenerated, nil
	}

	ack, err := r.submitter.Submit(rec.Script)
	if err != nil {
		return ActionFailed, err
	}
	if r.inv.DryRun {
		return ActionGenerated, nil
	}
	if ack != "" {
		utils.PrintMessage("%s: %s", utils.StyleName(rec.Stem), ack)
	}
	return ActionSubmitted, nil
}

// submitArray writes the aggregate task-array script and submits it once.
func (r *Runner) submitArray(gen *script.Generator, count int) error {
	path := r.inv.ArrayScriptPath()
	if err := gen.WriteArray(path, r.inv.Name, count, r.inv.ScriptDir); err != nil {
		return err
	}

	ack, err := r.submitter.Submit(path)
	if err != nil {
		return err
	}
	if !r.inv.DryRun && ack != "" {
		utils.PrintMessage("%s: %s", utils.StyleName(r.inv.Name), ack)
	}
	return nil
}
