package batch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/djhshih/qlsub/internal/joblist"
	"github.com/djhshih/qlsub/internal/utils"
)

// Action records what the run did with one record.
type Action string

const (
	ActionSkipped   Action = "skipped"   // marker proved completion
	ActionGenerated Action = "generated" // script written, not submitted
	ActionSubmitted Action = "submitted" // script written and handed to the manager
	ActionFailed    Action = "failed"    // script write or submission failed
)

// Manifest is the per-run record written next to the generated scripts.
// Humans and tests read it; the run logic never does.
type Manifest struct {
	RunID     string          `yaml:"run_id"`
	Name      string          `yaml:"name"`
	Scheduler string          `yaml:"scheduler"`
	SubmitCmd string          `yaml:"submit_cmd,omitempty"`
	Options   string          `yaml:"options,omitempty"`
	CreatedAt time.Time       `yaml:"created_at"`
	WorkDir   string          `yaml:"work_dir"`
	List      string          `yaml:"list"`
	DryRun    bool            `yaml:"dry_run"`
	Array     bool            `yaml:"array"`
	Records   []ManifestEntry `yaml:"records"`
}

// ManifestEntry is one record's outcome.
type ManifestEntry struct {
	Index  int    `yaml:"index"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Marker string `yaml:"marker"`
	Script string `yaml:"script"`
	Action Action `yaml:"action"`
}

// NewManifest starts a manifest for one invocation.
func NewManifest(inv Invocation) *Manifest {
	return &Manifest{
		RunID:     inv.RunID,
		Name:      inv.Name,
		Scheduler: string(inv.Kind),
		SubmitCmd: inv.SubmitCmd,
		Options:   inv.Options,
		CreatedAt: time.Now(),
		WorkDir:   inv.WorkDir,
		List:      inv.ListPath,
		DryRun:    inv.DryRun,
		Array:     inv.ArrayMode,
	}
}

// Add appends one record outcome.
func (m *Manifest) Add(rec joblist.Record, action Action) {
	m.Records = append(m.Records, ManifestEntry{
		Index:  rec.Index,
		Input:  rec.Input,
		Output: rec.Output,
		Marker: rec.Marker,
		Script: rec.Script,
		Action: action,
	})
}

// MarkSubmitted promotes generated records to submitted. Used after a
// successful aggregate array submission, which submits every generated
// record at once.
func (m *Manifest) MarkSubmitted() {
	for i := range m.Records {
		if m.Records[i].Action == ActionGenerated {
			m.Records[i].Action = ActionSubmitted
		}
	}
}

// Write marshals the manifest and writes it atomically (temp file + rename),
// so a crashed run never leaves a truncated manifest behind.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return utils.WriteFileAtomic(path, data, utils.PermFile)
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
