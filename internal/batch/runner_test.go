package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djhshih/qlsub/internal/dispatch"
	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// fakeSubmitter records submissions and fails on demand.
type fakeSubmitter struct {
	calls []string
	fail  map[string]error // script base name -> error
	ack   string
}

func (f *fakeSubmitter) Submit(scriptPath string) (string, error) {
	f.calls = append(f.calls, scriptPath)
	if err, ok := f.fail[filepath.Base(scriptPath)]; ok {
		return "", err
	}
	return f.ack, nil
}

func (f *fakeSubmitter) bases() []string {
	var names []string
	for _, call := range f.calls {
		names = append(names, filepath.Base(call))
	}
	return names
}

// testInvocation builds a normalized three-record invocation rooted in a
// temporary directory.
func testInvocation(t *testing.T, kind scheduler.Kind) Invocation {
	t.Helper()
	dir := t.TempDir()
	list := filepath.Join(dir, "samples.txt")
	lines := "a.txt\nb.txt\nc.txt\n"
	require.NoError(t, os.WriteFile(list, []byte(lines), 0644))

	inv := Invocation{
		ListPath:  list,
		Kind:      kind,
		OutDir:    filepath.Join(dir, "out"),
		Ext:       "rds",
		Prefix:    "Rscript fit.R",
		ExportEnv: true,
		WorkDir:   dir,
	}
	require.NoError(t, inv.Normalize())
	require.NoError(t, inv.Validate())
	return inv
}

// writeMarker plants a completion marker for one stem.
func writeMarker(t *testing.T, inv Invocation, stem, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(inv.OutDir, 0775))
	path := filepath.Join(inv.OutDir, stem+".rds.status")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunGeneratesAndSubmits(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	sub := &fakeSubmitter{ack: "Your job 101 has been submitted"}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	summary, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, &Summary{Records: 3, Generated: 3, Submitted: 3}, summary)
	assert.Equal(t, []string{"a.sh", "b.sh", "c.sh"}, sub.bases())
	for _, stem := range []string{"a", "b", "c"} {
		assert.True(t, utils.FileExists(filepath.Join(inv.ScriptDir, stem+".sh")),
			"script for %s not written", stem)
	}
}

func TestRunSkipsCompleted(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	writeMarker(t, inv, "b", "0\n")
	sub := &fakeSubmitter{}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	summary, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, &Summary{Records: 3, Skipped: 1, Generated: 2, Submitted: 2}, summary)
	assert.Equal(t, []string{"a.sh", "c.sh"}, sub.bases())
	assert.False(t, utils.FileExists(filepath.Join(inv.ScriptDir, "b.sh")),
		"script regenerated for a completed record")
}

func TestRunRerunsFailedAndAmbiguous(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	writeMarker(t, inv, "a", "1\n")
	writeMarker(t, inv, "b", "terminated\n")
	sub := &fakeSubmitter{}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	summary, err := runner.Run()
	require.NoError(t, err)

	// Nonzero and unreadable markers both mean the record must run.
	assert.Equal(t, &Summary{Records: 3, Generated: 3, Submitted: 3}, summary)
	assert.Equal(t, []string{"a.sh", "b.sh", "c.sh"}, sub.bases())
}

func TestRunIsolatesSubmitFailures(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	sub := &fakeSubmitter{fail: map[string]error{"b.sh": errors.New("queue rejected")}}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	summary, err := runner.Run()
	require.NoError(t, err, "per-record failures must not abort the run")

	assert.Equal(t, 3, len(sub.calls), "remaining records were not attempted")
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Submitted)

	m, err := ReadManifest(inv.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, ActionSubmitted, m.Records[0].Action)
	assert.Equal(t, ActionFailed, m.Records[1].Action)
	assert.Equal(t, ActionSubmitted, m.Records[2].Action)
}

func TestRunDryRun(t *testing.T) {
	inv := testInvocation(t, scheduler.Slurm)
	inv.DryRun = true

	// A real dispatcher with a nonexistent command proves nothing executes.
	profile, err := scheduler.Resolve(inv.Kind)
	require.NoError(t, err)
	d := dispatch.New(profile, filepath.Join(t.TempDir(), "no-such-submit"), true)

	runner, err := NewRunner(inv, d)
	require.NoError(t, err)
	summary, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, &Summary{Records: 3, Generated: 3}, summary)
	for _, stem := range []string{"a", "b", "c"} {
		assert.True(t, utils.FileExists(filepath.Join(inv.ScriptDir, stem+".sh")),
			"dry run must still write the script for %s", stem)
	}

	m, err := ReadManifest(inv.ManifestPath())
	require.NoError(t, err)
	assert.True(t, m.DryRun)
	for _, rec := range m.Records {
		assert.Equal(t, ActionGenerated, rec.Action)
	}
}

func TestRunArrayMode(t *testing.T) {
	inv := testInvocation(t, scheduler.Slurm)
	inv.ArrayMode = true
	sub := &fakeSubmitter{ack: "Submitted batch job 42"}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	summary, err := runner.Run()
	require.NoError(t, err)

	// One aggregate submission instead of three per-record ones.
	assert.Equal(t, []string{"samples.array.sh"}, sub.bases())
	assert.Equal(t, 3, summary.Generated)
	assert.Equal(t, 3, summary.Submitted)

	for i := 1; i <= 3; i++ {
		path := filepath.Join(inv.ScriptDir, fmt.Sprintf("samples.%d.sh", i))
		assert.True(t, utils.FileExists(path), "per-task script %d not written", i)
	}

	data, err := os.ReadFile(inv.ArrayScriptPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "#SBATCH --array=1-3")
	assert.Contains(t, string(data), "samples.$SLURM_ARRAY_TASK_ID.sh")

	m, err := ReadManifest(inv.ManifestPath())
	require.NoError(t, err)
	for _, rec := range m.Records {
		assert.Equal(t, ActionSubmitted, rec.Action)
	}
}

func TestNewRunnerRejectsArrayWithoutSupport(t *testing.T) {
	inv := testInvocation(t, scheduler.LSF)
	inv.ArrayMode = true

	_, err := NewRunner(inv, &fakeSubmitter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, scheduler.ErrArrayUnsupported))

	// The rejection happens before any directory or script exists.
	assert.False(t, utils.DirExists(inv.OutDir))
	assert.False(t, utils.DirExists(inv.ScriptDir))
}

func TestRunArraySubmitFailure(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	inv.ArrayMode = true
	sub := &fakeSubmitter{fail: map[string]error{"samples.array.sh": errors.New("qsub: rejected")}}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	summary, err := runner.Run()
	require.Error(t, err)

	// Records were generated; the manifest records them as such.
	assert.Equal(t, 3, summary.Generated)
	assert.Equal(t, 0, summary.Submitted)
	m, readErr := ReadManifest(inv.ManifestPath())
	require.NoError(t, readErr)
	for _, rec := range m.Records {
		assert.Equal(t, ActionGenerated, rec.Action)
	}
}

func TestRunDirMode(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	inv.DirMode = true
	inv.Ext = ""
	require.NoError(t, inv.Validate())
	sub := &fakeSubmitter{}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	_, err = runner.Run()
	require.NoError(t, err)

	for _, stem := range []string{"a", "b", "c"} {
		assert.True(t, utils.DirExists(filepath.Join(inv.OutDir, stem)),
			"output directory for %s not created", stem)
	}
}

func TestRunModulesFile(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	modules := filepath.Join(t.TempDir(), "env.dk")
	require.NoError(t, os.WriteFile(modules, []byte("use Java-1.8\nuse .bio\n"), 0644))
	inv.ModulesFile = modules

	runner, err := NewRunner(inv, &fakeSubmitter{})
	require.NoError(t, err)
	_, err = runner.Run()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(inv.ScriptDir, "a.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "reuse Java-1.8")
	assert.Contains(t, string(data), "reuse .bio")
	assert.NotContains(t, string(data), "\nuse Java-1.8")
}

func TestRunManifestContents(t *testing.T) {
	inv := testInvocation(t, scheduler.SGE)
	sub := &fakeSubmitter{}

	runner, err := NewRunner(inv, sub)
	require.NoError(t, err)
	_, err = runner.Run()
	require.NoError(t, err)

	m, err := ReadManifest(inv.ManifestPath())
	require.NoError(t, err)

	assert.Equal(t, inv.RunID, m.RunID)
	assert.Equal(t, "samples", m.Name)
	assert.Equal(t, "sge", m.Scheduler)
	assert.Equal(t, inv.ListPath, m.List)
	require.Len(t, m.Records, 3)
	for i, rec := range m.Records {
		assert.Equal(t, i+1, rec.Index)
		assert.True(t, strings.HasSuffix(rec.Marker, ".rds.status"),
			"marker path %q missing suffix", rec.Marker)
		assert.True(t, filepath.IsAbs(rec.Input), "input path %q not absolute", rec.Input)
	}
}
