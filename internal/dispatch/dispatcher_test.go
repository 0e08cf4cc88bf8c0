package dispatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djhshih/qlsub/internal/scheduler"
)

func mustProfile(t *testing.T, kind scheduler.Kind) *scheduler.Profile {
	t.Helper()
	p, err := scheduler.Resolve(kind)
	require.NoError(t, err, "Resolve(%s)", kind)
	return p
}

// fakeSubmit writes a stand-in submit command and returns its path.
func fakeSubmit(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fakesubmit")
	content := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	return path
}

func TestArgsPerManager(t *testing.T) {
	script := "/work/out/scripts/a.sh"

	tests := []struct {
		kind scheduler.Kind
		want []string
	}{
		{scheduler.SGE, []string{script}},
		{scheduler.PBS, []string{script}},
		{scheduler.Slurm, []string{script}},
		{scheduler.LSF, []string{script, "-o", script + ".out", "-e", script + ".err"}},
	}

	for _, tt := range tests {
		d := New(mustProfile(t, tt.kind), "", false)
		assert.Equal(t, tt.want, d.Args(script), "args for %s", tt.kind)
	}
}

func TestNewCommandResolution(t *testing.T) {
	p := mustProfile(t, scheduler.Slurm)

	assert.Equal(t, "sbatch", New(p, "", false).Command())
	assert.Equal(t, "/opt/cluster/bin/sbatch", New(p, "/opt/cluster/bin/sbatch", false).Command())
}

func TestSubmitDryRunNeverExecutes(t *testing.T) {
	// A nonexistent command would fail loudly if it were ever executed.
	missing := filepath.Join(t.TempDir(), "no-such-submit")
	d := New(mustProfile(t, scheduler.SGE), missing, true)

	output, err := d.Submit("/work/out/scripts/a.sh")
	require.NoError(t, err)
	assert.Empty(t, output)
	assert.True(t, d.DryRun())
}

func TestSubmitReturnsAcknowledgement(t *testing.T) {
	cmd := fakeSubmit(t, `echo "Submitted batch job 42"`)
	d := New(mustProfile(t, scheduler.Slurm), cmd, false)

	output, err := d.Submit("/work/out/scripts/a.sh")
	require.NoError(t, err)
	assert.Equal(t, "Submitted batch job 42", output)
}

func TestSubmitCommandFailure(t *testing.T) {
	cmd := fakeSubmit(t, `echo "qsub: unknown queue" >&2; exit 1`)
	d := New(mustProfile(t, scheduler.SGE), cmd, false)

	_, err := d.Submit("/work/out/scripts/a.sh")
	require.Error(t, err)
	assert.True(t, IsSubmitError(err), "error type = %T", err)

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "sge", se.Manager)
	assert.Equal(t, "a.sh", se.Script)
	assert.Contains(t, se.Output, "qsub: unknown queue")
}

func TestSubmitCommandMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-submit")
	d := New(mustProfile(t, scheduler.PBS), missing, false)

	_, err := d.Submit("/work/out/scripts/a.sh")
	require.Error(t, err)
	assert.True(t, IsSubmitError(err), "error type = %T", err)
}
