package script

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/djhshih/qlsub/internal/joblist"
	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// Options are the invocation-wide settings shared by every generated script.
type Options struct {
	ExtraOptions string   // extra submit options, written as one directive line
	Prefix       string   // payload prefix command placed before the input/output pair
	WorkDir      string   // working directory restored before the payload runs
	ExportEnv    bool     // include the caller-environment export directive
	ModuleLines  []string // environment-module statements, already in forcing form
}

// Generator renders executable job scripts for one resolved manager profile.
// It writes files and nothing else: no scheduler interaction happens here.
type Generator struct {
	profile *scheduler.Profile
	opts    Options
}

// New returns a Generator for the given profile and invocation options.
func New(profile *scheduler.Profile, opts Options) *Generator {
	return &Generator{profile: profile, opts: opts}
}

// WriteRecord renders the job script for one record and writes it executable,
// overwriting any prior version. The script re-checks the completion marker
// before running the payload and records the payload's exit status into the
// marker even when the payload fails.
func (g *Generator) WriteRecord(rec joblist.Record) error {
	file, err := os.Create(rec.Script)
	if err != nil {
		return NewWriteError(rec.Stem, rec.Script, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	g.writeHeader(w, rec.Stem, "")
	g.writeGuard(w, rec)
	g.writePayload(w, rec)

	if err := w.Flush(); err != nil {
		return NewWriteError(rec.Stem, rec.Script, err)
	}
	if err := os.Chmod(rec.Script, utils.PermExec); err != nil {
		return NewWriteError(rec.Stem, rec.Script, err)
	}
	return nil
}

// writeHeader emits the shebang, the manager directives, the core-dump limit,
// the module statements, and the strict-failure preamble. arrayRange is empty
// for per-record scripts and "1-N" for the aggregate.
func (g *Generator) writeHeader(w io.Writer, jobName, arrayRange string) {
	p := g.profile

	fmt.Fprintln(w, "#!/bin/bash")
	fmt.Fprintln(w, p.Directive(p.NameFlag, jobName))
	if arrayRange != "" {
		fmt.Fprintln(w, p.Directive(p.ArrayFlag, arrayRange))
	}
	if g.opts.ExportEnv {
		fmt.Fprintln(w, p.DirectiveRaw(p.EnvFlag))
	}
	if g.opts.ExtraOptions != "" {
		fmt.Fprintln(w, p.DirectiveRaw(g.opts.ExtraOptions))
	}
	fmt.Fprintln(w, "")

	// No core dumps on compute nodes; a failed payload reruns anyway.
	fmt.Fprintln(w, "ulimit -c 0")
	fmt.Fprintln(w, "")

	if len(g.opts.ModuleLines) > 0 {
		for _, line := range g.opts.ModuleLines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, "set -euo pipefail")
	fmt.Fprintln(w, "")
}

// writeGuard emits the in-script marker re-check. The record may have been
// queued before an earlier submission of it finished, so the script verifies
// completion again right before doing any work.
func (g *Generator) writeGuard(w io.Writer, rec joblist.Record) {
	fmt.Fprintf(w, "status_file=%s\n", quote(rec.Marker))
	fmt.Fprintln(w, `if [ -e "$status_file" ] && [ "$(cat "$status_file" 2>/dev/null)" = "0" ]; then`)
	fmt.Fprintf(w, "    echo \"already completed: %s\"\n", rec.Output)
	fmt.Fprintln(w, "    exit 0")
	fmt.Fprintln(w, "fi")
	fmt.Fprintln(w, "")
}

// writePayload emits the working-directory restore, the payload invocation,
// and the exit-status capture into the marker.
func (g *Generator) writePayload(w io.Writer, rec joblist.Record) {
	fmt.Fprintf(w, "cd %s\n", quote(g.opts.WorkDir))
	fmt.Fprintln(w, "")

	payload := fmt.Sprintf("%s %s", quote(rec.Input), quote(rec.Output))
	if g.opts.Prefix != "" {
		payload = g.opts.Prefix + " " + payload
	}

	fmt.Fprintln(w, "status=0")
	fmt.Fprintf(w, "%s || status=$?\n", payload)
	fmt.Fprintln(w, `echo "$status" > "$status_file"`)
	fmt.Fprintln(w, `exit "$status"`)
}

// quote wraps a path in double quotes for the generated shell text.
func quote(s string) string {
	return "\"" + s + "\""
}
