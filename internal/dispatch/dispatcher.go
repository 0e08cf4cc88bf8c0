package dispatch

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// Dispatcher hands generated scripts to the batch manager's submit command.
type Dispatcher struct {
	profile *scheduler.Profile
	command string
	dryRun  bool
}

// New creates a Dispatcher for the resolved profile. command overrides the
// profile's default submit command when non-empty.
func New(profile *scheduler.Profile, command string, dryRun bool) *Dispatcher {
	if command == "" {
		command = profile.SubmitCommand
	}
	return &Dispatcher{
		profile: profile,
		command: command,
		dryRun:  dryRun,
	}
}

// Command returns the submit command the dispatcher invokes.
func (d *Dispatcher) Command() string {
	return d.command
}

// DryRun reports whether the dispatcher is in dry-run mode.
func (d *Dispatcher) DryRun() bool {
	return d.dryRun
}

// Args builds the argument vector for one script. Managers that only honor
// log redirection on the submit command line (LSF) get the redirection flags
// appended after the script path.
func (d *Dispatcher) Args(scriptPath string) []string {
	args := []string{scriptPath}
	if d.profile.SubmitLogFlags {
		args = append(args, "-o", scriptPath+".out", "-e", scriptPath+".err")
	}
	return args
}

// Submit hands one script to the batch manager and returns the manager's
// trimmed acknowledgement output. In dry-run mode nothing is executed: the
// command line that would run is printed and the call succeeds with empty
// output.
func (d *Dispatcher) Submit(scriptPath string) (string, error) {
	args := d.Args(scriptPath)

	if d.dryRun {
		utils.PrintMessage("dry run: %s", utils.StyleCommand(d.command+" "+strings.Join(args, " ")))
		return "", nil
	}

	utils.PrintDebug("submitting: %s %s", d.command, strings.Join(args, " "))
	cmd := exec.Command(d.command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", NewSubmitError(string(d.profile.Kind), filepath.Base(scriptPath), string(output), err)
	}
	return strings.TrimSpace(string(output)), nil
}
