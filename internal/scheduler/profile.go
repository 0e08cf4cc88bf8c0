package scheduler

import (
	"fmt"
	"strings"
)

// Kind identifies a batch resource-manager family.
type Kind string

const (
	SGE   Kind = "sge"
	PBS   Kind = "pbs"
	LSF   Kind = "lsf"
	Slurm Kind = "slurm"
)

// Profile holds everything manager-specific: the directive syntax a generated
// script must carry and the runtime variables the manager substitutes into a
// running job. Every other package is manager-agnostic and consumes only this.
type Profile struct {
	Kind            Kind   // manager identity
	DirectiveMarker string // comment prefix the manager scans for (e.g. "#SBATCH")
	NameFlag        string // flag that sets the job name
	ArrayFlag       string // flag that declares a task-array range; empty when unsupported
	EnvFlag         string // flag that exports the caller's environment into the job
	JobIDVar        string // runtime variable holding the job ID
	JobNameVar      string // runtime variable holding the job name
	TaskIndexVar    string // runtime variable holding the task-array index
	SubmitCommand   string // default submit command
	SubmitLogFlags  bool   // log redirection must be passed on the submit command line
}

// Kinds returns the supported manager kinds in canonical order.
func Kinds() []Kind {
	return []Kind{SGE, PBS, LSF, Slurm}
}

// Resolve maps a manager kind to its syntax profile. The profile is fully
// determined by the kind; an unknown kind fails with ErrUnsupportedManager
// before any file is touched.
func Resolve(kind Kind) (*Profile, error) {
	switch kind {
	case SGE:
		p := sgeProfile
		return &p, nil
	case PBS:
		p := pbsProfile
		return &p, nil
	case LSF:
		p := lsfProfile
		return &p, nil
	case Slurm:
		p := slurmProfile
		return &p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedManager, string(kind))
}

// ParseKind normalizes a manager name from flags or config into a Kind.
// Recognizes a few common aliases; anything else is ErrUnsupportedManager.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sge", "uge", "gridengine", "grid-engine":
		return SGE, nil
	case "pbs", "torque":
		return PBS, nil
	case "lsf":
		return LSF, nil
	case "slurm":
		return Slurm, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedManager, name)
}

// SupportsArray reports whether the manager has a task-array range flag.
func (p *Profile) SupportsArray() bool {
	return p.ArrayFlag != ""
}

// Directive renders one header directive for a flag and its value, following
// the manager's flag style (GNU-style long flags join with '=').
func (p *Profile) Directive(flag, value string) string {
	if strings.HasPrefix(flag, "--") {
		return fmt.Sprintf("%s %s=%s", p.DirectiveMarker, flag, value)
	}
	return fmt.Sprintf("%s %s %s", p.DirectiveMarker, flag, value)
}

// DirectiveRaw renders one header directive from pre-formed option text.
func (p *Profile) DirectiveRaw(text string) string {
	return fmt.Sprintf("%s %s", p.DirectiveMarker, text)
}

// JobIDEnv returns the environment variable name behind the job-id token.
func (p *Profile) JobIDEnv() string {
	return strings.TrimPrefix(p.JobIDVar, "$")
}
