package scheduler

import (
	"os"
	"os/exec"
)

// Detect probes PATH for a known submit binary and returns the matching
// manager kind. SGE and PBS both ship qsub; SGE_ROOT tells them apart.
func Detect() (Kind, error) {
	if _, err := exec.LookPath("sbatch"); err == nil {
		return Slurm, nil
	}
	if _, err := exec.LookPath("qsub"); err == nil {
		if _, ok := os.LookupEnv("SGE_ROOT"); ok {
			return SGE, nil
		}
		return PBS, nil
	}
	if _, err := exec.LookPath("bsub"); err == nil {
		return LSF, nil
	}
	return "", ErrNoManagerDetected
}

// SubmitAvailable reports whether the profile's submit command is on PATH.
func (p *Profile) SubmitAvailable() bool {
	_, err := exec.LookPath(p.SubmitCommand)
	return err == nil
}

// InsideJob reports whether the current process is already running inside a
// job of any supported manager, detected through the job-id environment
// variable each manager sets.
func InsideJob() bool {
	for _, kind := range Kinds() {
		p, err := Resolve(kind)
		if err != nil {
			continue
		}
		if _, ok := os.LookupEnv(p.JobIDEnv()); ok {
			return true
		}
	}
	return false
}
