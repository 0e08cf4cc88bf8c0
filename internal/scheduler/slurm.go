package scheduler

// Slurm. Long-form flags join with '=' in directive lines
// ("#SBATCH --job-name=x"), which Profile.Directive handles.
var slurmProfile = Profile{
	Kind:            Slurm,
	DirectiveMarker: "#SBATCH",
	NameFlag:        "--job-name",
	ArrayFlag:       "--array",
	EnvFlag:         "--export=ALL",
	JobIDVar:        "$SLURM_JOB_ID",
	JobNameVar:      "$SLURM_JOB_NAME",
	TaskIndexVar:    "$SLURM_ARRAY_TASK_ID",
	SubmitCommand:   "sbatch",
}
