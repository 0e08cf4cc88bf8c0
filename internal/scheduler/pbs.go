package scheduler

// PBS/Torque. Shares the qsub submit command with Grid Engine but scans
// "#PBS" directive lines. The -t array flag and PBS_ARRAYID follow the
// Torque convention; PBS Pro spells these -J and PBS_ARRAY_INDEX, which is
// not covered here.
var pbsProfile = Profile{
	Kind:            PBS,
	DirectiveMarker: "#PBS",
	NameFlag:        "-N",
	ArrayFlag:       "-t",
	EnvFlag:         "-V",
	JobIDVar:        "$PBS_JOBID",
	JobNameVar:      "$PBS_JOBNAME",
	TaskIndexVar:    "$PBS_ARRAYID",
	SubmitCommand:   "qsub",
}
