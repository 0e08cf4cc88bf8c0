package scheduler

// LSF. bsub only honors "#BSUB" directives when the script is piped on
// stdin, so job logs must be redirected on the submit command line instead
// (SubmitLogFlags). LSF has no standalone array-range flag (ranges are
// embedded in the job name, "-J name[1-N]"), so ArrayFlag stays empty and
// array mode is rejected for this manager.
var lsfProfile = Profile{
	Kind:            LSF,
	DirectiveMarker: "#BSUB",
	NameFlag:        "-J",
	ArrayFlag:       "",
	EnvFlag:         "-env all",
	JobIDVar:        "$LSB_JOBID",
	JobNameVar:      "$LSB_JOBNAME",
	TaskIndexVar:    "$LSB_JOBINDEX",
	SubmitCommand:   "bsub",
	SubmitLogFlags:  true,
}
