package scheduler

// Grid Engine (SGE/UGE). Directives are read from "#$" comment lines; the
// task-array range is declared with -t and resolved through SGE_TASK_ID.
var sgeProfile = Profile{
	Kind:            SGE,
	DirectiveMarker: "#$",
	NameFlag:        "-N",
	ArrayFlag:       "-t",
	EnvFlag:         "-V",
	JobIDVar:        "$JOB_ID",
	JobNameVar:      "$JOB_NAME",
	TaskIndexVar:    "$SGE_TASK_ID",
	SubmitCommand:   "qsub",
}
