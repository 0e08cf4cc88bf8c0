package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/djhshih/qlsub/internal/batch"
	"github.com/djhshih/qlsub/internal/config"
	"github.com/djhshih/qlsub/internal/dispatch"
	"github.com/djhshih/qlsub/internal/history"
	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// Variables to hold flag values
var (
	submitPaths     PathFlags
	submitScheduler string
	submitPrefix    string
	submitOptions   string
	submitModules   string
	submitCommand   string
	submitDryRun    bool
	submitNoExport  bool
)

var submitCmd = &cobra.Command{
	Use:     "submit <list-file>",
	Aliases: []string{"sub", "s"},
	Short:   "Generate job scripts for a list of inputs and submit the incomplete ones",
	Long: `Generate one job script per input path in the list and submit each to the
batch manager, skipping records whose completion marker already reads 0.

Each script runs the payload as '<prefix> <input> <output>' and writes the
payload's exit status into the record's marker, so rerunning the same submit
later only resubmits the records that have not completed successfully.`,
	Example: `  qlsub submit samples.txt -e rds -p "Rscript fit.R"
  qlsub submit samples.txt -e bam -p "bash align.sh" -O "-l h_vmem=8G"
  qlsub submit samples.txt -e vcf -p "bash call.sh" -a     # one task array
  qlsub submit samples.txt -d -p "bash assemble.sh" -n     # dir outputs, dry run`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true, // Runtime errors should not show usage
	RunE:         runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	RegisterPathFlags(submitCmd, &submitPaths)

	f := submitCmd.Flags()
	f.StringVarP(&submitScheduler, "scheduler", "s", "", "batch manager: sge|pbs|lsf|slurm (default: config, then detection)")
	f.StringVarP(&submitPrefix, "prefix", "p", "", "payload command placed before each input/output pair")
	f.StringVarP(&submitOptions, "options", "O", "", "extra manager options written as one directive line")
	f.StringVarP(&submitModules, "modules", "m", "", "environment-module file included in each script")
	f.StringVar(&submitCommand, "submit-cmd", "", "override the manager's submit command")
	f.BoolVarP(&submitDryRun, "dry-run", "n", false, "generate scripts without submitting anything")
	f.BoolVar(&submitNoExport, "no-export", false, "do not export the caller environment to jobs")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	// 1. Resolve the manager identity: flag > config > detection
	kind, err := resolveKind(submitScheduler)
	if err != nil {
		return err
	}

	// 2. Assemble the invocation
	inv := submitPaths.Invocation(args[0])
	inv.Kind = kind
	inv.Prefix = submitPrefix
	inv.Options = submitOptions
	inv.ModulesFile = submitModules
	inv.DryRun = submitDryRun
	inv.SubmitCmd = submitCommand
	if inv.SubmitCmd == "" {
		inv.SubmitCmd = config.Global.SubmitCmd
	}
	if submitNoExport {
		inv.ExportEnv = false
	}

	if err := inv.Normalize(); err != nil {
		return err
	}
	if err := inv.Validate(); err != nil {
		return err
	}

	// 3. Build the runner; incompatible modes fail before anything is written
	profile, err := scheduler.Resolve(inv.Kind)
	if err != nil {
		return err
	}
	runner, err := batch.NewRunner(inv, dispatch.New(profile, inv.SubmitCmd, inv.DryRun))
	if err != nil {
		return err
	}

	// 4. Record the invocation before the run starts
	history.Record(config.Global.HistoryFile, history.Entry{
		Time:    time.Now(),
		RunID:   inv.RunID,
		WorkDir: inv.WorkDir,
		Command: inv.CommandLine(),
	})

	// 5. Run the batch
	summary, err := runner.Run()
	if err != nil {
		return err
	}

	// 6. Report
	utils.PrintMessage("records: %s  skipped: %s  generated: %s  submitted: %s  failed: %s",
		utils.StyleNumber(summary.Records),
		utils.StyleNumber(summary.Skipped),
		utils.StyleNumber(summary.Generated),
		utils.StyleNumber(summary.Submitted),
		utils.StyleNumber(summary.Failed))
	if inv.DryRun {
		utils.PrintHint("Dry run: inspect the scripts under %s", utils.StylePath(inv.ScriptDir))
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d records failed", summary.Failed, summary.Records)
	}
	return nil
}
