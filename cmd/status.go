package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/djhshih/qlsub/internal/joblist"
	"github.com/djhshih/qlsub/internal/marker"
	"github.com/djhshih/qlsub/internal/utils"
)

var statusPaths PathFlags

var statusCmd = &cobra.Command{
	Use:     "status <list-file>",
	Aliases: []string{"st"},
	Short:   "Report per-record completion from the local markers",
	Long: `Derive the same records a submit would and report each one's state from its
completion marker: done (marker reads 0), exit N (marker records a failure),
pending (no marker yet), or unknown (marker unreadable).

Only the local marker files are inspected; the cluster is never queried.`,
	Example: `  qlsub status samples.txt -e rds
  qlsub st samples.txt -d`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	RegisterPathFlags(statusCmd, &statusPaths)
}

func runStatus(cmd *cobra.Command, args []string) error {
	inv := statusPaths.Invocation(args[0])
	if err := inv.Normalize(); err != nil {
		return err
	}
	if err := inv.Validate(); err != nil {
		return err
	}

	records, err := joblist.ReadFile(inv.ListPath, inv.RecordOptions())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		utils.PrintWarning("List %s has no records.", utils.StylePath(inv.ListPath))
		return nil
	}

	var done, failed, pending, unknown int
	fmt.Println("Record status:")
	for _, rec := range records {
		var label string
		state, code := marker.Inspect(rec.Marker)
		switch state {
		case marker.StateDone:
			done++
			label = utils.StyleSuccess("done")
		case marker.StateFailed:
			failed++
			label = utils.StyleError(fmt.Sprintf("exit %d", code))
		case marker.StatePending:
			pending++
			label = utils.StyleDebug("pending")
		default:
			unknown++
			label = utils.StyleWarning("unknown")
		}
		fmt.Printf("  %3d  %-28s %s\n", rec.Index, rec.Stem, label)
	}

	fmt.Println()
	fmt.Printf("  done: %s  failed: %s  pending: %s  unknown: %s\n",
		utils.StyleNumber(done),
		utils.StyleNumber(failed),
		utils.StyleNumber(pending),
		utils.StyleNumber(unknown))
	return nil
}
