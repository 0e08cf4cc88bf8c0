package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/djhshih/qlsub/internal/joblist"
	"github.com/djhshih/qlsub/internal/marker"
	"github.com/djhshih/qlsub/internal/utils"
)

// Variables to hold flag values
var (
	cleanPaths      PathFlags
	cleanScripts    bool
	cleanFailedOnly bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <list-file>",
	Short: "Remove completion markers so records run again",
	Long: `Remove the completion markers for the records of a list so the next submit
regenerates and resubmits them.

With --failed-only, markers that read 0 are kept and only failure markers are
removed. With --scripts, the generated job scripts are removed as well.`,
	Example: `  qlsub clean samples.txt -e rds
  qlsub clean samples.txt -e rds --failed-only
  qlsub clean samples.txt -e rds --scripts`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	RegisterPathFlags(cleanCmd, &cleanPaths)
	f := cleanCmd.Flags()
	f.BoolVar(&cleanScripts, "scripts", false, "also remove the generated job scripts")
	f.BoolVar(&cleanFailedOnly, "failed-only", false, "keep success markers, remove only failure markers")
}

func runClean(cmd *cobra.Command, args []string) error {
	inv := cleanPaths.Invocation(args[0])
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

	var markers, scripts, kept int
	for _, rec := range records {
		if cleanFailedOnly && marker.Completed(rec.Marker) {
			kept++
			continue
		}

		if utils.FileExists(rec.Marker) {
			if err := marker.Remove(rec.Marker); err != nil {
				utils.PrintError("Failed to remove marker for %s: %v", utils.StyleName(rec.Stem), err)
				continue
			}
			markers++
		}

		if cleanScripts && utils.FileExists(rec.Script) {
			if err := os.Remove(rec.Script); err != nil {
				utils.PrintError("Failed to remove script for %s: %v", utils.StyleName(rec.Stem), err)
				continue
			}
			scripts++
		}
	}

	// The aggregate array script does not belong to any single record.
	if cleanScripts && utils.FileExists(inv.ArrayScriptPath()) {
		if err := os.Remove(inv.ArrayScriptPath()); err != nil {
			utils.PrintError("Failed to remove array script: %v", err)
		} else {
			scripts++
		}
	}

	if cleanScripts {
		utils.PrintSuccess("Removed %s markers and %s scripts (%s records kept).",
			utils.StyleNumber(markers), utils.StyleNumber(scripts), utils.StyleNumber(kept))
	} else {
		utils.PrintSuccess("Removed %s markers (%s records kept).",
			utils.StyleNumber(markers), utils.StyleNumber(kept))
	}
	return nil
}
