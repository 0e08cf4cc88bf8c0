package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

var schedulersCmd = &cobra.Command{
	Use:     "schedulers",
	Aliases: []string{"sched"},
	Short:   "List supported batch managers and their availability on this host",
	Long: `List the batch manager profiles qlsub can generate scripts for, with each
manager's directive marker, submit command, and array support, and whether
the submit command is present on this host.`,
	Example: `  qlsub schedulers
  qlsub sched`,
	Run: runSchedulers,
}

func init() {
	rootCmd.AddCommand(schedulersCmd)
}

func runSchedulers(cmd *cobra.Command, args []string) {
	detected, detectErr := scheduler.Detect()

	fmt.Println("Supported batch managers:")
	for _, kind := range scheduler.Kinds() {
		profile, err := scheduler.Resolve(kind)
		if err != nil {
			continue
		}

		array := "yes"
		if !profile.SupportsArray() {
			array = "no"
		}

		availability := utils.StyleDebug("not found")
		if profile.SubmitAvailable() {
			availability = utils.StyleSuccess("available")
		}

		note := ""
		if detectErr == nil && kind == detected {
			note = utils.StyleHint(" (detected)")
		}

		fmt.Printf("  %-6s directive %-8s submit %-7s array %-4s %s%s\n",
			utils.StyleName(string(kind)),
			profile.DirectiveMarker,
			utils.StyleCommand(profile.SubmitCommand),
			array,
			availability,
			note)
	}

	if scheduler.InsideJob() {
		fmt.Println()
		utils.PrintWarning("Currently inside a scheduled job; nested submissions are usually rejected.")
	}
}
