// Package history archives one line per submission run so users can
// reconstruct what was submitted, when, and from where.
package history

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/djhshih/qlsub/internal/utils"
)

// DefaultFileName is the history file placed in the user's home directory.
const DefaultFileName = ".qlsub_history"

// Entry is one archived invocation.
type Entry struct {
	Time    time.Time // when the run started
	RunID   string    // run identifier, shared with the manifest
	WorkDir string    // directory the command ran from
	Command []string  // reconstructed invocation command line
}

// Line renders the entry as a single tab-separated history line.
func (e Entry) Line() string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\n",
		e.Time.Format(time.RFC3339), e.RunID, e.WorkDir, strings.Join(e.Command, " "))
}

// DefaultPath returns the history file path in the user's home directory,
// or empty when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + string(os.PathSeparator) + DefaultFileName
}

// Append writes one entry to the history file, creating it on first use.
// An empty path disables recording.
func Append(path string, entry Entry) error {
	if path == "" {
		return nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, utils.PermFile)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(entry.Line()); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// Record appends the entry and reports failures at debug level only. History
// is an archival convenience and never blocks a submission run.
func Record(path string, entry Entry) {
	if err := Append(path, entry); err != nil {
		utils.PrintDebug("history not recorded: %v", err)
	}
}
