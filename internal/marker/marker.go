package marker

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/djhshih/qlsub/internal/utils"
)

// State classifies what a completion marker proves about a record.
type State string

const (
	StateDone    State = "done"    // marker reads exactly 0
	StateFailed  State = "failed"  // marker records a nonzero exit status
	StatePending State = "pending" // no marker on disk
	StateUnknown State = "unknown" // unreadable or non-numeric content
)

// Inspect reads the marker at path and returns its state plus, for
// StateFailed, the recorded exit status.
func Inspect(path string) (State, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatePending, 0
		}
		return StateUnknown, 0
	}

	code, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return StateUnknown, 0
	}
	if code == 0 {
		return StateDone, 0
	}
	return StateFailed, code
}

// Completed reports whether the marker proves a prior successful run: the
// file exists and its content parses as exactly 0. Absent, unreadable,
// non-numeric, and nonzero markers all fail open to "must run" so transient
// loss of proof re-executes work instead of silently dropping it.
func Completed(path string) bool {
	state, _ := Inspect(path)
	if state == StateUnknown {
		utils.PrintDebug("ambiguous marker at %s; treating record as must-run", utils.StylePath(path))
	}
	return state == StateDone
}

// Remove deletes the marker at path. A missing marker is not an error.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
