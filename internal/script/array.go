package script

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/djhshih/qlsub/internal/scheduler"
	"github.com/djhshih/qlsub/internal/utils"
)

// WriteArray renders the aggregate task-array script: one file whose body
// dispatches to the per-record script matching the task index the manager
// assigns at run time. count is the highest record index, so the array range
// is 1-count. Fails before touching the filesystem when the manager has no
// array syntax.
func (g *Generator) WriteArray(path, name string, count int, scriptDir string) error {
	if !g.profile.SupportsArray() {
		return fmt.Errorf("%w: %s", scheduler.ErrArrayUnsupported, g.profile.Kind)
	}

	file, err := os.Create(path)
	if err != nil {
		return NewWriteError(name, path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	g.writeHeader(w, name, fmt.Sprintf("1-%d", count))

	// The task-index variable stays literal here; the manager expands it
	// when each array task starts.
	task := filepath.Join(scriptDir, fmt.Sprintf("%s.%s.sh", name, g.profile.TaskIndexVar))
	fmt.Fprintf(w, "exec /bin/bash %s\n", quote(task))

	if err := w.Flush(); err != nil {
		return NewWriteError(name, path, err)
	}
	if err := os.Chmod(path, utils.PermExec); err != nil {
		return NewWriteError(name, path, err)
	}
	return nil
}
