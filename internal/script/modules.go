package script

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadModuleFile reads an environment-module file and rewrites every loading
// statement into its forcing form, so the job still loads modules that the
// submitting shell already had loaded. All other lines pass through unchanged.
func LoadModuleFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}
	defer file.Close()

	var lines []string
	src := bufio.NewScanner(file)
	for src.Scan() {
		lines = append(lines, forceLoad(src.Text()))
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}
	return lines, nil
}

// forceLoad rewrites a plain load statement into a forcing one. Only lines
// whose leading token is the load command are rewritten; indented lines,
// comments, and other statements stay byte-identical.
func forceLoad(line string) string {
	if strings.HasPrefix(line, "use ") {
		return "reuse " + strings.TrimPrefix(line, "use ")
	}
	return line
}
