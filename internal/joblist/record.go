package joblist

import (
	"fmt"
	"path/filepath"

	"github.com/djhshih/qlsub/internal/utils"
)

// DefaultMarkerSuffix is appended to the output path to form the marker path.
const DefaultMarkerSuffix = ".status"

// Record is one normalized entry of the input list. All paths are absolute
// so generated scripts do not depend on the directory the manager starts
// them in. Records live for one invocation; only the marker persists.
type Record struct {
	Index  int    // 1-based sequence index in input order
	Input  string // input path from the list, absolutized
	Stem   string // base name of the input without its extension
	Output string // derived output file (or directory in directory mode)
	Marker string // completion-marker path co-located with the output
	Script string // per-record job script path
}

// Options control how records derive their paths from input lines.
type Options struct {
	OutDir       string // output directory
	Ext          string // output extension (file mode only), with or without dot
	DirMode      bool   // outputs are directories named after the stem
	ScriptDir    string // where job scripts are written
	ArrayMode    bool   // scripts are named by index so a task array can address them
	BatchName    string // batch name, used for array-mode script filenames
	MarkerSuffix string // marker filename suffix; DefaultMarkerSuffix when empty
}

func (o Options) markerSuffix() string {
	if o.MarkerSuffix == "" {
		return DefaultMarkerSuffix
	}
	return o.MarkerSuffix
}

// makeRecord derives the full record for one cleaned input line.
func makeRecord(input string, index int, opts Options) Record {
	if abs, err := filepath.Abs(input); err == nil {
		input = abs
	}
	stem := utils.Stem(input)

	var output string
	if opts.DirMode {
		output = filepath.Join(opts.OutDir, stem)
	} else {
		ext := opts.Ext
		if len(ext) > 0 && ext[0] == '.' {
			ext = ext[1:]
		}
		output = filepath.Join(opts.OutDir, fmt.Sprintf("%s.%s", stem, ext))
	}
	if abs, err := filepath.Abs(output); err == nil {
		output = abs
	}

	var script string
	if opts.ArrayMode {
		script = filepath.Join(opts.ScriptDir, fmt.Sprintf("%s.%d.sh", opts.BatchName, index))
	} else {
		script = filepath.Join(opts.ScriptDir, stem+".sh")
	}
	if abs, err := filepath.Abs(script); err == nil {
		script = abs
	}

	return Record{
		Index:  index,
		Input:  input,
		Stem:   stem,
		Output: output,
		Marker: output + opts.markerSuffix(),
		Script: script,
	}
}
