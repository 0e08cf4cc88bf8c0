package joblist

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/djhshih/qlsub/internal/utils"
)

// Scanner streams records out of an input list. Blank and comment-only lines
// are skipped without consuming a sequence index, so indices stay contiguous
// from 1. The stream is lazy and restartable by constructing a new Scanner.
type Scanner struct {
	src   *bufio.Scanner
	opts  Options
	rec   Record
	index int
	seen  map[string]string // stem -> first input path, for collision warnings
}

// NewScanner returns a Scanner reading one input path per line from r.
func NewScanner(r io.Reader, opts Options) *Scanner {
	return &Scanner{
		src:  bufio.NewScanner(r),
		opts: opts,
		seen: make(map[string]string),
	}
}

// Scan advances to the next real record. It returns false at end of input
// or on read error (see Err).
func (s *Scanner) Scan() bool {
	for s.src.Scan() {
		line := utils.StripComment(s.src.Text())
		if line == "" {
			continue
		}

		s.index++
		s.rec = makeRecord(line, s.index, s.opts)

		// Duplicate stems collide on the same output and marker path, which
		// can mask one record's failure behind another's success marker.
		// Accepted, but worth a warning.
		if first, ok := s.seen[s.rec.Stem]; ok {
			utils.PrintWarning("duplicate stem %s: %s collides with %s on output %s",
				utils.StyleName(s.rec.Stem), s.rec.Input, first, utils.StylePath(s.rec.Output))
		} else {
			s.seen[s.rec.Stem] = s.rec.Input
		}

		return true
	}
	return false
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() Record {
	return s.rec
}

// Count returns the number of records emitted so far. After the stream is
// drained this is the highest sequence index, which sizes the task array.
func (s *Scanner) Count() int {
	return s.index
}

// Err returns the first read error encountered by Scan.
func (s *Scanner) Err() error {
	return s.src.Err()
}

// ReadAll collects every record from r. Convenience for callers that do not
// need the streaming form.
func ReadAll(r io.Reader, opts Options) ([]Record, error) {
	s := NewScanner(r, opts)
	var records []Record
	for s.Scan() {
		records = append(records, s.Record())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("error reading input list: %w", err)
	}
	return records, nil
}

// ReadFile collects every record from the list file at path.
func ReadFile(path string, opts Options) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input list: %w", err)
	}
	defer file.Close()
	return ReadAll(file, opts)
}
