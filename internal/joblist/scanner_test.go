package joblist

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

const listText = "a.txt\nb.txt\n# comment\n\nc.txt"

func testOptions(t *testing.T) Options {
	t.Helper()
	tmp := t.TempDir()
	return Options{
		OutDir:    filepath.Join(tmp, "out"),
		Ext:       "out",
		ScriptDir: filepath.Join(tmp, "scripts"),
	}
}

func TestReadAllScenario(t *testing.T) {
	opts := testOptions(t)
	records, err := ReadAll(strings.NewReader(listText), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("len(records) = %d; want 3", len(records))
	}

	stems := []string{"a", "b", "c"}
	for i, rec := range records {
		if rec.Index != i+1 {
			t.Errorf("records[%d].Index = %d; want %d", i, rec.Index, i+1)
		}
		if rec.Stem != stems[i] {
			t.Errorf("records[%d].Stem = %q; want %q", i, rec.Stem, stems[i])
		}
		wantOutput := filepath.Join(opts.OutDir, stems[i]+".out")
		if rec.Output != wantOutput {
			t.Errorf("records[%d].Output = %q; want %q", i, rec.Output, wantOutput)
		}
		if rec.Marker != wantOutput+".status" {
			t.Errorf("records[%d].Marker = %q; want %q", i, rec.Marker, wantOutput+".status")
		}
		wantScript := filepath.Join(opts.ScriptDir, stems[i]+".sh")
		if rec.Script != wantScript {
			t.Errorf("records[%d].Script = %q; want %q", i, rec.Script, wantScript)
		}
		if !filepath.IsAbs(rec.Input) {
			t.Errorf("records[%d].Input = %q; want absolute", i, rec.Input)
		}
	}
}

func TestReadAllDirMode(t *testing.T) {
	opts := testOptions(t)
	opts.DirMode = true

	records, err := ReadAll(strings.NewReader(listText), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("len(records) = %d; want 3", len(records))
	}
	for i, stem := range []string{"a", "b", "c"} {
		wantOutput := filepath.Join(opts.OutDir, stem)
		if records[i].Output != wantOutput {
			t.Errorf("records[%d].Output = %q; want %q", i, records[i].Output, wantOutput)
		}
		if records[i].Marker != wantOutput+".status" {
			t.Errorf("records[%d].Marker = %q; want %q", i, records[i].Marker, wantOutput+".status")
		}
	}
}

func TestInlineComment(t *testing.T) {
	opts := testOptions(t)
	records, err := ReadAll(strings.NewReader("a.txt # first sample\n"), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d; want 1", len(records))
	}
	if !strings.HasSuffix(records[0].Input, "/a.txt") {
		t.Errorf("Input = %q; want trailing comment stripped", records[0].Input)
	}
}

func TestIndicesStayContiguous(t *testing.T) {
	list := "# header\n\nfirst.txt\n\n# gap\nsecond.txt\nthird.txt # note\n\n"
	opts := testOptions(t)

	records, err := ReadAll(strings.NewReader(list), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d; want 3", len(records))
	}
	for i, rec := range records {
		if rec.Index != i+1 {
			t.Errorf("records[%d].Index = %d; want %d", i, rec.Index, i+1)
		}
	}
}

func TestArrayModeScriptNaming(t *testing.T) {
	opts := testOptions(t)
	opts.ArrayMode = true
	opts.BatchName = "samples"

	records, err := ReadAll(strings.NewReader(listText), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	for i, rec := range records {
		want := filepath.Join(opts.ScriptDir, fmt.Sprintf("samples.%d.sh", i+1))
		if rec.Script != want {
			t.Errorf("records[%d].Script = %q; want %q", i, rec.Script, want)
		}
	}
}

func TestExtLeadingDot(t *testing.T) {
	opts := testOptions(t)
	opts.Ext = ".out"

	records, err := ReadAll(strings.NewReader("a.txt\n"), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	want := filepath.Join(opts.OutDir, "a.out")
	if records[0].Output != want {
		t.Errorf("Output = %q; want %q", records[0].Output, want)
	}
}

func TestDuplicateStemsCollide(t *testing.T) {
	opts := testOptions(t)
	records, err := ReadAll(strings.NewReader("a.txt\nsub/a.txt\n"), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d; want 2", len(records))
	}
	if records[0].Output != records[1].Output {
		t.Errorf("outputs differ: %q vs %q; duplicate stems should collide",
			records[0].Output, records[1].Output)
	}
	if records[0].Marker != records[1].Marker {
		t.Errorf("markers differ: %q vs %q", records[0].Marker, records[1].Marker)
	}
	if records[0].Input == records[1].Input {
		t.Error("inputs should stay distinct")
	}
}

func TestMarkerSuffixOverride(t *testing.T) {
	opts := testOptions(t)
	opts.MarkerSuffix = ".done"

	records, err := ReadAll(strings.NewReader("a.txt\n"), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !strings.HasSuffix(records[0].Marker, "a.out.done") {
		t.Errorf("Marker = %q; want .done suffix", records[0].Marker)
	}
}

func TestEmptyList(t *testing.T) {
	opts := testOptions(t)
	records, err := ReadAll(strings.NewReader("# nothing here\n\n"), opts)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d; want 0", len(records))
	}
}

func TestScannerCount(t *testing.T) {
	opts := testOptions(t)
	s := NewScanner(strings.NewReader(listText), opts)
	for s.Scan() {
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if s.Count() != 3 {
		t.Errorf("Count() = %d; want 3", s.Count())
	}
}
