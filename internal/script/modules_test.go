package script

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestForceLoad(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"use Java-1.8", "reuse Java-1.8"},
		{"use -q .bio", "reuse -q .bio"},
		{"reuse Java-1.8", "reuse Java-1.8"},
		{"# use Java-1.8", "# use Java-1.8"},
		{"  use Indented", "  use Indented"},
		{"useless statement", "useless statement"},
		{"export PATH=$PATH:/opt/bin", "export PATH=$PATH:/opt/bin"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := forceLoad(tt.line); got != tt.want {
			t.Errorf("forceLoad(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLoadModuleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modules.dk")
	content := "# lab environment\nuse Java-1.8\nuse .bio\n\nexport OMP_NUM_THREADS=4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write module file: %v", err)
	}

	got, err := LoadModuleFile(path)
	if err != nil {
		t.Fatalf("LoadModuleFile failed: %v", err)
	}

	want := []string{
		"# lab environment",
		"reuse Java-1.8",
		"reuse .bio",
		"",
		"export OMP_NUM_THREADS=4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadModuleFile = %#v, want %#v", got, want)
	}
}

func TestLoadModuleFileMissing(t *testing.T) {
	_, err := LoadModuleFile(filepath.Join(t.TempDir(), "absent.dk"))
	if err == nil {
		t.Fatal("LoadModuleFile succeeded on a missing file")
	}
}
