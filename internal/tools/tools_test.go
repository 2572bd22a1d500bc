package tools

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscover_Patterns(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "tool0.sh", "#!/bin/sh\n")
	writeScript(t, dir, "tool_1.py", "")
	writeScript(t, dir, "tool25.sh", "")
	writeScript(t, dir, "toola.sh", "")
	writeScript(t, dir, "tool_B.sh", "")
	writeScript(t, dir, "tool.sh", "")    // no ID
	writeScript(t, dir, "mytool3.sh", "") // wrong base name
	writeScript(t, dir, "tool100.sh", "") // three digits
	writeScript(t, dir, "tool5.txt", "")  // .txt but executable, still runnable

	m, err := Discover("tool", dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"0", "1", "25", "a", "b", "5"} {
		if _, ok := m.Get(id); !ok {
			t.Errorf("tool %q not discovered", id)
		}
	}
	for _, id := range []string{"", "3", "100"} {
		if _, ok := m.Get(id); ok {
			t.Errorf("tool %q should not be discovered", id)
		}
	}
}

func TestDiscover_SkipsNonRunnable(t *testing.T) {
	dir := t.TempDir()
	// No script extension and no executable bit.
	path := filepath.Join(dir, "tool7")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Discover("tool", dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Get("7"); ok {
		t.Error("non-runnable file discovered as a tool")
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	m, err := Discover("tool", "/no/such/dir")
	if err != nil {
		t.Fatalf("missing directory should not be an error: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestList_NaturalSort(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tool10.sh", "tool2.sh", "tool1.sh", "toolb.sh", "toola.sh"} {
		writeScript(t, dir, name, "")
	}

	m, err := Discover("tool", dir)
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, tool := range m.List() {
		ids = append(ids, tool.ID)
	}
	want := []string{"1", "2", "10", "a", "b"}
	if !slices.Equal(ids, want) {
		t.Errorf("List() order = %v, want %v", ids, want)
	}
}

func TestBuildEnv(t *testing.T) {
	vars := map[string]string{
		"img_idx":  "3",
		"img_path": "/images/c.jpg",
	}
	env := BuildEnv("7", vars)

	want := map[string]bool{
		"QSS_IMG_IDX=3":              false,
		"QSS_IMG_PATH=/images/c.jpg": false,
		"QSS_TOOL_ID=7":              false,
		"QSS_IMG_INDEX=3":            false,
	}
	for _, e := range env {
		if _, ok := want[e]; ok {
			want[e] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("env missing %q", k)
		}
	}

	// Parent environment is carried along.
	t.Setenv("QSS_TEST_PARENT", "1")
	env = BuildEnv("7", nil)
	found := false
	for _, e := range env {
		if strings.HasPrefix(e, "QSS_TEST_PARENT=") {
			found = true
		}
	}
	if !found {
		t.Error("parent environment not inherited")
	}
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		script  string
		outcome Outcome
		code    int
	}{
		{"tool0.sh", "#!/bin/sh\necho ok\nexit 0\n", OK, 0},
		{"tool1.sh", "#!/bin/sh\nexit 1\n", RemoveCurrent, 1},
		{"tool2.sh", "#!/bin/sh\necho broken >&2\nexit 3\n", Failed, 3},
	}

	m, err := Discover("tool", dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, dir, tt.name, tt.script)
			res, err := m.Run(context.Background(), Tool{ID: tt.name, Path: path}, os.Environ())
			if err != nil {
				t.Fatal(err)
			}
			if res.Outcome != tt.outcome {
				t.Errorf("Outcome = %v, want %v", res.Outcome, tt.outcome)
			}
			if res.ExitCode != tt.code {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tt.code)
			}
		})
	}
}

func TestRun_CapturesOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "tool0.sh", "#!/bin/sh\necho hello\necho oops >&2\n")

	m, _ := Discover("tool", dir)
	res, err := m.Run(context.Background(), Tool{ID: "0", Path: path}, os.Environ())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Stdout, "hello") {
		t.Errorf("Stdout = %q, want hello", res.Stdout)
	}
	if !strings.Contains(res.Stderr, "oops") {
		t.Errorf("Stderr = %q, want oops", res.Stderr)
	}
}
