// Package tools discovers and runs user-provided helper scripts that
// act on the currently displayed item via QSS_-prefixed environment
// variables.
package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// scriptExtensions are always accepted, even without an executable bit
// (Windows has none).
var scriptExtensions = map[string]bool{
	".sh":  true,
	".py":  true,
	".bat": true,
	".cmd": true,
	".exe": true,
	".ps1": true,
	".rb":  true,
	".pl":  true,
}

// Tool is one discovered helper script.
type Tool struct {
	ID   string
	Path string
}

// Manager holds the tools discovered in a directory, keyed by ID.
type Manager struct {
	baseName string
	dir      string
	tools    map[string]Tool
}

// Discover scans dir for scripts named {base}{id} or {base}_{id}, where
// id is 0-99 or a single letter, with a script extension or an
// executable bit. Letter IDs are case-folded to lower case.
func Discover(baseName, dir string) (*Manager, error) {
	m := &Manager{
		baseName: baseName,
		dir:      dir,
		tools:    make(map[string]Tool),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("read tool directory: %w", err)
	}

	numeric := regexp.MustCompile(`^` + regexp.QuoteMeta(baseName) + `_?(\d{1,2})(\..*)?$`)
	alpha := regexp.MustCompile(`^` + regexp.QuoteMeta(baseName) + `_?([a-zA-Z])(\..*)?$`)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var id string
		if match := numeric.FindStringSubmatch(name); match != nil {
			id = match[1]
		} else if match := alpha.FindStringSubmatch(name); match != nil {
			id = strings.ToLower(match[1])
		} else {
			continue
		}

		path := filepath.Join(dir, name)
		if !runnable(path) {
			continue
		}
		if _, exists := m.tools[id]; exists {
			continue
		}
		m.tools[id] = Tool{ID: id, Path: path}
	}

	return m, nil
}

func runnable(path string) bool {
	if scriptExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

// Get returns the tool registered under id.
func (m *Manager) Get(id string) (Tool, bool) {
	t, ok := m.tools[id]
	return t, ok
}

// List returns all tools, numeric IDs in numeric order first, then
// letter IDs alphabetically.
func (m *Manager) List() []Tool {
	out := make([]Tool, 0, len(m.tools))
	for _, t := range m.tools {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Tool) int {
		an, aerr := strconv.Atoi(a.ID)
		bn, berr := strconv.Atoi(b.ID)
		switch {
		case aerr == nil && berr == nil:
			return an - bn
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
	return out
}

// Len returns the number of discovered tools.
func (m *Manager) Len() int { return len(m.tools) }

// Outcome classifies a tool run by its exit code contract: 0 means
// success, 1 asks the caller to remove the current item, anything else
// is a tool failure.
type Outcome int

const (
	OK Outcome = iota
	RemoveCurrent
	Failed
)

// RunResult carries the observable output of one tool invocation.
type RunResult struct {
	Outcome  Outcome
	ExitCode int
	Stdout   string
	Stderr   string
}

// BuildEnv produces the process environment for a tool run: the parent
// environment plus one QSS_-prefixed variable per entry of vars, the
// tool's own ID, and the legacy QSS_IMG_INDEX alias.
func BuildEnv(toolID string, vars map[string]string) []string {
	env := os.Environ()
	for k, v := range vars {
		env = append(env, "QSS_"+strings.ToUpper(k)+"="+v)
	}
	env = append(env, "QSS_TOOL_ID="+toolID)
	idx, ok := vars["img_idx"]
	if !ok {
		idx = "1"
	}
	env = append(env, "QSS_IMG_INDEX="+idx)
	return env
}

// Run executes the tool with env, capturing both output streams. A
// non-zero exit is reported through the Outcome, not as an error; err is
// reserved for failures to start the process at all.
func (m *Manager) Run(ctx context.Context, tool Tool, env []string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, tool.Path)
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, fmt.Errorf("run tool %s: %w", tool.ID, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	switch res.ExitCode {
	case 0:
		res.Outcome = OK
	case 1:
		res.Outcome = RemoveCurrent
	default:
		res.Outcome = Failed
	}
	return res, nil
}
