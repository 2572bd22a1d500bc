// Package sequence holds the shared, immutable list of slideshow items
// discovered at startup. Sessions never copy it; they reference items
// through private index permutations.
package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the image file extensions recognized during
// discovery, matched case-insensitively.
var DefaultExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
	".ico":  true,
	".svg":  true,
}

// Sequence is an ordered, read-only list of item paths. It is fixed for
// the process lifetime and safe for concurrent reads without locking.
type Sequence struct {
	paths []string
}

// New creates a sequence from the given paths. The slice is copied.
func New(paths []string) *Sequence {
	p := make([]string, len(paths))
	copy(p, paths)
	return &Sequence{paths: p}
}

// Len returns the number of items.
func (s *Sequence) Len() int {
	return len(s.paths)
}

// Path returns the path of the item at the given real index.
// Returns empty string if the index is out of range.
func (s *Sequence) Path(i int) string {
	if i < 0 || i >= len(s.paths) {
		return ""
	}
	return s.paths[i]
}

// Paths returns a copy of all item paths.
func (s *Sequence) Paths() []string {
	p := make([]string, len(s.paths))
	copy(p, s.paths)
	return p
}

// CollectOptions controls item discovery.
type CollectOptions struct {
	Recursive       bool
	ExcludePatterns []string // filepath.Match patterns applied to base names
	Extensions      []string // additional extensions beyond DefaultExtensions
}

// Collect gathers image files from a mix of directories, files, and
// @response files, preserving argument order and removing duplicates.
func Collect(args []string, opts CollectOptions) (*Sequence, error) {
	exts := make(map[string]bool, len(DefaultExtensions)+len(opts.Extensions))
	for ext := range DefaultExtensions {
		exts[ext] = true
	}
	for _, ext := range opts.Extensions {
		exts[strings.ToLower(ext)] = true
	}

	var found []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "@"):
			paths, err := parseResponseFile(arg[1:], exts)
			if err != nil {
				return nil, err
			}
			found = append(found, paths...)
		default:
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("path does not exist: %s", arg)
			}
			if info.IsDir() {
				paths, err := findImages(arg, opts.Recursive, exts, opts.ExcludePatterns)
				if err != nil {
					return nil, err
				}
				found = append(found, paths...)
			} else {
				if !exts[strings.ToLower(filepath.Ext(arg))] {
					return nil, fmt.Errorf("not a recognized image file: %s", arg)
				}
				if !excluded(filepath.Base(arg), opts.ExcludePatterns) {
					found = append(found, arg)
				}
			}
		}
	}

	// Dedupe by resolved path, preserving discovery order.
	seen := make(map[string]bool, len(found))
	unique := make([]string, 0, len(found))
	for _, p := range found {
		key := p
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if !seen[key] {
			seen[key] = true
			unique = append(unique, p)
		}
	}

	return New(unique), nil
}

// findImages returns image files under dir, sorted lexically.
func findImages(dir string, recursive bool, exts map[string]bool, excludes []string) ([]string, error) {
	var result []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if exts[strings.ToLower(filepath.Ext(path))] && !excluded(d.Name(), excludes) {
				result = append(result, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if exts[strings.ToLower(filepath.Ext(e.Name()))] && !excluded(e.Name(), excludes) {
				result = append(result, filepath.Join(dir, e.Name()))
			}
		}
	}

	// ReadDir and WalkDir both yield lexical order already, but the
	// recursive walk interleaves directories; keep the contract explicit.
	slices.Sort(result)
	return result, nil
}

// parseResponseFile reads image paths from a response file, one per line.
// Blank lines and lines starting with '#' are skipped, as are paths that
// do not exist or lack a recognized extension.
func parseResponseFile(path string, exts map[string]bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("response file: %w", err)
	}

	var result []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		info, err := os.Stat(line)
		if err != nil || info.IsDir() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(line))] {
			result = append(result, line)
		}
	}
	return result, nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
