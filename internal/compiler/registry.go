package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of Simple C translation units
const SourceExt = ".c"

// Registry collects the translation units named on a command line. Each
// file is a separate unit; a directory contributes every .c file directly
// inside it. Files are kept in the order they were added, without
// duplicates.
type Registry struct {
	paths []string        // absolute paths in insertion order
	seen  map[string]bool // absolute path -> already added
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]bool)}
}

// Add adds a file or the .c files of a directory
func (r *Registry) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("source file not found: %w", err)
	}

	if !info.IsDir() {
		if !strings.HasSuffix(absPath, SourceExt) {
			return fmt.Errorf("source file must have %s extension: %s", SourceExt, path)
		}
		r.add(absPath)
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(absPath, "*"+SourceExt))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", path, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		r.add(m)
	}
	return nil
}

func (r *Registry) add(absPath string) {
	if r.seen[absPath] {
		return
	}
	r.seen[absPath] = true
	r.paths = append(r.paths, absPath)
}

// Paths returns the registered files in order
func (r *Registry) Paths() []string {
	return r.paths
}

// CheckAll checks every registered file. A file that cannot be read stops
// the run; syntax errors are left in the individual results.
func (r *Registry) CheckAll() ([]*Result, error) {
	results := make([]*Result, 0, len(r.paths))
	for _, path := range r.paths {
		res, err := CheckFile(path)
		if res == nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// CheckFile reads and checks a single translation unit
func CheckFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Check(displayPath(path), string(source))
}

// displayPath shortens path relative to the working directory when possible
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
