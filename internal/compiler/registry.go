package compiler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of contract sources
const SourceExt = ".vy"

// SourceRegistry resolves the source patterns of a project into a sorted,
// de-duplicated list of files. Each file is an independent compile unit.
type SourceRegistry struct {
	root  string
	paths []string
	seen  map[string]bool
}

// NewSourceRegistry creates a registry whose relative patterns are resolved
// against root.
func NewSourceRegistry(root string) (*SourceRegistry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	return &SourceRegistry{root: absRoot, seen: make(map[string]bool)}, nil
}

// Discover replaces the registered files with every file matched by the
// patterns. A pattern naming a directory adds every source below it.
func (r *SourceRegistry) Discover(patterns []string) error {
	r.paths = nil
	r.seen = make(map[string]bool)
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(r.root, pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return err
			}
			if info.IsDir() {
				if err := r.walk(match); err != nil {
					return err
				}
				continue
			}
			r.add(match)
		}
	}
	sort.Strings(r.paths)
	return nil
}

func (r *SourceRegistry) walk(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			r.add(path)
		}
		return nil
	})
}

func (r *SourceRegistry) add(path string) {
	path = filepath.Clean(path)
	if r.seen[path] {
		return
	}
	r.seen[path] = true
	r.paths = append(r.paths, path)
}

// Root returns the absolute project root
func (r *SourceRegistry) Root() string {
	return r.root
}

// Paths returns the discovered files in sorted order
func (r *SourceRegistry) Paths() []string {
	return append([]string(nil), r.paths...)
}

// Dirs returns the distinct directories holding discovered files
func (r *SourceRegistry) Dirs() []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, p := range r.paths {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// Rel returns path relative to the project root when possible
func (r *SourceRegistry) Rel(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return rel
}
