// Package artifact models generated files and their on-disk persistence.
package artifact

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Artifact is a single generated file: a relative path and its raw content.
// Identity is the path.
type Artifact struct {
	Path    string
	Content string
}

// Set accumulates artifacts keyed by path. Inserting an existing path
// replaces the previous content (last value wins).
type Set struct {
	byPath map[string]Artifact
}

// NewSet returns an empty artifact set.
func NewSet() *Set {
	return &Set{byPath: make(map[string]Artifact)}
}

// Put inserts or replaces the artifact at a.Path.
func (s *Set) Put(a Artifact) {
	s.byPath[a.Path] = a
}

// PutContent is shorthand for Put with a path/content pair.
func (s *Set) PutContent(path, content string) {
	s.Put(Artifact{Path: path, Content: content})
}

// Get returns the artifact at path, if present.
func (s *Set) Get(path string) (Artifact, bool) {
	a, ok := s.byPath[path]
	return a, ok
}

// Has reports whether path is present.
func (s *Set) Has(path string) bool {
	_, ok := s.byPath[path]
	return ok
}

// Len returns the number of artifacts.
func (s *Set) Len() int {
	return len(s.byPath)
}

// Paths returns all paths in sorted order.
func (s *Set) Paths() []string {
	paths := make([]string, 0, len(s.byPath))
	for p := range s.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// All returns the artifacts in sorted-path order.
func (s *Set) All() []Artifact {
	out := make([]Artifact, 0, len(s.byPath))
	for _, p := range s.Paths() {
		out = append(out, s.byPath[p])
	}
	return out
}

// Merge applies every artifact from other onto s, replacing content at
// existing paths and adding new ones. Paths absent from other are never
// touched; nothing is ever removed.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, a := range other.byPath {
		s.byPath[a.Path] = a
	}
}

// Missing returns the manifest paths that have no artifact yet, in manifest
// order. Duplicate manifest entries are reported once.
func (s *Set) Missing(manifest []string) []string {
	var missing []string
	seen := make(map[string]bool, len(manifest))
	for _, p := range manifest {
		if seen[p] {
			continue
		}
		seen[p] = true
		if !s.Has(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// LoadDir reads an output tree produced by a prior session back into a Set.
// Paths are recorded relative to root with forward slashes. Dotfiles and
// dot-directories are skipped.
func LoadDir(root string) (*Set, error) {
	set := NewSet()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		set.PutContent(filepath.ToSlash(rel), string(content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load artifact dir %s: %w", root, err)
	}
	return set, nil
}
