package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultFileMode = os.FileMode(0o644)
	scriptFileMode  = os.FileMode(0o755)
)

// Writer persists an artifact set under a destination root. Writes overwrite
// existing files with no backup; a crash mid-write leaves a partial tree.
type Writer struct {
	root string
}

// NewWriter returns a writer targeting root. The directory is created on the
// first write if absent.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root returns the destination root.
func (w *Writer) Root() string {
	return w.root
}

// WriteAll writes every artifact in sorted-path order so repeated runs touch
// the tree in a reproducible sequence. Files whose path ends in .sh are
// marked executable.
func (w *Writer) WriteAll(set *Set) error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", w.root, err)
	}
	for _, a := range set.All() {
		if err := w.write(a); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(a Artifact) error {
	abs := filepath.Join(w.root, filepath.FromSlash(a.Path))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", a.Path, err)
	}
	mode := defaultFileMode
	if strings.HasSuffix(a.Path, ".sh") {
		mode = scriptFileMode
	}
	if err := os.WriteFile(abs, []byte(a.Content), mode); err != nil {
		return fmt.Errorf("write %s: %w", a.Path, err)
	}
	// WriteFile does not chmod existing files; overwrites keep the intended mode.
	if err := os.Chmod(abs, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", a.Path, err)
	}
	return nil
}
