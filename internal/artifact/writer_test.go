package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_ScriptsExecutable(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")

	set := NewSet()
	set.PutContent("scripts/run.sh", "echo hi")
	set.PutContent("app.py", "print(1)")

	if err := NewWriter(root).WriteAll(set); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	script, err := os.Stat(filepath.Join(root, "scripts", "run.sh"))
	if err != nil {
		t.Fatalf("stat run.sh: %v", err)
	}
	if script.Mode().Perm()&0o111 == 0 {
		t.Fatalf("run.sh mode=%v, want executable", script.Mode())
	}

	plain, err := os.Stat(filepath.Join(root, "app.py"))
	if err != nil {
		t.Fatalf("stat app.py: %v", err)
	}
	if plain.Mode().Perm()&0o111 != 0 {
		t.Fatalf("app.py mode=%v, want non-executable", plain.Mode())
	}
}

func TestWriter_OverwritesExisting(t *testing.T) {
	root := t.TempDir()

	set := NewSet()
	set.PutContent("a.py", "v1")
	w := NewWriter(root)
	if w.Root() != root {
		t.Fatalf("Root()=%q, want %q", w.Root(), root)
	}
	if err := w.WriteAll(set); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	set.PutContent("a.py", "v2")
	if err := w.WriteAll(set); err != nil {
		t.Fatalf("WriteAll second pass: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "a.py"))
	if err != nil {
		t.Fatalf("read a.py: %v", err)
	}
	if string(data) != "v2" {
		t.Fatalf("a.py=%q, want v2", data)
	}
}
