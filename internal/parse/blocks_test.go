package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlocks_TwoLabeledFiles(t *testing.T) {
	text := "Here are the files:\n\n" +
		"```filename: a.py\n" +
		"print('a')\n" +
		"```\n\n" +
		"```filename: b.py\n" +
		"print('b')\n" +
		"```\n"

	got := Blocks(text)
	want := map[string]string{
		"a.py": "print('a')",
		"b.py": "print('b')",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocks_BareLanguageTagSkipped(t *testing.T) {
	text := "```python\n" +
		"print('not a file')\n" +
		"```\n" +
		"```filename: real.py\n" +
		"print('file')\n" +
		"```\n"

	got := Blocks(text)
	want := map[string]string{"real.py": "print('file')"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocks_PathLabelWithoutFilenamePrefix(t *testing.T) {
	text := "```agent1/Dockerfile\n" +
		"FROM python:3.9-slim\n" +
		"```\n"

	got := Blocks(text)
	if got["agent1/Dockerfile"] != "FROM python:3.9-slim" {
		t.Fatalf("Blocks=%v, want agent1/Dockerfile entry", got)
	}
}

func TestBlocks_LaterDuplicateWins(t *testing.T) {
	text := "```filename: a.py\n" +
		"v1\n" +
		"```\n" +
		"```filename: a.py\n" +
		"v2\n" +
		"```\n"

	got := Blocks(text)
	if got["a.py"] != "v2" {
		t.Fatalf(`got["a.py"]=%q, want "v2"`, got["a.py"])
	}
}

func TestBlocks_BodyTrimmed(t *testing.T) {
	text := "```filename: pad.txt\n" +
		"\n" +
		"  content  \n" +
		"\n" +
		"```\n"

	got := Blocks(text)
	if got["pad.txt"] != "content" {
		t.Fatalf(`got["pad.txt"]=%q, want "content"`, got["pad.txt"])
	}
}

func TestBlocks_NoBlocks(t *testing.T) {
	if got := Blocks("no fences anywhere"); len(got) != 0 {
		t.Fatalf("Blocks=%v, want empty", got)
	}
}

func TestBlocks_UnterminatedBlockKept(t *testing.T) {
	text := "```filename: tail.py\nprint('cut off')"
	got := Blocks(text)
	if got["tail.py"] != "print('cut off')" {
		t.Fatalf("Blocks=%v, want unterminated body kept", got)
	}
}
