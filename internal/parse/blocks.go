// Package parse extracts path→content pairs from raw completion text.
// Completions arrive in two wire shapes: repeated fenced blocks labeled with
// file paths, or a single JSON object. Both parsers are tolerant of the
// "decorated" output models tend to produce around the requested payload.
package parse

import (
	"strings"
)

const fence = "```"

// bareLanguageTags are fence labels that name a language rather than a file.
// A block labeled with only one of these is not a file and is skipped.
var bareLanguageTags = map[string]bool{
	"python":     true,
	"py":         true,
	"yaml":       true,
	"yml":        true,
	"bash":       true,
	"sh":         true,
	"shell":      true,
	"dockerfile": true,
	"json":       true,
	"markdown":   true,
	"md":         true,
	"go":         true,
	"text":       true,
	"txt":        true,
	"plaintext":  true,
}

// block scanner states. Labels are consumed on the opening fence line, so
// the label state never spans lines.
type blockState int

const (
	outsideBlock blockState = iota
	inFileBody              // collecting lines for a labeled file
	inSkipBody              // inside a non-file block (bare language tag)
)

// Blocks scans text for fenced segments labeled with file paths and returns
// the extracted files in document order. The opening fence line may carry a
// `filename:` prefix before the path. Blocks labeled with only a language
// tag are skipped. When the same path appears twice the later body wins.
// Bodies are trimmed of leading and trailing whitespace.
func Blocks(text string) map[string]string {
	files := make(map[string]string)

	state := outsideBlock
	var path string
	var body []string

	for _, line := range strings.Split(text, "\n") {
		switch state {
		case outsideBlock:
			if !strings.HasPrefix(line, fence) {
				continue
			}
			label := parseLabel(strings.TrimPrefix(line, fence))
			if label == "" {
				state = inSkipBody
				continue
			}
			path = label
			body = body[:0]
			state = inFileBody

		case inFileBody:
			if isClosingFence(line) {
				files[path] = strings.TrimSpace(strings.Join(body, "\n"))
				state = outsideBlock
				continue
			}
			body = append(body, line)

		case inSkipBody:
			if isClosingFence(line) {
				state = outsideBlock
			}
		}
	}

	// An unterminated file block still yields its collected body.
	if state == inFileBody && len(body) > 0 {
		files[path] = strings.TrimSpace(strings.Join(body, "\n"))
	}

	return files
}

// parseLabel interprets the remainder of an opening fence line. It returns
// the file path, or "" if the label is empty or a bare language tag.
func parseLabel(rest string) string {
	label := strings.TrimSpace(rest)
	if label == "" {
		return ""
	}
	label = strings.TrimSpace(strings.TrimPrefix(label, "filename:"))
	if label == "" {
		return ""
	}
	if isBareLanguageTag(label) {
		return ""
	}
	return label
}

// isBareLanguageTag reports whether label names a language rather than a
// file: a known identifier with no path separator and no extension.
func isBareLanguageTag(label string) bool {
	if strings.ContainsAny(label, "/\\") {
		return false
	}
	return bareLanguageTags[strings.ToLower(label)]
}

// isClosingFence matches a line that terminates a block: a fence with
// nothing after it. A fence followed by a label opens a nested block in the
// source text and stays part of the body.
func isClosingFence(line string) bool {
	return strings.TrimSpace(line) == fence
}
