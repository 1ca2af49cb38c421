package parse

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONError reports that a completion expected to be a JSON document could
// not be decoded. The raw text is retained for diagnosis.
type JSONError struct {
	Raw string
	Err error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("decode completion as JSON: %v", e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

// FileMap decodes the whole completion as one JSON object mapping path to
// content. Any single fence pair wrapping the document (```json, ``` or a
// tagged variant) is stripped first. A decode failure returns a *JSONError
// so the caller must decide how to handle the failed batch; an empty map is
// never used to mask one.
func FileMap(text string) (map[string]string, error) {
	stripped := StripFence(text)
	var files map[string]string
	if err := json.Unmarshal([]byte(stripped), &files); err != nil {
		return nil, &JSONError{Raw: text, Err: err}
	}
	return files, nil
}

// PathList decodes the completion as a JSON array of strings, with the same
// fence tolerance as FileMap.
func PathList(text string) ([]string, error) {
	stripped := StripFence(text)
	var paths []string
	if err := json.Unmarshal([]byte(stripped), &paths); err != nil {
		return nil, &JSONError{Raw: text, Err: err}
	}
	return paths, nil
}

// StripFence removes at most one fence pair surrounding s. The opening
// fence may carry a language tag (```json and friends); the tag line is
// dropped with the fence. Text without a surrounding fence is returned
// trimmed but otherwise untouched.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, fence) {
		return trimmed
	}

	idx := strings.IndexByte(trimmed, '\n')
	if idx < 0 {
		// A lone fence line with no body.
		return ""
	}
	rest := strings.TrimSpace(trimmed[idx+1:])

	// Only a closing fence that terminates the document is part of the
	// wrapping; a fence followed by more text belongs to the content.
	if rest == fence {
		return ""
	}
	rest = strings.TrimSuffix(rest, "\n"+fence)
	return strings.TrimSpace(rest)
}
