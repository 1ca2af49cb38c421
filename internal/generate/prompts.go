package generate

import (
	"fmt"
	"sort"
	"strings"

	"sysforge/internal/artifact"
)

// contextPathLimit bounds how many already-produced paths a gap-fill prompt
// lists for orientation.
const contextPathLimit = 10

func batchPrompt(spec string, paths []string) string {
	var sb strings.Builder
	sb.WriteString("Based on this specification, generate these files:\n\n")
	sb.WriteString(strings.Join(paths, ", "))
	sb.WriteString("\n\nSpecification:\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nCRITICAL: Generate COMPLETE, WORKING content for each file. Do not truncate or summarize.\n\n")
	sb.WriteString("Respond with ONLY this JSON structure (no markdown, no explanation):\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "file1.py": "complete file content here...",` + "\n")
	sb.WriteString(`  "file2.txt": "complete file content here..."` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("For source files:\n")
	sb.WriteString("- Include ALL imports\n")
	sb.WriteString("- Include COMPLETE definitions and function bodies\n")
	sb.WriteString("- Include error handling\n")
	sb.WriteString(`- No placeholders like "# rest of code..." or "# implementation here"`)
	return sb.String()
}

func gapFillPrompt(spec, path string, produced []string) string {
	sample := make([]string, 0, len(produced))
	sample = append(sample, produced...)
	sort.Strings(sample)
	if len(sample) > contextPathLimit {
		sample = sample[:contextPathLimit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on this specification, generate the file: %s\n\n", path)
	sb.WriteString("Specification:\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nExisting files:\n")
	for _, p := range sample {
		fmt.Fprintf(&sb, "  - %s\n", p)
	}
	sb.WriteString("\nCRITICAL: Generate COMPLETE, WORKING content. Do not truncate.\n\n")
	sb.WriteString("Respond with ONLY the file content (no JSON, no markdown fences, no explanation).\n")
	sb.WriteString("Start your response with the FIRST LINE of the file.")
	return sb.String()
}

func iteratePrompt(spec, modification string, existing *artifact.Set) string {
	var sb strings.Builder
	sb.WriteString("I have an existing system. Here are the current files:\n\n")
	for _, a := range existing.All() {
		fmt.Fprintf(&sb, "FILE: %s\n```\n%s\n```\n\n", a.Path, a.Content)
	}
	sb.WriteString("ORIGINAL SPEC:\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nMODIFICATION REQUEST:\n")
	sb.WriteString(modification)
	sb.WriteString("\n\nProvide the UPDATED files that incorporate this modification. Only include files that changed.\n")
	sb.WriteString("Use this exact format for each file:\n")
	sb.WriteString("```filename: path/to/file.ext\n[updated contents]\n```")
	return sb.String()
}
