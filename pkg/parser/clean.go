package parser

import "strings"

// CleanJSON extracts a JSON body from markdown code fences, or returns
// the trimmed text unchanged when no fence is present. Used by callers
// that expect a single JSON object back from the model.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)
	matches := fencedBlock.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return text
}
