package parser

import (
	"encoding/json"
	"regexp"
)

// fencedBlock matches a markdown code fence, optionally tagged json, and
// captures the body. (?s) lets the body span lines.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")

// envelopeStrategy recognizes the exact wrapped format: one fenced block
// whose body is {"content": ..., "visualizations": [...]}. When it
// matches, the envelope's content field becomes the visible text, falling
// back to the raw text with the block stripped when content is absent.
type envelopeStrategy struct{}

func (*envelopeStrategy) Name() string { return "envelope" }

func (*envelopeStrategy) TryExtract(text string) (string, []Visualization, bool) {
	for _, loc := range fencedBlock.FindAllStringSubmatchIndex(text, -1) {
		body := text[loc[2]:loc[3]]

		var envelope map[string]any
		if err := json.Unmarshal([]byte(body), &envelope); err != nil {
			continue
		}
		rawViz, ok := envelope["visualizations"].([]any)
		if !ok {
			continue
		}

		viz := decodeVisualizations(rawViz)
		cleaned, hasContent := envelope["content"].(string)
		if !hasContent || cleaned == "" {
			cleaned = text[:loc[0]] + text[loc[1]:]
		}
		return cleaned, viz, true
	}
	return text, nil, false
}
