package parser

import (
	"encoding/json"
	"log"
	"strings"
)

// bareStrategy recovers envelope objects from models that omit code
// fences: balanced {...} regions containing the literal key
// "visualizations". A region that fails to parse gets exactly one
// repaired retry; one malformed region never discards valid answer text
// or corrupts sibling regions.
type bareStrategy struct{}

func (*bareStrategy) Name() string { return "bare" }

func (*bareStrategy) TryExtract(text string) (string, []Visualization, bool) {
	regions := scanObjects(text)
	if len(regions) == 0 {
		return text, nil, false
	}

	var viz []Visualization
	var out strings.Builder
	last := 0
	matched := false

	for _, region := range regions {
		body := text[region.start:region.end]
		if !strings.Contains(body, "visualizations") {
			continue
		}

		obj, ok := parseWithRepair(body)
		if !ok {
			log.Printf("parser: skipping unrecoverable JSON region (%d bytes)", len(body))
			continue
		}
		rawViz, ok := obj["visualizations"].([]any)
		if !ok {
			continue
		}

		viz = append(viz, decodeVisualizations(rawViz)...)
		matched = true

		out.WriteString(text[last:region.start])
		if content, ok := obj["content"].(string); ok {
			out.WriteString(content)
		}
		last = region.end
	}

	if !matched {
		return text, nil, false
	}
	out.WriteString(text[last:])
	return out.String(), viz, true
}

func parseWithRepair(body string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(body), &obj); err == nil {
		return obj, true
	}
	if err := json.Unmarshal([]byte(repairJSON(body)), &obj); err == nil {
		return obj, true
	}
	return nil, false
}

type region struct {
	start, end int
}

// scanObjects finds top-level balanced {...} regions. The scanner is
// quote-aware so braces inside string values do not skew the depth, and
// it tolerates single-quoted strings since those are exactly what the
// repair layer exists for.
func scanObjects(text string) []region {
	var regions []region
	depth := 0
	start := -1
	var quote byte // active string delimiter, 0 when outside strings

	for i := 0; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			if depth > 0 {
				quote = c
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				regions = append(regions, region{start: start, end: i + 1})
			}
		}
	}
	return regions
}
