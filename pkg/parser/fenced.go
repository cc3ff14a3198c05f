package parser

import (
	"encoding/json"
	"strings"
)

// fencedStrategy parses every remaining fenced JSON block independently.
// A block qualifies when its type tag names a known visualization
// variant; anything else, legitimate code samples included, is left
// untouched in the output text.
type fencedStrategy struct{}

func (*fencedStrategy) Name() string { return "fenced" }

func (*fencedStrategy) TryExtract(text string) (string, []Visualization, bool) {
	locs := fencedBlock.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, nil, false
	}

	var viz []Visualization
	var out strings.Builder
	last := 0
	matched := false

	for _, loc := range locs {
		body := text[loc[2]:loc[3]]

		var obj map[string]any
		if err := json.Unmarshal([]byte(body), &obj); err != nil {
			continue
		}
		v, ok := decodeVisualization(obj)
		if !ok {
			continue
		}

		viz = append(viz, v)
		matched = true
		out.WriteString(text[last:loc[0]])
		last = loc[1]
	}

	if !matched {
		return text, nil, false
	}
	out.WriteString(text[last:])
	return out.String(), viz, true
}
