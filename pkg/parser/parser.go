// Package parser recovers structured visualization payloads embedded in
// free-text model output. The input is model-generated, not client
// controlled, so every layer tolerates malformed JSON: a region that
// cannot be recovered is skipped, never fatal.
package parser

import (
	"regexp"
	"strings"

	"farmai/pkg/tool"
)

// ToolOutput is one tool invocation's result as seen by the parser, used
// only by the synthesis fallback.
type ToolOutput struct {
	Name   string
	Result tool.Result
}

// Extraction is the split of one model answer into user-visible prose and
// visualization payloads.
type Extraction struct {
	CleanedText    string
	Visualizations []Visualization
}

// Strategy is one layer of the recovery chain. TryExtract returns the
// text with consumed regions removed, the visualizations it recovered,
// and whether it matched anything. Strategies never mutate shared state
// and are independently testable.
type Strategy interface {
	Name() string
	TryExtract(text string) (string, []Visualization, bool)
}

// Parser runs an ordered strategy chain over model output. Precedence is
// deterministic: envelope, then fenced blocks, then bare-object recovery,
// then synthesis from tool results. Earlier strategies remove the regions
// they consume, so a region is handled by at most one layer.
type Parser struct {
	strategies []Strategy
}

// New builds a parser with the standard chain.
func New() *Parser {
	return &Parser{
		strategies: []Strategy{
			&envelopeStrategy{},
			&fencedStrategy{},
			&bareStrategy{},
		},
	}
}

// Extract splits raw model output into cleaned prose and visualizations.
// Synthesis from tool outputs runs only when the chain recovered nothing:
// a model that already chose its visualizations must not be second
// guessed with duplicates.
func (p *Parser) Extract(raw string, outputs []ToolOutput) *Extraction {
	text := raw
	var viz []Visualization

	for _, s := range p.strategies {
		remaining, found, ok := s.TryExtract(text)
		if !ok {
			continue
		}
		text = remaining
		viz = append(viz, found...)
	}

	if len(viz) == 0 {
		viz = synthesize(outputs, text)
	}

	return &Extraction{
		CleanedText:    collapseBlankLines(strings.TrimSpace(text)),
		Visualizations: viz,
	}
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// collapseBlankLines squeezes the blank-line runs left behind by removed
// JSON regions.
func collapseBlankLines(text string) string {
	return blankRuns.ReplaceAllString(text, "\n\n")
}
