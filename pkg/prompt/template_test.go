package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	tpl := NewTemplate("Q: {{query}}\nA: {{ answer }}")
	got := tpl.Render(map[string]any{"query": "corn price?", "answer": "$4.87/bu"})
	assert.Equal(t, "Q: corn price?\nA: $4.87/bu", got)
}

func TestRenderLeavesMissingKeys(t *testing.T) {
	tpl := NewTemplate("{{known}} and {{unknown}}")
	assert.Equal(t, "x and {{unknown}}", tpl.Render(map[string]any{"known": "x"}))
}

func TestRenderNonStringValues(t *testing.T) {
	tpl := NewTemplate("{{count}} fields over {{acres}} acres")
	got := tpl.Render(map[string]any{"count": 2, "acres": 102.5})
	assert.Equal(t, "2 fields over 102.5 acres", got)
}
