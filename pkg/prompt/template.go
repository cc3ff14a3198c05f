package prompt

import (
	"fmt"
	"regexp"
)

// Template is the minimal placeholder substitution behind the assistant's
// validation and correction prompts. Placeholders are written {{name}};
// whitespace inside the braces is tolerated, so {{ name }} renders the
// same. Missing keys are left in place, which makes a half-rendered
// prompt visible instead of silently blank.
type Template struct {
	Text string
}

// NewTemplate returns a Template over the given text.
func NewTemplate(text string) Template {
	return Template{Text: text}
}

// Render substitutes each vars entry into its placeholder. Non-string
// values render through fmt.
func (t Template) Render(vars map[string]any) string {
	out := t.Text
	for key, val := range vars {
		re := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(key) + `\s*\}\}`)
		out = re.ReplaceAllLiteralString(out, fmt.Sprint(val))
	}
	return out
}
