package parser

import (
	"regexp"
	"strings"
)

// Repair heuristics for JSON the model emitted without fences. These are
// deliberately narrow: trailing commas, unquoted keys, single quotes.
// Anything beyond that is not worth chasing; a region that still fails
// after one repaired retry is skipped.

var (
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKey   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_\-]*)\s*:`)
)

// repairJSON applies the repair transforms in their fixed order:
// trailing-comma removal, quote insertion around bare keys, then
// single-to-double quote normalization.
func repairJSON(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKey.ReplaceAllString(s, `$1"$2":`)
	s = strings.ReplaceAll(s, "'", `"`)
	return s
}
