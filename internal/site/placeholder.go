package site

import (
	"sort"
	"strings"
)

// Placeholders maps a token name to its replacement. The token NAME is
// written as {{NAME}} in fragment files.
type Placeholders map[string]string

// Token returns the literal marker for name.
func Token(name string) string {
	return "{{" + name + "}}"
}

// Substitute replaces every occurrence of every known token in tmpl with its
// value. The pass is literal and single: replacement text is never scanned
// again, and tokens with no entry in values are left as they are.
func Substitute(tmpl string, values Placeholders) string {
	if len(values) == 0 || !strings.Contains(tmpl, "{{") {
		return tmpl
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, Token(k), values[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// merge returns a new map holding base overlaid with over.
func merge(base, over Placeholders) Placeholders {
	out := make(Placeholders, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
