// Package htmlsanitize strips markup from user-supplied free text before
// it is persisted. Consultant names, client names, and skills are plain
// text; anything that looks like HTML in them is an accident or an attack.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML from s and trims surrounding whitespace.
func Strip(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// StripAll applies Strip to every element, dropping entries that become
// empty.
func StripAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if cleaned := Strip(s); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
