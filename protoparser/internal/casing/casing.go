// Package casing converts file names to the identifier casing used for
// generated class names.
package casing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordSeparatorRegex = regexp.MustCompile(`[-_]`)

// CamelCase converts snake or kebab casing to camel casing; each word
// separated by `-` or `_` gets its first letter upper-cased and the rest
// lower-cased, so "my_schema" becomes "MySchema".
func CamelCase(s string) string {
	// Casers are stateful, so they are not shared between calls
	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)

	var result strings.Builder
	for _, word := range wordSeparatorRegex.Split(s, -1) {
		if word == "" {
			continue
		}
		first, rest := splitFirstRune(word)
		result.WriteString(title.String(first))
		result.WriteString(lower.String(rest))
	}
	return result.String()
}

func splitFirstRune(s string) (string, string) {
	for i := range s {
		if i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}
