package store

import (
	"strings"
	"unicode"
)

// Slugify lowercases title and replaces every run of whitespace with a
// single hyphen. Leading and trailing whitespace turn into hyphens too;
// nothing else is stripped.
//
//	Slugify("Hello World")  == "hello-world"
//	Slugify("a \t\n b")     == "a-b"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	inSpace := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}
