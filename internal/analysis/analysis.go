// Package analysis provides the text analyzer shared by index
// construction and query scoring. Both sides MUST tokenise identically
// or term lookups silently miss; keeping the analyzer in one package
// makes that a compile-time property rather than a convention.
package analysis

import (
	"strings"
	"unicode"
)

// stopwords are high-frequency English terms excluded from the index
// and from queries. Catalogue relevance is carried by product nouns;
// these terms only inflate posting lists.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "no": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "s": {}, "such": {}, "t": {}, "that": {},
	"the": {}, "their": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "will": {}, "with": {},
}

// Tokenize lowercases the input, splits it into maximal runs of
// letters and digits, and drops stopwords. The returned slice
// preserves occurrence order, so token positions are slice indices.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)

	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// IsStopword reports whether the given lowercase term is excluded
// from indexing.
func IsStopword(term string) bool {
	_, ok := stopwords[term]
	return ok
}
