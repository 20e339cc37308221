// Package matching ranks evidence chunks against requirements using a hybrid
// lexical score, optionally blended with an external semantic-similarity
// signal.
package matching

import (
	"strings"
	"unicode"
)

const minTokenLen = 3

// Tokenize lowercases the text, splits it into alphanumeric runs, and drops
// tokens shorter than three characters.
func Tokenize(s string) []string {
	s = strings.ToLower(s)

	var out []string
	var buf []rune
	flush := func() {
		if len(buf) >= minTokenLen {
			out = append(out, string(buf))
		}
		buf = buf[:0]
	}

	for _, r := range s {
		if isAlnum(r) {
			buf = append(buf, r)
		} else {
			flush()
		}
	}
	flush()

	return out
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// jaccard is the Jaccard similarity of two token sets; zero if either side
// is empty.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	sa := toSet(a)
	sb := toSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	inter := 0
	for tok := range sa {
		if _, ok := sb[tok]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
