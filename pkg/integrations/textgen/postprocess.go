package textgen

import (
	"strings"
	"unicode"
)

// sanitizeText strips everything outside Hangul, non-Latin letters, digits
// and spaces, then collapses whitespace runs. Latin letters are dropped
// together with punctuation because listing names must stay in the local
// script.
func sanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// dedupeTokens removes repeated whole-word tokens, keeping first occurrences
// in order.
func dedupeTokens(s string) string {
	seen := map[string]bool{}
	var out []string
	for _, tok := range strings.Fields(s) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// trimToWords shortens s to at most maxRunes runes without cutting a word in
// half. A single word longer than the budget is kept whole.
func trimToWords(s string, maxRunes int) string {
	if len([]rune(s)) <= maxRunes {
		return s
	}

	words := strings.Fields(s)
	out := ""
	for _, w := range words {
		candidate := w
		if out != "" {
			candidate = out + " " + w
		}
		if len([]rune(candidate)) > maxRunes && out != "" {
			break
		}
		out = candidate
	}
	return out
}

// postprocessName applies the shared cleanup chain to a name candidate.
func postprocessName(s string, maxRunes int) string {
	return trimToWords(dedupeTokens(sanitizeText(s)), maxRunes)
}

// dedupeTerms drops case-insensitive duplicates and empty entries, keeping
// order, capped at max entries.
func dedupeTerms(terms []string, max int) []string {
	seen := map[string]bool{}
	var out []string
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, term)
		if len(out) == max {
			break
		}
	}
	return out
}
