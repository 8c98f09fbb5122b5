package textgen

import "strings"

// fallbackPrefixes pair a vocabulary hit with the adjective the template
// leads with. First match wins; the final entry is the default.
var fallbackPrefixes = []struct {
	term   string
	prefix string
}{
	{term: "캠핑", prefix: "감성 차박"},
	{term: "보관", prefix: "위생적인 밀폐"},
	{term: "청소", prefix: "간편한 살림"},
	{term: "수납", prefix: "튼튼한 대용량"},
	{term: "", prefix: "프리미엄 고급형"},
}

// fallbackSuffixes expand each phrase word into related-term candidates.
var fallbackSuffixes = []string{"세트", "보관", "추천", "정리", "수납"}

// FallbackName builds the deterministic template name used when the
// generative service is unavailable: heuristic prefix, combined phrase, leaf
// term, cleaned up and trimmed to the length window. A candidate shorter than
// the window minimum stays short; that is the documented degraded case.
func FallbackName(combinedText, leafTerm string, maxRunes int) string {
	prefix := fallbackPrefixes[len(fallbackPrefixes)-1].prefix
	for _, fp := range fallbackPrefixes {
		if fp.term != "" && strings.Contains(combinedText, fp.term) {
			prefix = fp.prefix
			break
		}
	}

	return postprocessName(prefix+" "+combinedText+" "+leafTerm, maxRunes)
}

// FallbackRelated expands every word of the combined phrase with the fixed
// suffix patterns, most relevant (earliest word, earliest suffix) first.
func FallbackRelated(combinedText string, max int) []string {
	var terms []string
	for _, word := range strings.Fields(sanitizeText(combinedText)) {
		for _, suffix := range fallbackSuffixes {
			if word == suffix {
				continue
			}
			terms = append(terms, word+" "+suffix)
		}
	}
	return dedupeTerms(terms, max)
}
