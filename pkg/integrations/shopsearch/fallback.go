package shopsearch

import (
	"strings"

	"github.com/sellerkit/sellerkit/pkg/domain"
)

// catchAllPath is the guess of last resort when nothing in the phrase matches
// the domain vocabulary.
const catchAllPath = "생활/건강>생활용품>생활잡화"

// vocabularyGuesses maps phrase substrings to a three-level category guess.
// Order matters: the first matching entry wins, most specific vocabulary
// first.
var vocabularyGuesses = []struct {
	terms []string
	path  string
}{
	{terms: []string{"밀폐", "보관", "용기", "통"}, path: "생활/건강>주방용품>보관/밀폐용기"},
	{terms: []string{"냄비", "프라이팬", "조리", "주방"}, path: "생활/건강>주방용품>조리기구"},
	{terms: []string{"캠핑", "야외", "텐트"}, path: "스포츠/레저>캠핑>캠핑용품"},
	{terms: []string{"청소", "세척", "걸레", "솔"}, path: "생활/건강>청소용품>청소도구"},
	{terms: []string{"수납", "정리", "선반"}, path: "생활/건강>수납/정리용품>정리함"},
}

// HeuristicGuess scans the combined phrase for known domain vocabulary and
// returns a best-guess category path, defaulting to a generic catch-all.
func HeuristicGuess(combinedText string) domain.CategoryGuess {
	path := catchAllPath
	for _, vg := range vocabularyGuesses {
		if containsAny(combinedText, vg.terms) {
			path = vg.path
			break
		}
	}

	levels := strings.Split(path, ">")
	return domain.CategoryGuess{
		CategoryPath: path,
		LeafTerm:     levels[len(levels)-1],
	}
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
