package keywords

import (
	"math/rand"
	"strings"

	"github.com/sellerkit/sellerkit/pkg/domain"
)

// DefaultFillers pads short keyword lists up to the minimum window size.
var DefaultFillers = []string{"추천", "인기", "세트", "정리", "수납", "휴대용"}

// Generator expands an ordered seed keyword list into overlapping sliding
// window combinations of MinWindow..MaxWindow consecutive keywords.
type Generator struct {
	MinWindow int
	MaxWindow int
	Fillers   []string
	Rand      *rand.Rand
}

func NewGenerator(minWindow, maxWindow int, fillers []string, rnd *rand.Rand) *Generator {
	if len(fillers) == 0 {
		fillers = DefaultFillers
	}
	return &Generator{
		MinWindow: minWindow,
		MaxWindow: maxWindow,
		Fillers:   fillers,
		Rand:      rnd,
	}
}

// Combinations emits one combination per (start, length) window over the
// keyword list. Lists shorter than MinWindow are padded with filler terms
// first; source row indices never point past the original list.
func (g *Generator) Combinations(seeds []string) []domain.KeywordCombination {
	if len(seeds) == 0 {
		return nil
	}

	original := len(seeds)
	padded := g.pad(seeds)

	var combos []domain.KeywordCombination
	for start := 0; start <= len(padded)-g.MinWindow; start++ {
		maxLen := g.MaxWindow
		if rest := len(padded) - start; rest < maxLen {
			maxLen = rest
		}
		for length := g.MinWindow; length <= maxLen; length++ {
			end := start + length
			rows := make([]int, 0, length)
			for i := start; i < end && i < original; i++ {
				rows = append(rows, i)
			}
			if len(rows) == 0 {
				// window made of fillers only, anchor it to the last real row
				rows = append(rows, original-1)
			}
			combos = append(combos, domain.KeywordCombination{
				SourceRows:   rows,
				CombinedText: strings.Join(padded[start:end], " "),
				WindowStart:  start,
				WindowEnd:    end,
			})
		}
	}

	return combos
}

func (g *Generator) pad(seeds []string) []string {
	if len(seeds) >= g.MinWindow {
		return seeds
	}

	padded := make([]string, len(seeds), g.MinWindow)
	copy(padded, seeds)
	for len(padded) < g.MinWindow {
		padded = append(padded, g.Fillers[g.Rand.Intn(len(g.Fillers))])
	}
	return padded
}
