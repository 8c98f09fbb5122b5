package category

import (
	"github.com/sellerkit/sellerkit/pkg/domain"
)

// DefaultFuzzyThreshold is the minimum cosine similarity a fuzzy candidate
// must exceed to be accepted. Inherited from the reference data owners;
// review-pending rather than derived.
const DefaultFuzzyThreshold = 0.7

// Mapper resolves category paths against an index snapshot. It performs no
// I/O and never mutates the index, so a single mapper is safe to share across
// concurrent resolutions.
type Mapper struct {
	idx       *Index
	threshold float64
}

func NewMapper(idx *Index, threshold float64) *Mapper {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Mapper{idx: idx, threshold: threshold}
}

// FindCategoryCode maps a path to its code: exact dictionary hit first, then
// the fuzzy nearest neighbour when it clears the threshold, then the unknown
// sentinel. Ties keep the first-encountered reference entry.
func (m *Mapper) FindCategoryCode(path string) domain.CategoryResolution {
	if code, ok := m.idx.PathToCode[path]; ok {
		return domain.CategoryResolution{Code: code, IsFuzzy: false}
	}

	if !m.idx.Empty() {
		vec := m.idx.Vectorizer.Transform(path)
		best, bestScore := -1, 0.0
		for i, ref := range m.idx.Vectors {
			if score := Dot(vec, ref); score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 && bestScore > m.threshold {
			return domain.CategoryResolution{Code: m.idx.Codes[best], IsFuzzy: true}
		}
	}

	return domain.CategoryResolution{Code: domain.UnknownCategoryCode, IsFuzzy: true}
}
