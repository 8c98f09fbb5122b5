package category

import (
	"math"
	"strings"
)

// SparseVector maps vocabulary column -> weight. Vectors produced by the
// vectorizer are L2-normalized, so cosine similarity reduces to a dot product.
type SparseVector map[int]float64

// Vectorizer is a fitted character n-gram tf-idf model over category paths.
type Vectorizer struct {
	MinN  int
	MaxN  int
	Vocab map[string]int
	IDF   []float64
}

// FitVectorizer builds the n-gram vocabulary and inverse document frequencies
// from the reference paths.
func FitVectorizer(paths []string, minN, maxN int) *Vectorizer {
	v := &Vectorizer{
		MinN:  minN,
		MaxN:  maxN,
		Vocab: make(map[string]int),
	}

	docFreq := []int{}
	for _, p := range paths {
		seen := map[int]bool{}
		for _, gram := range v.ngrams(p) {
			col, ok := v.Vocab[gram]
			if !ok {
				col = len(v.Vocab)
				v.Vocab[gram] = col
				docFreq = append(docFreq, 0)
			}
			if !seen[col] {
				docFreq[col]++
				seen[col] = true
			}
		}
	}

	v.IDF = make([]float64, len(docFreq))
	total := float64(len(paths))
	for col, df := range docFreq {
		v.IDF[col] = math.Log((1+total)/(1+float64(df))) + 1
	}

	return v
}

// Transform vectorizes a path with the fitted vocabulary. Unknown n-grams are
// ignored. The result is L2-normalized; an all-unknown input yields an empty
// vector.
func (v *Vectorizer) Transform(path string) SparseVector {
	counts := map[int]float64{}
	for _, gram := range v.ngrams(path) {
		if col, ok := v.Vocab[gram]; ok {
			counts[col]++
		}
	}

	vec := make(SparseVector, len(counts))
	var norm float64
	for col, tf := range counts {
		w := tf * v.IDF[col]
		vec[col] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for col := range vec {
			vec[col] /= norm
		}
	}

	return vec
}

func (v *Vectorizer) ngrams(s string) []string {
	runes := []rune(strings.ToLower(strings.TrimSpace(s)))

	var grams []string
	for n := v.MinN; n <= v.MaxN; n++ {
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
	}
	return grams
}

// Dot computes the cosine similarity of two normalized sparse vectors.
func Dot(a, b SparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for col, w := range a {
		sum += w * b[col]
	}
	return sum
}
