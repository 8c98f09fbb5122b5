package keywords

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *Generator {
	return NewGenerator(3, 5, nil, rand.New(rand.NewSource(1)))
}

func TestCombinations_EveryRowCovered(t *testing.T) {
	tests := []struct {
		name  string
		seeds []string
	}{
		{name: "single keyword", seeds: []string{"양말"}},
		{name: "below minimum window", seeds: []string{"양말", "수면양말"}},
		{name: "exactly minimum window", seeds: []string{"양말", "수면양말", "발목양말"}},
		{name: "long list", seeds: []string{"냄비", "프라이팬", "주걱", "뒤집개", "국자", "집게", "가위"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combos := newTestGenerator().Combinations(tt.seeds)
			require.NotEmpty(t, combos)

			covered := map[int]bool{}
			for _, c := range combos {
				for _, row := range c.SourceRows {
					assert.GreaterOrEqual(t, row, 0)
					assert.Less(t, row, len(tt.seeds))
					covered[row] = true
				}
			}
			for i := range tt.seeds {
				assert.True(t, covered[i], "row %d not covered by any combination", i)
			}
		})
	}
}

func TestCombinations_PaddingKeepsOriginalPrefix(t *testing.T) {
	g := newTestGenerator()
	padded := g.pad([]string{"양말"})

	require.Len(t, padded, 3)
	assert.Equal(t, "양말", padded[0])
	for _, filler := range padded[1:] {
		assert.Contains(t, DefaultFillers, filler)
	}
}

func TestCombinations_DeterministicGivenSeed(t *testing.T) {
	seeds := []string{"양말"}

	a := NewGenerator(3, 5, nil, rand.New(rand.NewSource(7))).Combinations(seeds)
	b := NewGenerator(3, 5, nil, rand.New(rand.NewSource(7))).Combinations(seeds)

	assert.Equal(t, a, b)
}

func TestCombinations_WindowShapes(t *testing.T) {
	seeds := []string{"냄비", "프라이팬", "주걱", "뒤집개", "국자"}
	combos := newTestGenerator().Combinations(seeds)

	// start 0: lengths 3,4,5; start 1: 3,4; start 2: 3
	require.Len(t, combos, 6)
	assert.Equal(t, "냄비 프라이팬 주걱", combos[0].CombinedText)
	assert.Equal(t, "냄비 프라이팬 주걱 뒤집개", combos[1].CombinedText)
	assert.Equal(t, "냄비 프라이팬 주걱 뒤집개 국자", combos[2].CombinedText)
	assert.Equal(t, []int{1, 2, 3}, combos[3].SourceRows)
	assert.Equal(t, 2, combos[5].WindowStart)
	assert.Equal(t, 5, combos[5].WindowEnd)
}

func TestCombinations_EmptyInput(t *testing.T) {
	assert.Nil(t, newTestGenerator().Combinations(nil))
}
