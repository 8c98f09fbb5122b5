package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sellerkit/sellerkit/internal/keywords"
	"github.com/sellerkit/sellerkit/pkg/domain"
)

const (
	DefaultBatchSize   = 10
	DefaultConcurrency = 5
	DefaultBatchDelay  = 500 * time.Millisecond
)

type Dependencies struct {
	Searcher  domain.ProductSearcher
	Generator domain.TextGenerator
	Coder     domain.CategoryCoder
	Combiner  *keywords.Generator

	BatchSize   int
	Concurrency int
	BatchDelay  time.Duration

	// Sleep is swappable so tests do not wait out the settling delay.
	Sleep func(time.Duration)
}

// Pipeline drives a full enrichment run: combinations, batched adapter
// stages under bounded concurrency, category resolution, and row assembly.
type Pipeline struct {
	searcher  domain.ProductSearcher
	generator domain.TextGenerator
	coder     domain.CategoryCoder
	combiner  *keywords.Generator

	batchSize   int
	concurrency int
	batchDelay  time.Duration
	sleep       func(time.Duration)
}

func New(deps Dependencies) *Pipeline {
	p := &Pipeline{
		searcher:    deps.Searcher,
		generator:   deps.Generator,
		coder:       deps.Coder,
		combiner:    deps.Combiner,
		batchSize:   deps.BatchSize,
		concurrency: deps.Concurrency,
		batchDelay:  deps.BatchDelay,
		sleep:       deps.Sleep,
	}
	if p.batchSize <= 0 {
		p.batchSize = DefaultBatchSize
	}
	if p.concurrency <= 0 {
		p.concurrency = DefaultConcurrency
	}
	if p.batchDelay <= 0 {
		p.batchDelay = DefaultBatchDelay
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	return p
}

// Process enriches the input rows and returns one output row per input row,
// plus counts. The only errors are run-level ones; per-item problems are
// absorbed into failed rows.
func (p *Pipeline) Process(ctx context.Context, rows []domain.SeedRow) ([]domain.EnrichedRow, domain.Counts, error) {
	started := time.Now()

	if len(rows) == 0 {
		return nil, domain.Counts{}, fmt.Errorf("input table has no rows")
	}

	seeds := make([]string, len(rows))
	for i, row := range rows {
		seeds[i] = row.SeedKeyword
	}

	combos := p.combiner.Combinations(seeds)
	log.Info().Int("rows", len(rows)).Int("combinations", len(combos)).Msg("starting enrichment run")

	results := make([]domain.EnrichedResult, 0, len(combos))
	for batchStart := 0; batchStart < len(combos); batchStart += p.batchSize {
		batchEnd := batchStart + p.batchSize
		if batchEnd > len(combos) {
			batchEnd = len(combos)
		}
		batch := combos[batchStart:batchEnd]

		batchStarted := time.Now()
		results = append(results, p.processBatch(ctx, batch)...)
		log.Debug().
			Int("batch_start", batchStart).
			Int("batch_size", len(batch)).
			Dur("elapsed", time.Since(batchStarted)).
			Msg("batch done")

		if batchEnd < len(combos) {
			p.sleep(p.batchDelay)
		}
	}

	out := Assemble(rows, combos, results)

	counts := domain.Counts{Total: len(out)}
	for _, row := range out {
		if row.Status == domain.ResultStatusDone {
			counts.Succeeded++
		} else {
			counts.Failed++
		}
	}

	log.Info().
		Int("total", counts.Total).
		Int("succeeded", counts.Succeeded).
		Int("failed", counts.Failed).
		Dur("elapsed", time.Since(started)).
		Msg("enrichment run finished")

	return out, counts, nil
}

// processBatch runs the three adapter stages for one batch. Stages are
// separated by hard barriers: names are only generated once every category
// search in the batch has settled, related terms once every name has.
func (p *Pipeline) processBatch(ctx context.Context, batch []domain.KeywordCombination) []domain.EnrichedResult {
	guesses := make([]domain.CategoryGuess, len(batch))
	p.forEach(len(batch), func(i int) {
		guesses[i] = p.searcher.SearchCategory(ctx, batch[i].CombinedText)
	})

	// category resolution is CPU-bound and fast, no reason to fan out
	resolutions := make([]domain.CategoryResolution, len(batch))
	for i, guess := range guesses {
		resolutions[i] = p.coder.FindCategoryCode(guess.CategoryPath)
	}

	names := make([]string, len(batch))
	p.forEach(len(batch), func(i int) {
		names[i] = p.generator.GenerateName(ctx, batch[i].CombinedText, guesses[i].CategoryPath, guesses[i].LeafTerm)
	})

	related := make([][]string, len(batch))
	p.forEach(len(batch), func(i int) {
		related[i] = p.generator.GenerateRelated(ctx, batch[i].CombinedText, names[i])
	})

	results := make([]domain.EnrichedResult, len(batch))
	for i := range batch {
		results[i] = p.assembleItem(batch[i], guesses[i], resolutions[i], names[i], related[i])
	}
	return results
}

// assembleItem zips one combination's stage outputs. A panic here is an
// orchestration bug, not an adapter fault; it downgrades the item to a
// best-effort failed result instead of aborting the run.
func (p *Pipeline) assembleItem(combo domain.KeywordCombination, guess domain.CategoryGuess, res domain.CategoryResolution, name string, related []string) (result domain.EnrichedResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("combination", combo.CombinedText).Msg("item assembly failed")
			result = domain.EnrichedResult{
				CombinedText: combo.CombinedText,
				Status:       domain.ResultStatusFailed,
			}
		}
	}()

	path := guess.CategoryPath
	if res.IsFuzzy {
		path = domain.FuzzyPathMarker + path
	}

	return domain.EnrichedResult{
		CombinedText:    combo.CombinedText,
		Code:            res.Code,
		CategoryPath:    path,
		ProductName:     name,
		RelatedKeywords: related,
		Status:          domain.ResultStatusDone,
	}
}

// forEach runs fn for every index concurrently, bounded by the semaphore,
// and waits for all of them.
func (p *Pipeline) forEach(n int, fn func(i int)) {
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn(i)
		}(i)
	}
	wg.Wait()
}
