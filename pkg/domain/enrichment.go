package domain

import "context"

// UnknownCategoryCode is returned when neither an exact nor a fuzzy category
// match can be established for a path.
const UnknownCategoryCode = "00000000"

// FuzzyPathMarker prefixes the category path column of rows whose category was
// resolved through fuzzy matching, so a reviewer can audit them.
const FuzzyPathMarker = "X"

// SeedRow is one record of the input table: an opaque product code and the
// seed keyword the enrichment starts from.
type SeedRow struct {
	RowIndex    int
	ProductCode string
	SeedKeyword string
}

// KeywordCombination is a contiguous window of seed keywords joined into a
// single search phrase. SourceRows lists the input row indices the window was
// built from, in order.
type KeywordCombination struct {
	SourceRows   []int
	CombinedText string
	WindowStart  int
	WindowEnd    int
}

// CategoryGuess is the product search adapter's answer for one combination:
// a ">"-joined hierarchy path of 1-4 levels and its most specific term.
type CategoryGuess struct {
	CategoryPath string
	LeafTerm     string
}

// CategoryResolution is the mapped category code for a path. IsFuzzy marks a
// below-full-certainty match, including the unknown-code fallback.
type CategoryResolution struct {
	Code    string
	IsFuzzy bool
}

type ResultStatus string

const (
	ResultStatusDone   ResultStatus = "done"
	ResultStatusFailed ResultStatus = "failed"
)

// EnrichedResult holds everything the pipeline produced for one combination.
type EnrichedResult struct {
	CombinedText    string
	Code            string
	CategoryPath    string
	ProductName     string
	RelatedKeywords []string
	Status          ResultStatus
}

// EnrichedRow is an input row merged with the enrichment values of the
// combination that produced them.
type EnrichedRow struct {
	SeedRow

	CategoryCode    string
	CategoryPath    string
	ProductName     string
	RelatedKeywords []string
	UsedCombination string
	Status          ResultStatus
}

// Counts summarizes a run for the caller.
type Counts struct {
	Total     int
	Succeeded int
	Failed    int
}

// ProductSearcher resolves a combined search phrase to a category guess.
// Implementations absorb their own failures and always return a usable guess.
type ProductSearcher interface {
	SearchCategory(ctx context.Context, combinedText string) CategoryGuess
}

// TextGenerator produces the marketing name and related search terms for a
// combination. Implementations absorb their own failures and fall back to
// deterministic templates.
type TextGenerator interface {
	GenerateName(ctx context.Context, combinedText, categoryPath, leafTerm string) string
	GenerateRelated(ctx context.Context, combinedText, productName string) []string
}

// CategoryCoder maps a category path to its code.
type CategoryCoder interface {
	FindCategoryCode(path string) CategoryResolution
}
