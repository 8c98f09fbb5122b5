package pipeline

import (
	"github.com/sellerkit/sellerkit/pkg/domain"
)

// Assemble merges combination results back onto the input rows. A row covered
// by several combinations keeps the values of the last done result that
// touched it, which corresponds to the most specific window generated for it.
// Every input row yields exactly one output row; rows no combination reached
// are marked failed with empty enrichment columns.
func Assemble(rows []domain.SeedRow, combos []domain.KeywordCombination, results []domain.EnrichedResult) []domain.EnrichedRow {
	out := make([]domain.EnrichedRow, len(rows))
	for i, row := range rows {
		out[i] = domain.EnrichedRow{
			SeedRow: row,
			Status:  domain.ResultStatusFailed,
		}
	}

	for i := range results {
		if i >= len(combos) {
			break
		}
		res := results[i]
		if res.Status != domain.ResultStatusDone {
			continue
		}
		for _, rowIdx := range combos[i].SourceRows {
			if rowIdx < 0 || rowIdx >= len(out) {
				continue
			}
			out[rowIdx].CategoryCode = res.Code
			out[rowIdx].CategoryPath = res.CategoryPath
			out[rowIdx].ProductName = res.ProductName
			out[rowIdx].RelatedKeywords = res.RelatedKeywords
			out[rowIdx].UsedCombination = res.CombinedText
			out[rowIdx].Status = domain.ResultStatusDone
		}
	}

	return out
}
