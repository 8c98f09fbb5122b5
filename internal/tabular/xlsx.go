package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sellerkit/sellerkit/internal/category"
	"github.com/sellerkit/sellerkit/pkg/domain"
)

const (
	ColumnSeedKeyword = "seed_keyword"
	ColumnProductCode = "product_code"
)

var enrichmentColumns = []string{
	"category_code",
	"category_path",
	"product_name",
	"related_keywords",
	"status",
	"used_combination",
}

// ReadSeedRows loads the whole input workbook into memory. The sheet must
// carry a seed_keyword column; product_code is an optional passthrough.
func ReadSeedRows(path string) ([]domain.SeedRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return seedRowsFromFile(f)
}

// ReadSeedRowsFrom is ReadSeedRows for an already-open stream, e.g. an HTTP
// upload.
func ReadSeedRowsFrom(r io.Reader) ([]domain.SeedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return seedRowsFromFile(f)
}

func seedRowsFromFile(f *excelize.File) ([]domain.SeedRow, error) {
	headers, rows, err := sheetRows(f)
	if err != nil {
		return nil, err
	}

	keywordCol := columnIndex(headers, ColumnSeedKeyword)
	if keywordCol < 0 {
		return nil, fmt.Errorf("input file is missing the %q column", ColumnSeedKeyword)
	}
	codeCol := columnIndex(headers, ColumnProductCode)

	var out []domain.SeedRow
	for _, row := range rows {
		keyword := cell(row, keywordCol)
		if keyword == "" {
			continue
		}
		out = append(out, domain.SeedRow{
			RowIndex:    len(out),
			ProductCode: cell(row, codeCol),
			SeedKeyword: keyword,
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("input file has no data rows")
	}
	return out, nil
}

// ReadCategoryReference loads (path, code) pairs. Both reference schemas are
// accepted: a pre-joined category_path column, or level columns level1..level4
// joined with ">".
func ReadCategoryReference(path string) ([]category.ReferencePair, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()

	headers, rows, err := sheetRows(f)
	if err != nil {
		return nil, err
	}

	codeCol := columnIndex(headers, "category_code")
	if codeCol < 0 {
		return nil, fmt.Errorf("reference file is missing the category_code column")
	}

	pathCol := columnIndex(headers, "category_path")
	var levelCols []int
	if pathCol < 0 {
		for _, name := range []string{"level1", "level2", "level3", "level4"} {
			if col := columnIndex(headers, name); col >= 0 {
				levelCols = append(levelCols, col)
			}
		}
		if len(levelCols) == 0 {
			return nil, fmt.Errorf("reference file needs a category_path column or level1..level4 columns")
		}
	}

	var pairs []category.ReferencePair
	for _, row := range rows {
		code := cell(row, codeCol)
		if code == "" {
			continue
		}

		var catPath string
		if pathCol >= 0 {
			catPath = cell(row, pathCol)
		} else {
			var levels []string
			for _, col := range levelCols {
				if v := cell(row, col); v != "" {
					levels = append(levels, v)
				}
			}
			catPath = strings.Join(levels, ">")
		}
		if catPath == "" {
			continue
		}

		pairs = append(pairs, category.ReferencePair{Path: catPath, Code: code})
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("reference file has no usable rows")
	}
	return pairs, nil
}

// WriteEnriched writes the output workbook: the passthrough columns followed
// by the enrichment columns.
func WriteEnriched(path string, rows []domain.EnrichedRow) error {
	f, err := enrichedFile(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save output file: %w", err)
	}
	return nil
}

// WriteEnrichedTo streams the output workbook, e.g. as an HTTP response body.
func WriteEnrichedTo(w io.Writer, rows []domain.EnrichedRow) error {
	f, err := enrichedFile(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func enrichedFile(rows []domain.EnrichedRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := append([]string{ColumnProductCode, ColumnSeedKeyword}, enrichmentColumns...)
	if err := setRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []string{
			row.ProductCode,
			row.SeedKeyword,
			row.CategoryCode,
			row.CategoryPath,
			row.ProductName,
			strings.Join(row.RelatedKeywords, ","),
			string(row.Status),
			row.UsedCombination,
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cellRef, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func sheetRows(f *excelize.File) ([]string, [][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet is empty")
	}

	headers := rows[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, rows[1:], nil
}

func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
