package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sellerkit/sellerkit/pkg/domain"
)

func writeWorkbook(t *testing.T, path string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestReadSeedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, [][]string{
		{"product_code", "seed_keyword"},
		{"P001", "수면양말"},
		{"P002", "  밀폐용기  "},
		{"P003", ""}, // skipped, no keyword
	})

	rows, err := ReadSeedRows(path)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.SeedRow{RowIndex: 0, ProductCode: "P001", SeedKeyword: "수면양말"}, rows[0])
	assert.Equal(t, "밀폐용기", rows[1].SeedKeyword)
}

func TestReadSeedRows_MissingKeywordColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, [][]string{
		{"product_code", "name"},
		{"P001", "x"},
	})

	_, err := ReadSeedRows(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed_keyword")
}

func TestReadCategoryReference_JoinedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.xlsx")
	writeWorkbook(t, path, [][]string{
		{"category_path", "category_code"},
		{"생활/건강>주방용품>조리기구", "50002447"},
	})

	pairs, err := ReadCategoryReference(path)

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "생활/건강>주방용품>조리기구", pairs[0].Path)
	assert.Equal(t, "50002447", pairs[0].Code)
}

func TestReadCategoryReference_LevelColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.xlsx")
	writeWorkbook(t, path, [][]string{
		{"level1", "level2", "level3", "level4", "category_code"},
		{"패션잡화", "양말", "수면양말", "", "50001234"},
	})

	pairs, err := ReadCategoryReference(path)

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "패션잡화>양말>수면양말", pairs[0].Path)
}

func TestWriteEnriched_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	rows := []domain.EnrichedRow{
		{
			SeedRow:         domain.SeedRow{RowIndex: 0, ProductCode: "P001", SeedKeyword: "수면양말"},
			CategoryCode:    "50001234",
			CategoryPath:    "X패션잡화>양말>수면양말",
			ProductName:     "포근한 수면양말 기모 겨울 선물",
			RelatedKeywords: []string{"수면양말 세트", "수면양말 보관"},
			UsedCombination: "수면양말 기모 겨울",
			Status:          domain.ResultStatusDone,
		},
	}

	require.NoError(t, WriteEnriched(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{
		"product_code", "seed_keyword", "category_code", "category_path",
		"product_name", "related_keywords", "status", "used_combination",
	}, got[0])
	assert.Equal(t, "X패션잡화>양말>수면양말", got[1][3])
	assert.Equal(t, "수면양말 세트,수면양말 보관", got[1][5])
	assert.Equal(t, "done", got[1][6])
}
