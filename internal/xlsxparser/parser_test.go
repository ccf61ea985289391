package xlsxparser

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/config"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "points.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"name", "point_lon", "point_lat"},
		{"Café Central", -9.1393, 38.7223},
		{"Porto", "-8.61", "41.15"},
	})

	table, err := Parse(path, config.XLSXSettings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "point_lon", "point_lat"}, table.Headers)
	require.Equal(t, 2, table.Len())

	first := table.Records[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "Café Central", first.Fields["name"])

	lon, err := strconv.ParseFloat(first.Fields["point_lon"], 64)
	require.NoError(t, err)
	assert.InDelta(t, -9.1393, lon, 1e-12)

	assert.Equal(t, "-8.61", table.Records[1].Fields["point_lon"])
}

func TestParse_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "pontos", [][]any{
		{"point_lon", "point_lat"},
		{"1", "2"},
	})

	table, err := Parse(path, config.XLSXSettings{Sheet: "pontos"})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = Parse(path, config.XLSXSettings{Sheet: "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestParse_EmptySheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", nil)

	_, err := Parse(path, config.XLSXSettings{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestBuildTable_Rules(t *testing.T) {
	rows := [][]string{
		{},
		{"name", "", "point_lat"},
		{"a", "1", "2"},
		{"", "", ""},
		{"b"},
	}

	table, err := buildTable(rows, "book.xlsx", "Sheet1")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "Column_2", "point_lat"}, table.Headers)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, 3, table.Records[0].Row)
	assert.Equal(t, 5, table.Records[1].Row)
	assert.Equal(t, "", table.Records[1].Fields["point_lat"])
	assert.Equal(t, []int{4}, table.Skipped)

	_, err = buildTable([][]string{{"a", "a"}}, "book.xlsx", "Sheet1")
	assert.Error(t, err)

	_, err = buildTable([][]string{{"a"}, {"1", "2"}}, "book.xlsx", "Sheet1")
	assert.Error(t, err)
}

func TestParse_NumberFormatDoesNotRound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"name", "point_lon", "point_lat"},
		{"  Café  ", -9.139312, 38.722345},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "C2", style))

	path := filepath.Join(t.TempDir(), "formatted.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := Parse(path, config.XLSXSettings{})
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	assert.Equal(t, "-9.139312", table.Records[0].Fields["point_lon"])
	assert.Equal(t, "38.722345", table.Records[0].Fields["point_lat"])
	assert.Equal(t, "  Café  ", table.Records[0].Fields["name"])
}
