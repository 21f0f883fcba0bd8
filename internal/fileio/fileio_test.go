package fileio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	csvData := "name,address,streetNumber,identifier\n" +
		"John Carter,Alf Casey Road,34,BOX 17\n" +
		",,,\n" +
		"李四,北京市朝阳区某路,5,箱号 9\n"

	rows, err := ReadAnyMaps(strings.NewReader(csvData), "table.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2, "all-empty rows are skipped")

	assert.Equal(t, "John Carter", rows[0]["name"])
	assert.Equal(t, "34", rows[0]["streetNumber"])
	assert.Equal(t, "李四", rows[1]["name"])
	assert.Equal(t, "北京市朝阳区某路", rows[1]["address"])
}

func TestReadCSVHeaderRowOffset(t *testing.T) {
	csvData := "exported 2026-08-01,,\nname,address,identifier\nJohn,Main Road,BOX 2\n"
	rows, err := ReadAnyMaps(strings.NewReader(csvData), "t.csv", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Main Road", rows[0]["address"])
}

func TestReadAnyMapsUnsupported(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader("x"), "table.pdf", 1)
	assert.Error(t, err)
}

func TestPickHeaderBackfill(t *testing.T) {
	h := pickHeader([][]string{{"name", "", "qty"}}, 1)
	assert.Equal(t, []string{"name", "Column 2", "qty"}, h)
}

func TestRowsToMapsShortRows(t *testing.T) {
	rows := [][]string{
		{"name", "address"},
		{"John"},
	}
	out := rowsToMaps(rows, []string{"name", "address"}, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "John", out[0]["name"])
	assert.Equal(t, "", out[0]["address"])
}

func TestNormalizeCell(t *testing.T) {
	assert.Equal(t, "Main Road", normalizeCell(" Main Road　"))
}
