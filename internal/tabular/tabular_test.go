package tabular

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func collect(t *testing.T, data []byte, opts Options) []Row {
	t.Helper()
	rows, err := Collect(context.Background(), data, opts)
	require.NoError(t, err)
	return rows
}

func TestStream_CSVBasic(t *testing.T) {
	data := []byte("Policy Number,Status\nP-1,Active\nP-2,Lapsed\n")

	rows := collect(t, data, Options{Format: FormatCSV})
	require.Len(t, rows, 2)
	assert.Equal(t, "P-1", rows[0].Get("Policy Number"))
	assert.Equal(t, "Lapsed", rows[1].Get("status"))
	assert.Equal(t, []string{"Policy Number", "Status"}, rows[0].Columns())
}

func TestStream_CSVHeaderOffset(t *testing.T) {
	data := []byte("Roster Export 2024\nPolicy Number,Status\nP-1,Active\n")

	rows := collect(t, data, Options{Format: FormatCSV, HeaderRow: 1})
	require.Len(t, rows, 1)
	assert.Equal(t, "Active", rows[0].Get("Status"))
}

func TestStream_CSVBlankLineAboveHeader(t *testing.T) {
	// csv.Reader swallows empty lines, so the offset must count physical
	// lines or the first data row gets eaten as the header.
	data := []byte("\nPolicy Number,Status\nP-1,Active\n")

	rows := collect(t, data, Options{Format: FormatCSV, HeaderRow: 1})
	require.Len(t, rows, 1)
	assert.Equal(t, "P-1", rows[0].Get("Policy Number"))
}

func TestStream_CSVBlankHeaderRow(t *testing.T) {
	data := []byte("Roster Export\n\nP-1,Active\n")

	_, err := Collect(context.Background(), data, Options{Format: FormatCSV, HeaderRow: 1})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestStream_CSVBlankRowsDropped(t *testing.T) {
	data := []byte("Policy Number,Status\nP-1,Active\n,\n\"\",\nP-2,Lapsed\n")

	rows := collect(t, data, Options{Format: FormatCSV})
	assert.Len(t, rows, 2)
}

func TestStream_CSVZeroDataRows(t *testing.T) {
	rows := collect(t, []byte("Policy Number,Status\n"), Options{Format: FormatCSV})
	assert.Empty(t, rows)
}

func TestStream_CSVMissingHeader(t *testing.T) {
	_, err := Collect(context.Background(), []byte("only,one,row\n"), Options{Format: FormatCSV, HeaderRow: 3})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestStream_CSVBOMStripped(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Policy Number,Status\nP-1,Active\n")...)

	rows := collect(t, data, Options{Format: FormatCSV})
	require.Len(t, rows, 1)
	assert.Equal(t, "P-1", rows[0].Get("Policy Number"))
}

func TestStream_CSVWindows1252(t *testing.T) {
	// "José" with a latin-1 é byte.
	data := []byte("First Name,Status\nJos\xe9,Active\n")

	rows := collect(t, data, Options{Format: FormatCSV})
	require.Len(t, rows, 1)
	assert.Equal(t, "José", rows[0].Get("First Name"))
}

func TestStream_CSVPreprocess(t *testing.T) {
	data := []byte("A,B\nraw1,raw2\n")
	strip := func(b []byte) []byte { return bytes.ReplaceAll(b, []byte("raw"), []byte("cooked")) }

	rows := collect(t, data, Options{Format: FormatCSV, Preprocess: strip})
	require.Len(t, rows, 1)
	assert.Equal(t, "cooked1", rows[0].Get("A"))
}

func TestRow_MissingColumn(t *testing.T) {
	rows := collect(t, []byte("A,B\n1,2\n"), Options{Format: FormatCSV})
	assert.Equal(t, "", rows[0].Get("NOPE"))
}

func buildWorkbook(t *testing.T, sheets map[string][][]string) []byte {
	t.Helper()
	f := xlsx.NewFile()
	for name, grid := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, cells := range grid {
			row := sheet.AddRow()
			for _, c := range cells {
				row.AddCell().SetString(c)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestStream_XLSXSheetKeyword(t *testing.T) {
	data := buildWorkbook(t, map[string][][]string{
		"Summary":       {{"junk"}},
		"Policy Detail": {{"STATUSCATEGORY", "ISSUEDATE"}, {"Active", "2024-01-01"}},
	})

	rows := collect(t, data, Options{Format: FormatXLSX, SheetKeyword: "detail"})
	require.Len(t, rows, 1)
	assert.Equal(t, "Active", rows[0].Get("STATUSCATEGORY"))
}

func TestStream_XLSXHeaderSkip(t *testing.T) {
	data := buildWorkbook(t, map[string][][]string{
		"Report": {
			{"Carrier Roster"},
			{"Generated 2024-06-01"},
			{"Policy #", "Policy Status"},
			{"T-100", "Premium Paying"},
			{""},
		},
	})

	rows := collect(t, data, Options{Format: FormatXLSX, HeaderRow: 2})
	require.Len(t, rows, 1)
	assert.Equal(t, "T-100", rows[0].Get("Policy #"))
}

func TestStream_XLSXUnreadable(t *testing.T) {
	_, err := Collect(context.Background(), []byte("not a zip archive"), Options{Format: FormatXLSX})
	assert.Error(t, err)
}
