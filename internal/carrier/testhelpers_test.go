package carrier

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

// workbook builds an in-memory xlsx file with sheets in insertion order.
type workbook struct {
	name string
	grid [][]string
}

func buildWorkbook(t *testing.T, sheets ...workbook) []byte {
	t.Helper()
	f := xlsx.NewFile()
	for _, ws := range sheets {
		sheet, err := f.AddSheet(ws.name)
		require.NoError(t, err)
		for _, cells := range ws.grid {
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
