package tabular

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

func streamXLSX(ctx context.Context, data []byte, opts Options) (<-chan Row, <-chan error) {
	rowCh := make(chan Row, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		if opts.Preprocess != nil {
			data = opts.Preprocess(data)
		}

		f, err := xlsx.OpenBinary(data)
		if err != nil {
			errCh <- eris.Wrap(err, "xlsx: open workbook")
			return
		}

		sheet, err := pickSheet(f, opts.SheetKeyword)
		if err != nil {
			errCh <- err
			return
		}

		var header *headerIndex
		for i, row := range sheet.Rows {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "xlsx: context cancelled")
				return
			}

			cells := rowToStrings(row)

			if header == nil {
				if i < opts.HeaderRow {
					continue
				}
				if blank(cells) {
					errCh <- eris.Wrapf(ErrNoHeader, "xlsx: blank header at row %d", opts.HeaderRow)
					return
				}
				header = newHeaderIndex(cells)
				continue
			}

			if blank(cells) {
				continue
			}

			select {
			case rowCh <- Row{header: header, cells: cells}:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "xlsx: context cancelled")
				return
			}
		}

		if header == nil {
			errCh <- eris.Wrapf(ErrNoHeader, "xlsx: header expected at row %d in sheet %q", opts.HeaderRow, sheet.Name)
		}
	}()

	return rowCh, errCh
}

// pickSheet selects the first sheet whose name contains the keyword,
// case-insensitive, falling back to the first sheet.
func pickSheet(f *xlsx.File, keyword string) (*xlsx.Sheet, error) {
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	if keyword == "" {
		return f.Sheets[0], nil
	}

	needle := strings.ToLower(keyword)
	for _, sheet := range f.Sheets {
		if strings.Contains(strings.ToLower(sheet.Name), needle) {
			return sheet, nil
		}
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
