package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Stream reads tabular bytes and sends one Row per non-blank data row.
// Caller must consume the returned row channel. Errors are sent on the
// error channel; both channels are closed when processing completes.
func Stream(ctx context.Context, data []byte, opts Options) (<-chan Row, <-chan error) {
	if opts.Format == FormatXLSX {
		return streamXLSX(ctx, data, opts)
	}
	return streamCSV(ctx, data, opts)
}

func streamCSV(ctx context.Context, data []byte, opts Options) (<-chan Row, <-chan error) {
	rowCh := make(chan Row, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		if opts.Preprocess != nil {
			data = opts.Preprocess(data)
		}
		data = bytes.TrimPrefix(data, utf8BOM)
		data = decodeLegacyCharset(data)

		// The header offset counts physical lines, which csv.Reader cannot
		// do: it silently swallows empty lines. Skip the preamble at the
		// byte level before any record parsing.
		data, err := skipPhysicalRows(data, opts.HeaderRow)
		if err != nil {
			errCh <- err
			return
		}
		if blankLine(data) {
			errCh <- eris.Wrapf(ErrNoHeader, "csv: blank header at row %d", opts.HeaderRow)
			return
		}

		reader := csv.NewReader(bytes.NewReader(data))
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // allow variable fields

		var header *headerIndex
		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				if header == nil {
					errCh <- eris.Wrapf(ErrNoHeader, "csv: header expected at row %d", opts.HeaderRow)
				}
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if header == nil {
				header = newHeaderIndex(record)
				continue
			}

			if blank(record) {
				continue
			}

			select {
			case rowCh <- Row{header: header, cells: record}:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// skipPhysicalRows drops the first n physical lines. Running out of lines
// means the declared header row cannot exist.
func skipPhysicalRows(data []byte, n int) ([]byte, error) {
	for i := 0; i < n; i++ {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return nil, eris.Wrapf(ErrNoHeader, "csv: header expected at row %d", n)
		}
		data = data[idx+1:]
	}
	return data, nil
}

// blankLine reports whether the first physical line of data is empty.
func blankLine(data []byte) bool {
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		data = data[:idx]
	}
	return len(bytes.TrimSpace(data)) == 0
}

// decodeLegacyCharset transcodes Windows-1252 exports to UTF-8. Carrier
// rosters routinely arrive in the legacy encoding with accented insured
// names that would otherwise corrupt.
func decodeLegacyCharset(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

// Collect drains a Stream into a slice, returning the first error observed.
// Intended for callers that need the full row set anyway.
func Collect(ctx context.Context, data []byte, opts Options) ([]Row, error) {
	rowCh, errCh := Stream(ctx, data, opts)

	var rows []Row
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	return rows, nil
}
