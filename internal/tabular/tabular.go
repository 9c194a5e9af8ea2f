// Package tabular extracts ordered field-value rows from delimited-text and
// spreadsheet byte streams. The header row may sit below the first physical
// row, fully blank rows are dropped, and carriers may declare byte-level
// preprocessing that runs before any row splitting.
package tabular

import (
	"errors"
	"strings"
)

// Format declares how a carrier file's bytes should be interpreted.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrNoHeader indicates the declared header row does not exist in the file.
var ErrNoHeader = errors.New("tabular: header row not found")

// Options configures one streaming read.
type Options struct {
	Format Format

	// HeaderRow is the zero-based physical index of the header row.
	HeaderRow int

	// SheetKeyword selects the spreadsheet sheet whose name contains the
	// keyword (case-insensitive). Empty, or no match, falls back to the
	// first sheet. CSV input ignores it.
	SheetKeyword string

	// Preprocess, when set, rewrites the raw bytes before row splitting.
	// Used for carrier-specific escaping such as formula-wrapped cells.
	Preprocess func([]byte) []byte

	// Delimiter overrides the CSV field separator (default ',').
	Delimiter rune
}

// Row is an ordered mapping from source column label to cell value.
type Row struct {
	header *headerIndex
	cells  []string
}

// Get returns the trimmed cell value under the given column label,
// matched case-insensitively. Missing columns yield "".
func (r Row) Get(label string) string {
	if r.header == nil {
		return ""
	}
	i, ok := r.header.index[normalizeLabel(label)]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Columns returns the header labels in source order.
func (r Row) Columns() []string {
	if r.header == nil {
		return nil
	}
	return r.header.labels
}

type headerIndex struct {
	labels []string
	index  map[string]int
}

func newHeaderIndex(cells []string) *headerIndex {
	h := &headerIndex{index: make(map[string]int, len(cells))}
	for i, c := range cells {
		label := strings.TrimSpace(c)
		h.labels = append(h.labels, label)
		key := normalizeLabel(label)
		if _, dup := h.index[key]; !dup {
			h.index[key] = i
		}
	}
	return h
}

func normalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
