// Package dates normalizes the date encodings found in carrier roster
// exports: spreadsheet serial numbers, ISO dates, US dates, and a handful
// of fallback layouts.
package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrUnparseable indicates a value that no parse strategy could handle.
// Callers skip the affected row rather than failing the batch.
var ErrUnparseable = errors.New("dates: unparseable date")

// serialEpoch is the spreadsheet day-serial epoch (1899-12-30, which
// absorbs the historical Lotus leap-year bug).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// minSerial guards against small integers (row numbers, counts) being
// misread as date serials. maxSerial caps serials at roughly year 2500;
// larger numerics are digit-packed dates or junk, never day counts.
const (
	minSerial = 59
	maxSerial = 219146
)

// fallbackLayouts are tried after the primary strategies, most common first.
var fallbackLayouts = []string{
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"2006/01/02",
	"01-02-2006",
	"20060102",
	"Jan 2, 2006",
	"2-Jan-2006",
	"2-Jan-06",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Parse converts a cell value into a calendar date. Strategies are tried in
// order: spreadsheet serial, YYYY-MM-DD, MM/DD/YYYY, then fallback layouts.
// The first success wins. Empty or unrecognized input returns ErrUnparseable.
func Parse(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, eris.Wrap(ErrUnparseable, "empty value")
	}

	// Numerics outside the serial range fall through: a value like
	// 20240315 is a digit-packed date, not a day count.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > minSerial && serial < maxSerial {
		return truncate(serialEpoch.AddDate(0, 0, int(serial))), nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return truncate(t), nil
	}
	if t, err := time.Parse("01/02/2006", s); err == nil {
		return truncate(t), nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncate(t), nil
		}
	}

	return time.Time{}, eris.Wrapf(ErrUnparseable, "value %q", s)
}

// MonthsBetween returns the whole-month distance from a to b, ignoring the
// day of month. This coarse measure is intentional: persistency rules count
// elapsed calendar months, not days.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
