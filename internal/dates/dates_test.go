package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SpreadsheetSerial(t *testing.T) {
	got, err := Parse("44562")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParse_ISOAndUSAgree(t *testing.T) {
	iso, err := Parse("2022-01-01")
	require.NoError(t, err)

	us, err := Parse("01/01/2022")
	require.NoError(t, err)

	assert.Equal(t, iso, us)
	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), iso)
}

func TestParse_SingleDigitUS(t *testing.T) {
	got, err := Parse("3/7/2021")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.March, 7, 0, 0, 0, 0, time.UTC), got)
}

func TestParse_SmallSerialRejected(t *testing.T) {
	// Small integers are row artifacts, not dates.
	_, err := Parse("42")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParse_Unparseable(t *testing.T) {
	for _, v := range []string{"", "  ", "n/a", "pending", "--"} {
		_, err := Parse(v)
		assert.ErrorIs(t, err, ErrUnparseable, "value %q", v)
	}
}

func TestParse_FractionalSerial(t *testing.T) {
	// Serials can carry a time component; the date part wins.
	got, err := Parse("44562.75")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParse_DigitPackedDate(t *testing.T) {
	// Way above any plausible day serial; must read as YYYYMMDD, never be
	// multiplied into a garbage in-range date.
	got, err := Parse("20240315")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParse_HugeNumericRejected(t *testing.T) {
	for _, v := range []string{"300000", "99999999999"} {
		_, err := Parse(v)
		assert.ErrorIs(t, err, ErrUnparseable, "value %q", v)
	}
}

func TestMonthsBetween(t *testing.T) {
	a := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 29, MonthsBetween(a, time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 17, MonthsBetween(a, time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, MonthsBetween(a, time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, MonthsBetween(a, time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
