package dateutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

func TestParseDateValid(t *testing.T) {
	res := dateutil.ParseDate("15/06/2025", dateutil.DefaultLayout)
	require.True(t, res.IsSuccess())

	d := res.ToValue()
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, time.UTC, d.Location())
}

func TestParseDateLegacyLayout(t *testing.T) {
	res := dateutil.ParseDate("20240101", "20060102")
	require.True(t, res.IsSuccess())
	assert.Equal(t, 2024, res.ToValue().Year())
}

func TestParseDateRejectsCalendarGarbage(t *testing.T) {
	cases := []string{
		"99/99/9999",
		"31/02/2024", // February 31st
		"00/01/2024",
		"12/13/2024", // month 13 under DD/MM
		"not a date",
		"",
		"   ",
	}
	for _, raw := range cases {
		res := dateutil.ParseDate(raw, dateutil.DefaultLayout)
		require.True(t, res.IsError(), "expected failure for %q", raw)
		assert.Equal(t, blame.ErrInvalidDate, res.Error().FetchErrCode())
		assert.Equal(t, blame.RowValidation, res.Error().FetchComponent())
	}
}

func TestParseDateRejectsOutOfRangeYears(t *testing.T) {
	for _, raw := range []string{"01/01/1899", "01/01/2101"} {
		res := dateutil.ParseDate(raw, dateutil.DefaultLayout)
		require.True(t, res.IsError(), "expected failure for %q", raw)
		assert.Equal(t, raw, res.Error().FetchFields()["raw"])
	}

	// Boundary years are accepted.
	assert.True(t, dateutil.ParseDate("01/01/1900", dateutil.DefaultLayout).IsSuccess())
	assert.True(t, dateutil.ParseDate("31/12/2100", dateutil.DefaultLayout).IsSuccess())
}

func TestParseDateFailureCarriesRawValue(t *testing.T) {
	res := dateutil.ParseDate("99/99/9999", dateutil.DefaultLayout)
	require.True(t, res.IsError())
	assert.Equal(t, "99/99/9999", res.Error().FetchFields()["raw"])
}

func TestDaysBetween(t *testing.T) {
	ref := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 30, dateutil.DaysBetween(ref, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -5, dateutil.DaysBetween(ref, time.Date(2025, 5, 27, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, dateutil.DaysBetween(ref, time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC)))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "15/06/2025", dateutil.FormatDate(d, dateutil.DefaultLayout))
	assert.Equal(t, "", dateutil.FormatDate(time.Time{}, dateutil.DefaultLayout))
}
