// Package dateutil normalizes and validates the date strings found in the
// personnel data file. Parsing is strict: one configured layout, no
// auto-detection, and a sane calendar range.
package dateutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/result"
)

// Calendar range accepted for any parsed date. Values outside it are
// rejected even when they parse under the configured layout.
const (
	MinYear = 1900
	MaxYear = 2100
)

// DefaultLayout is the Go layout for DD/MM/YYYY, the format the data file
// ships with. Legacy exports used "20060102"; the layout is a configuration
// option, never guessed from the input.
const DefaultLayout = "02/01/2006"

// ParseDate parses value using the configured layout and validates the
// calendar range. It never panics past its boundary: the failure carries the
// offending raw value so the caller can log and skip.
func ParseDate(value, layout string) result.Result[time.Time] {
	raw := value
	value = strings.TrimSpace(value)
	if value == "" {
		return result.NewFailure[time.Time](
			blame.NewBlame(blame.ErrInvalidDate, "empty date value").
				WithComponent(blame.RowValidation).
				WithField("raw", raw))
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		return result.NewFailure[time.Time](
			blame.NewBlame(blame.ErrInvalidDate, fmt.Sprintf("value %q does not match layout %q", raw, layout)).
				WithComponent(blame.RowValidation).
				WithField("raw", raw).
				WithCause(err))
	}

	if t.Year() < MinYear || t.Year() > MaxYear {
		return result.NewFailure[time.Time](
			blame.NewBlame(blame.ErrInvalidDate, fmt.Sprintf("year %d outside [%d,%d]", t.Year(), MinYear, MaxYear)).
				WithComponent(blame.RowValidation).
				WithField("raw", raw))
	}

	d := Truncate(t)
	return result.NewSuccess(&d)
}

// Truncate drops the time-of-day portion, keeping the civil date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from `from` to `to`.
// Negative when `to` precedes `from`. Both are truncated to civil dates
// first so partial days never skew the count.
func DaysBetween(from, to time.Time) int {
	return int(Truncate(to).Sub(Truncate(from)).Hours() / 24)
}

// FormatDate renders t under the given layout, or an empty string for the
// zero time.
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
