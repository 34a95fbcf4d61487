// Package dates handles the three date representations the Fineract API
// exposes: [year, month, day] triplets in template documents, the canonical
// "dd MMMM yyyy" wire format used by write operations, and ISO "yyyy-MM-dd"
// used by client creation.
package dates

import (
	"fmt"
	"time"
)

// Go layouts for the backend's date formats.
const (
	CanonicalLayout = "02 January 2006"
	ISOLayout       = "2006-01-02"
	MonthDayLayout  = "02 January"
)

// Java-style format descriptors sent verbatim in payloads. The backend parses
// the accompanying date fields against these, so they must not be translated.
const (
	CanonicalFormat = "dd MMMM yyyy"
	ISOFormat       = "yyyy-MM-dd"
	MonthDayFormat  = "dd MMMM"
)

// Date is a calendar date with no time or zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// InvalidDateError reports a (year, month, day) combination that is not a
// real calendar date.
type InvalidDateError struct {
	Year, Month, Day int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: year=%d month=%d day=%d", e.Year, e.Month, e.Day)
}

// FormatMismatchError reports text that does not match the expected date
// format.
type FormatMismatchError struct {
	Input  string
	Format string
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("date %q does not match expected format %q", e.Input, e.Format)
}

// New validates the triplet and returns the date. Validation is a time.Date
// round trip: Go normalizes out-of-range components, so any drift means the
// triplet was not a real date.
func New(year, month, day int) (Date, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, &InvalidDateError{Year: year, Month: month, Day: day}
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// FromTriplet interprets a template-style [year, month, day] array.
func FromTriplet(triplet []int) (Date, error) {
	if len(triplet) != 3 {
		return Date{}, fmt.Errorf("date triplet must have 3 elements, got %d", len(triplet))
	}
	return New(triplet[0], triplet[1], triplet[2])
}

// FromTime truncates a time.Time to its calendar date.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Parse reads text in the given Go layout. The error distinguishes a format
// mismatch so callers can report the expected pattern to the user.
func Parse(text, layout string) (Date, error) {
	t, err := time.Parse(layout, text)
	if err != nil {
		return Date{}, &FormatMismatchError{Input: text, Format: formatFor(layout)}
	}
	return FromTime(t), nil
}

// ParseCanonical reads the canonical "dd MMMM yyyy" wire format.
func ParseCanonical(text string) (Date, error) {
	return Parse(text, CanonicalLayout)
}

func formatFor(layout string) string {
	switch layout {
	case ISOLayout:
		return ISOFormat
	case MonthDayLayout:
		return MonthDayFormat
	default:
		return CanonicalFormat
	}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Format renders the date in the given Go layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// Canonical renders the single canonical wire format, e.g. "09 May 2025".
func (d Date) Canonical() string {
	return d.Format(CanonicalLayout)
}

// ISO renders "yyyy-MM-dd".
func (d Date) ISO() string {
	return d.Format(ISOLayout)
}

// Compare returns -1, 0 or 1 as d is before, equal to, or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

func (d Date) IsZero() bool { return d == Date{} }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Clock supplies "today". The engine reads it exactly once per operation so
// every defaulted date within one synthesis agrees.
type Clock interface {
	Today() Date
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Today() Date { return FromTime(time.Now()) }

// FixedClock always returns the same date. Used by tests and dry runs.
type FixedClock struct {
	Date Date
}

func (c FixedClock) Today() Date { return c.Date }
