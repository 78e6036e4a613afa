package worldline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// monthLengths ignores leap years: February always has 28 days.
var monthLengths = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// dateField is the width of a formatted date without era ("YYYY-MM-DD").
const dateField = 10

// MaxYear bounds the absolute year so it fits the four-digit date field.
const MaxYear = 9999

// Precision is the finest unit a Date specifies.
type Precision int

// Date precisions, coarsest first.
const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
)

func (p Precision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	default:
		return "unknown"
	}
}

// Date is a calendar date that may omit its day, or its month and day.
// Month and day are 0 when unknown. Negative years are BCE.
//
// The zero value is the year-only date 0000 CE.
type Date struct {
	year  int32
	month uint8
	day   uint8
}

// NewDate validates and constructs a Date. A month of 0 means year
// precision; a day of 0 means year-month precision.
func NewDate(year int32, month, day uint8) (Date, error) {
	if year > MaxYear || year < -MaxYear {
		return Date{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if month > 12 {
		return Date{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if month == 0 && day != 0 {
		return Date{}, fmt.Errorf("%w: %d (no month given)", ErrInvalidDay, day)
	}
	if month != 0 && day > daysInMonth(month) {
		return Date{}, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics on invalid input.
func MustDate(year int32, month, day uint8) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func daysInMonth(month uint8) uint8 {
	return monthLengths[month-1]
}

// Year returns the signed year; negative years are BCE.
func (d Date) Year() int32 { return d.year }

// Month returns the month (1-12), or 0 when unknown.
func (d Date) Month() uint8 { return d.month }

// Day returns the day of the month, or 0 when unknown.
func (d Date) Day() uint8 { return d.day }

// IsBCE reports whether the date lies before the common era.
func (d Date) IsBCE() bool { return d.year < 0 }

// Precision returns the finest unit the date specifies.
func (d Date) Precision() Precision {
	switch {
	case d.month == 0:
		return PrecisionYear
	case d.day == 0:
		return PrecisionMonth
	default:
		return PrecisionDay
	}
}

// Compare orders dates lexicographically on (year, month, day).
// Unknown fields compare as 0, so a partial date sorts before every more
// precise date inside the same period.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(int64(d.year), int64(other.year))
	case d.month != other.month:
		return cmpInt(int64(d.month), int64(other.month))
	default:
		return cmpInt(int64(d.day), int64(other.day))
	}
}

// Before reports whether d sorts strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Next returns the start of the period following d at d's precision:
// the next day, the next month (day unknown), or the next year (month and
// day unknown). It is the exclusive upper bound of the period d names.
func (d Date) Next() Date {
	if d.day != 0 && d.day < daysInMonth(d.month) {
		return Date{year: d.year, month: d.month, day: d.day + 1}
	}
	if d.month != 0 && d.month < 12 {
		return Date{year: d.year, month: d.month + 1}
	}
	return Date{year: d.year + 1}
}

// dateRegexp is the date grammar, anchored at the start of the input.
// The trailing group forbids partial matches such as "2023x".
var dateRegexp = regexp.MustCompile(
	`^\s*(?P<era>(?i:BCE|BC|CE|AD))?\s*` +
		`(?P<year>-?\d{1,4})` +
		`(?:-(?P<month>\d{1,2}))?` +
		`(?:-(?P<day>\d{1,2}))?` +
		`(?:\s+|$)`,
)

var (
	eraGroup   = dateRegexp.SubexpIndex("era")
	yearGroup  = dateRegexp.SubexpIndex("year")
	monthGroup = dateRegexp.SubexpIndex("month")
	dayGroup   = dateRegexp.SubexpIndex("day")
)

// ParseDate parses a date at the start of text and returns it together
// with the index of the first unconsumed byte. Whitespace following the
// date is consumed.
//
// Accepted forms include "2023", "2023-12", "2023-12-25", "CE 2023",
// "AD 2023", "BCE 44", "BC 44", "-44" and "-44-03-15". The era is
// case-insensitive. A BC/BCE era makes the year negative; a CE/AD era
// together with a negative year is rejected.
func ParseDate(text string) (Date, int, error) {
	m := dateRegexp.FindStringSubmatchIndex(text)
	if m == nil {
		return Date{}, 0, fmt.Errorf("%w: %q", ErrDateFormat, text)
	}
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}

	yearText := group(yearGroup)
	year64, err := strconv.ParseInt(yearText, 10, 32)
	if err != nil {
		return Date{}, 0, fmt.Errorf("%w: year %q", ErrDateFormat, yearText)
	}
	year := int32(year64)

	if era := group(eraGroup); era != "" {
		if era[0] == 'B' || era[0] == 'b' {
			if year > 0 {
				year = -year
			}
		} else if strings.HasPrefix(yearText, "-") {
			return Date{}, 0, fmt.Errorf("%w: era %s with negative year in %q", ErrDateFormat, era, text)
		}
	}

	// Month and day groups are 1-2 digits, so they always fit in a uint8.
	var month, day uint8
	if s := group(monthGroup); s != "" {
		v, _ := strconv.ParseUint(s, 10, 8)
		month = uint8(v)
	}
	if s := group(dayGroup); s != "" {
		v, _ := strconv.ParseUint(s, 10, 8)
		day = uint8(v)
	}

	d, err := NewDate(year, month, day)
	if err != nil {
		return Date{}, 0, err
	}
	return d, m[1], nil
}

// ParseDateArg parses text that must consist of a single date, such as a
// command-line argument. Surrounding whitespace is allowed.
func ParseDateArg(text string) (Date, error) {
	d, n, err := ParseDate(text)
	if err != nil {
		return Date{}, err
	}
	if rest := strings.TrimSpace(text[n:]); rest != "" {
		return Date{}, fmt.Errorf("%w: unexpected %q after date", ErrDateFormat, rest)
	}
	return d, nil
}

// Format renders the date in its fixed-width column form. Unknown month
// and day positions are blank, so the date part is always 10 characters.
// With displayEra, " CE " or "BCE " is prepended. The year is printed as
// an absolute value, so only the era conveys the sign.
func (d Date) Format(displayEra bool) string {
	var b strings.Builder
	b.Grow(4 + dateField)
	if displayEra {
		b.WriteString(d.eraPrefix())
	}

	year := int64(d.year)
	if year < 0 {
		year = -year
	}
	switch d.Precision() {
	case PrecisionYear:
		fmt.Fprintf(&b, "%04d      ", year)
	case PrecisionMonth:
		fmt.Fprintf(&b, "%04d-%02d   ", year, d.month)
	default:
		fmt.Fprintf(&b, "%04d-%02d-%02d", year, d.month, d.day)
	}
	return b.String()
}

func (d Date) eraPrefix() string {
	if d.IsBCE() {
		return "BCE "
	}
	return " CE "
}

// Era returns "BCE" or "CE".
func (d Date) Era() string {
	return strings.TrimSpace(d.eraPrefix())
}

// String returns the date formatted with its era.
func (d Date) String() string {
	return d.Format(true)
}
