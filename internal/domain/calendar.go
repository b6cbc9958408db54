package domain

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDate is wrapped by every CalendarDate parsing or range failure.
var ErrInvalidDate = errors.New("invalid calendar date")

const (
	MinYear = 1
	MaxYear = 9999

	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
	daysPerYear     = 365
)

var cumulativeDays = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

var (
	minOrdinal = toOrdinal(MinYear, 1, 1)
	maxOrdinal = toOrdinal(MaxYear, 12, 31)
)

// CalendarDate is a proleptic Gregorian date with no time-of-day and no zone.
// It is stored as its Rata Die ordinal (0001-01-01 is day 1), so equality is
// plain == and arithmetic never touches a platform clock. The zero value is
// the "no date" sentinel and is not a valid date.
type CalendarDate struct {
	ord int
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the number of days in month m of year y, or 0 for an
// invalid month.
func DaysInMonth(y, m int) int {
	switch m {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(y) {
			return 29
		}
		return 28
	}
	return 0
}

func daysBeforeMonth(y, m int) int {
	n := cumulativeDays[m]
	if m > 2 && IsLeapYear(y) {
		n++
	}
	return n
}

func toOrdinal(y, m, d int) int {
	y0 := y - 1
	return daysPerYear*y0 + y0/4 - y0/100 + y0/400 + daysBeforeMonth(y, m) + d
}

func fromOrdinal(ord int) (y, m, d int) {
	n := ord - 1
	n400 := n / daysPer400Years
	n %= daysPer400Years
	n100 := n / daysPer100Years
	n %= daysPer100Years
	n4 := n / daysPer4Years
	n %= daysPer4Years
	n1 := n / daysPerYear
	n %= daysPerYear

	y = n400*400 + n100*100 + n4*4 + n1
	// The last day of a 400-year or 4-year cycle overflows the decomposition.
	if n100 == 4 || n1 == 4 {
		return y, 12, 31
	}
	y++

	m = 1
	for m < 12 && n >= daysBeforeMonth(y, m+1) {
		m++
	}
	d = n - daysBeforeMonth(y, m) + 1
	return y, m, d
}

// NewCalendarDate validates y/m/d and returns the date.
func NewCalendarDate(y, m, d int) (CalendarDate, error) {
	if y < MinYear || y > MaxYear {
		return CalendarDate{}, fmt.Errorf("%w: year %d out of range %d..%d", ErrInvalidDate, y, MinYear, MaxYear)
	}
	if m < 1 || m > 12 {
		return CalendarDate{}, fmt.Errorf("%w: month %d out of range 1..12", ErrInvalidDate, m)
	}
	if dim := DaysInMonth(y, m); d < 1 || d > dim {
		return CalendarDate{}, fmt.Errorf("%w: day %d out of range 1..%d for %04d-%02d", ErrInvalidDate, d, dim, y, m)
	}
	return CalendarDate{ord: toOrdinal(y, m, d)}, nil
}

// ParseDate parses a strict ISO 8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (CalendarDate, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return CalendarDate{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	y, ok1 := atoiDigits(s[0:4])
	m, ok2 := atoiDigits(s[5:7])
	d, ok3 := atoiDigits(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return CalendarDate{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	return NewCalendarDate(y, m, d)
}

// MustParseDate is ParseDate for literals known to be valid. It panics on error.
func MustParseDate(s string) CalendarDate {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateFromOrdinal returns the date with the given Rata Die ordinal.
func DateFromOrdinal(ord int) (CalendarDate, error) {
	if ord < minOrdinal || ord > maxOrdinal {
		return CalendarDate{}, fmt.Errorf("%w: ordinal %d out of range", ErrInvalidDate, ord)
	}
	return CalendarDate{ord: ord}, nil
}

func atoiDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (d CalendarDate) IsZero() bool { return d.ord == 0 }

// Ordinal returns the Rata Die day number.
func (d CalendarDate) Ordinal() int { return d.ord }

func (d CalendarDate) Year() int {
	y, _, _ := fromOrdinal(d.ord)
	return y
}

func (d CalendarDate) Month() int {
	_, m, _ := fromOrdinal(d.ord)
	return m
}

func (d CalendarDate) Day() int {
	_, _, day := fromOrdinal(d.ord)
	return day
}

// Weekday returns the ISO weekday: Monday is 1, Sunday is 7.
func (d CalendarDate) Weekday() int {
	return (d.ord-1)%7 + 1
}

// AddDays shifts the date by n days. It fails only when the result leaves
// the 0001-01-01..9999-12-31 range.
func (d CalendarDate) AddDays(n int) (CalendarDate, error) {
	if d.IsZero() {
		return CalendarDate{}, fmt.Errorf("%w: cannot shift the zero date", ErrInvalidDate)
	}
	return DateFromOrdinal(d.ord + n)
}

// DaysUntil returns the signed number of days from d to other.
func (d CalendarDate) DaysUntil(other CalendarDate) int {
	return other.ord - d.ord
}

// Compare returns -1, 0 or +1.
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.ord < other.ord:
		return -1
	case d.ord > other.ord:
		return 1
	}
	return 0
}

func (d CalendarDate) Before(other CalendarDate) bool { return d.ord < other.ord }
func (d CalendarDate) After(other CalendarDate) bool  { return d.ord > other.ord }
func (d CalendarDate) Equal(other CalendarDate) bool  { return d.ord == other.ord }

// String formats the date as YYYY-MM-DD. The zero date formats as "".
func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	y, m, day := fromOrdinal(d.ord)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = CalendarDate{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d CalendarDate) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *CalendarDate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a YYYY-MM-DD scalar", ErrInvalidDate, value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	From CalendarDate
	To   CalendarDate
}

// NewDateRange validates that both bounds are set and From <= To.
func NewDateRange(from, to CalendarDate) (DateRange, error) {
	if from.IsZero() || to.IsZero() {
		return DateRange{}, Errorf(CodeInvalidDateRange, "range bounds are required")
	}
	if from.After(to) {
		return DateRange{}, Errorf(CodeInvalidDateRange, "from %s is after to %s", from, to)
	}
	return DateRange{From: from, To: to}, nil
}

// ParseDateRange parses two ISO bounds into a DateRange. Malformed bounds
// are reported as INVALID_DATE_RANGE.
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := ParseDate(from)
	if err != nil {
		return DateRange{}, Errorf(CodeInvalidDateRange, "from: %v", err)
	}
	t, err := ParseDate(to)
	if err != nil {
		return DateRange{}, Errorf(CodeInvalidDateRange, "to: %v", err)
	}
	return NewDateRange(f, t)
}

// Contains reports whether d falls inside the inclusive range.
func (r DateRange) Contains(d CalendarDate) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Days returns the number of dates in the range.
func (r DateRange) Days() int {
	return r.From.DaysUntil(r.To) + 1
}

// Dates lists every date in the range in ascending order.
func (r DateRange) Dates() []CalendarDate {
	out := make([]CalendarDate, 0, r.Days())
	for ord := r.From.ord; ord <= r.To.ord; ord++ {
		out = append(out, CalendarDate{ord: ord})
	}
	return out
}
