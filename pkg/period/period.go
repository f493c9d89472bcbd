// Package period holds the calendar arithmetic used by reports: date
// parsing, inclusive date ranges and week/month/quarter/year boundaries.
package period

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// Kind is a reporting granularity.
type Kind string

const (
	Daily     Kind = "daily"
	Weekly    Kind = "weekly"
	Monthly   Kind = "monthly"
	Quarterly Kind = "quarterly"
	Yearly    Kind = "yearly"
	Custom    Kind = "custom"
)

// ParseKind normalizes a granularity name. Unknown values are rejected.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Daily, Weekly, Monthly, Quarterly, Yearly, Custom:
		return k, nil
	case "":
		return Custom, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Range is an inclusive span of calendar dates. Both ends are stored as UTC
// midnight.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// NewRange builds an inclusive range, truncating both ends to dates.
func NewRange(from, to time.Time) Range {
	return Range{From: Day(from), To: Day(to)}
}

// FromExclusive converts a half-open [start, endExclusive) wire range into
// an inclusive range. Zero bounds stay open.
func FromExclusive(start, endExclusive time.Time) Range {
	var r Range
	if !start.IsZero() {
		r.From = Day(start)
	}
	if !endExclusive.IsZero() {
		r.To = Day(endExclusive).AddDate(0, 0, -1)
	}
	return r
}

// EndExclusive returns the first date after the range.
func (r Range) EndExclusive() time.Time {
	return r.To.AddDate(0, 0, 1)
}

// Contains reports whether the calendar date of t is inside the range.
// A zero bound is open.
func (r Range) Contains(t time.Time) bool {
	d := Day(t)
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Unbounded reports whether neither end is set.
func (r Range) Unbounded() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Valid reports whether From is not after To. Ranges with an open end are
// always valid.
func (r Range) Valid() bool {
	if r.From.IsZero() || r.To.IsZero() {
		return true
	}
	return !r.From.After(r.To)
}

// Days returns the number of calendar days covered.
func (r Range) Days() int {
	if r.From.IsZero() || r.To.IsZero() || !r.Valid() {
		return 0
	}
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

func (r Range) String() string {
	return r.From.Format(DateLayout) + ".." + r.To.Format(DateLayout)
}

// Bounds returns the period of the given kind that contains anchor.
// Weeks start on Monday. Custom and Daily both yield the anchor day.
func Bounds(kind Kind, anchor time.Time) Range {
	d := Day(anchor)
	switch kind {
	case Weekly:
		offset := (int(d.Weekday()) + 6) % 7
		start := d.AddDate(0, 0, -offset)
		return Range{From: start, To: start.AddDate(0, 0, 6)}
	case Monthly:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Range{From: start, To: start.AddDate(0, 1, -1)}
	case Quarterly:
		firstMonth := time.Month((int(d.Month())-1)/3*3 + 1)
		start := time.Date(d.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
		return Range{From: start, To: start.AddDate(0, 3, -1)}
	case Yearly:
		start := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Range{From: start, To: start.AddDate(1, 0, -1)}
	default:
		return Range{From: d, To: d}
	}
}

// Trailing returns n consecutive periods of the given kind ordered oldest
// to newest, the last one being the period that contains anchor.
func Trailing(kind Kind, anchor time.Time, n int) []Range {
	if n <= 0 {
		return nil
	}
	out := make([]Range, n)
	current := Bounds(kind, anchor)
	for i := n - 1; i >= 0; i-- {
		out[i] = current
		current = Bounds(kind, current.From.AddDate(0, 0, -1))
	}
	return out
}

// Label renders a short chart label for a period.
func Label(kind Kind, r Range) string {
	switch kind {
	case Daily:
		return r.From.Format("Jan 02")
	case Weekly:
		return r.From.Format("Jan 02") + " - " + r.To.Format("Jan 02")
	case Monthly:
		return r.From.Format("Jan 2006")
	case Quarterly:
		return fmt.Sprintf("Q%d %d", (int(r.From.Month())-1)/3+1, r.From.Year())
	case Yearly:
		return r.From.Format("2006")
	default:
		return r.String()
	}
}
