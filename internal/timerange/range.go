// Package timerange implements the half-open time range used by plan slots
// and time logs, including the tstzrange literal codec used at the storage
// boundary.
package timerange

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrMalformed reports a literal that is not shaped like a range.
	ErrMalformed = errors.New("timerange: malformed range literal")
	// ErrBadTimestamp reports a bound that could not be parsed as a timestamp.
	ErrBadTimestamp = errors.New("timerange: invalid timestamp")
	// ErrInverted reports a range whose end does not come after its start.
	ErrInverted = errors.New("timerange: end must be after start")
)

// Range is a half-open interval [Start, End) in UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a range from two instants, normalizing both to UTC.
func New(start, end time.Time) Range {
	return Range{Start: start.UTC(), End: end.UTC()}
}

// Duration is End minus Start.
func (r Range) Duration() time.Duration { return r.End.Sub(r.Start) }

// Contains reports whether t falls inside the half-open interval.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Overlaps reports whether two half-open ranges share any instant. Ranges
// that merely touch at a bound do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Format renders the canonical literal: lower bound inclusive, upper bound
// exclusive, both bounds UTC with millisecond precision.
func (r Range) Format() string {
	return fmt.Sprintf("[%s, %s)",
		r.Start.UTC().Format("2006-01-02T15:04:05.000Z"),
		r.End.UTC().Format("2006-01-02T15:04:05.000Z"))
}

func (r Range) String() string { return r.Format() }

// timestamp layouts accepted at the storage boundary. Postgres prints
// tstzrange bounds as "2024-01-02 09:00:00+00"; clients send RFC 3339.
var boundLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	if s == "" {
		return time.Time{}, ErrBadTimestamp
	}
	for _, layout := range boundLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}

// Parse decodes a range literal. Both Postgres output form
// ["2024-01-02 09:00:00+00","2024-01-02 10:00:00+00") and the canonical
// form produced by Format are accepted. Whatever brackets the input
// carries, the decoded value is half-open.
func Parse(literal string) (Range, error) {
	s := strings.TrimSpace(literal)
	if len(s) < 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrMalformed, literal)
	}
	opening, closing := s[0], s[len(s)-1]
	if (opening != '[' && opening != '(') || (closing != ')' && closing != ']') {
		return Range{}, fmt.Errorf("%w: %q", ErrMalformed, literal)
	}
	body := s[1 : len(s)-1]
	parts := splitBounds(body)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrMalformed, literal)
	}
	start, err := parseBound(parts[0])
	if err != nil {
		return Range{}, err
	}
	end, err := parseBound(parts[1])
	if err != nil {
		return Range{}, err
	}
	if !end.After(start) {
		return Range{}, ErrInverted
	}
	return Range{Start: start, End: end}, nil
}

// splitBounds splits on the comma separating the two bounds, respecting
// double quotes so quoted timestamps containing commas never split.
func splitBounds(body string) []string {
	var parts []string
	inQuote := false
	last := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				parts = append(parts, body[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, body[last:])
	return parts
}

// IsAligned reports whether t sits on a quarter-hour boundary. Only the
// minute is inspected; seconds and finer are ignored.
func IsAligned(t time.Time) bool {
	return t.Minute()%15 == 0
}

// IsRangeAligned reports whether both bounds are quarter-hour aligned.
func IsRangeAligned(r Range) bool {
	return IsAligned(r.Start) && IsAligned(r.End)
}

// RoundToQuarter snaps t to the nearest quarter-hour boundary, rounding up
// from eight minutes past. Seconds and sub-second components are dropped.
func RoundToQuarter(t time.Time) time.Time {
	t = t.UTC()
	base := t.Truncate(time.Minute)
	r := base.Minute() % 15
	base = base.Add(-time.Duration(r) * time.Minute)
	if r >= 8 {
		base = base.Add(15 * time.Minute)
	}
	return base
}

// Conflict pairs the id of a stored range with the range itself.
type Conflict struct {
	ID     int64
	Period Range
}

// ConflictsWith returns the ids of stored ranges overlapping candidate,
// skipping the range identified by excludeID. Ids come back sorted so
// callers report them deterministically. Pass a negative excludeID to
// check against everything.
func ConflictsWith(candidate Range, stored []Conflict, excludeID int64) []int64 {
	var ids []int64
	for _, c := range stored {
		if c.ID == excludeID {
			continue
		}
		if candidate.Overlaps(c.Period) {
			ids = append(ids, c.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
