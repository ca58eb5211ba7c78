package timerange

import (
	"errors"
	"testing"
	"time"
)

func mustParse(t *testing.T, literal string) Range {
	t.Helper()
	r, err := Parse(literal)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", literal, err)
	}
	return r
}

func TestParseCanonical(t *testing.T) {
	r := mustParse(t, "[2024-03-04T09:00:00.000Z, 2024-03-04T10:30:00.000Z)")
	want := New(
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
	)
	if !r.Start.Equal(want.Start) || !r.End.Equal(want.End) {
		t.Fatalf("got %v, want %v", r, want)
	}
}

func TestParsePostgresOutput(t *testing.T) {
	// Quoted bounds, space instead of T, bare +00 offset, closing bracket.
	r := mustParse(t, `["2024-03-04 09:00:00+00","2024-03-04 10:30:00+00"]`)
	if got := r.Start.Hour(); got != 9 {
		t.Fatalf("start hour = %d, want 9", got)
	}
	if got := r.End.Minute(); got != 30 {
		t.Fatalf("end minute = %d, want 30", got)
	}
}

func TestParseOffsetNormalizedToUTC(t *testing.T) {
	r := mustParse(t, "[2024-03-04T11:00:00+02:00, 2024-03-04T12:00:00+02:00)")
	if got := r.Start.Hour(); got != 9 {
		t.Fatalf("start hour after UTC normalization = %d, want 9", got)
	}
	if r.Start.Location() != time.UTC {
		t.Fatalf("start not in UTC: %v", r.Start.Location())
	}
}

func TestRoundTrip(t *testing.T) {
	literal := "[2024-03-04T09:15:00.000Z, 2024-03-04T09:45:00.000Z)"
	r := mustParse(t, literal)
	if got := r.Format(); got != literal {
		t.Fatalf("round trip changed literal: got %q, want %q", got, literal)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		literal string
		want    error
	}{
		{"", ErrMalformed},
		{"2024-03-04T09:00:00Z, 2024-03-04T10:00:00Z", ErrMalformed},
		{"[2024-03-04T09:00:00Z)", ErrMalformed},
		{"[not-a-time, 2024-03-04T10:00:00Z)", ErrBadTimestamp},
		{"[2024-03-04T09:00:00Z, later)", ErrBadTimestamp},
		{"[2024-03-04T10:00:00Z, 2024-03-04T09:00:00Z)", ErrInverted},
		{"[2024-03-04T09:00:00Z, 2024-03-04T09:00:00Z)", ErrInverted},
	}
	for _, tc := range cases {
		if _, err := Parse(tc.literal); !errors.Is(err, tc.want) {
			t.Fatalf("Parse(%q) error = %v, want %v", tc.literal, err, tc.want)
		}
	}
}

func TestIsAligned(t *testing.T) {
	for _, m := range []int{0, 15, 30, 45} {
		if !IsAligned(time.Date(2024, 3, 4, 9, m, 0, 0, time.UTC)) {
			t.Fatalf("minute %d should be aligned", m)
		}
	}
	for _, m := range []int{1, 7, 14, 16, 44, 59} {
		if IsAligned(time.Date(2024, 3, 4, 9, m, 0, 0, time.UTC)) {
			t.Fatalf("minute %d should not be aligned", m)
		}
	}
	// Seconds do not matter.
	if !IsAligned(time.Date(2024, 3, 4, 9, 15, 59, 0, time.UTC)) {
		t.Fatal("seconds must be ignored by alignment check")
	}
}

func TestRoundToQuarter(t *testing.T) {
	cases := []struct {
		minute, second int
		wantHour       int
		wantMinute     int
	}{
		{0, 0, 9, 0},
		{7, 59, 9, 0},   // seven past rounds down
		{8, 0, 9, 15},   // eight past rounds up
		{22, 30, 9, 15}, // 22 = 15+7, down
		{23, 0, 9, 30},  // 23 = 15+8, up
		{52, 0, 9, 45},
		{53, 0, 10, 0}, // rolls the hour
	}
	for _, tc := range cases {
		in := time.Date(2024, 3, 4, 9, tc.minute, tc.second, 123, time.UTC)
		got := RoundToQuarter(in)
		if got.Hour() != tc.wantHour || got.Minute() != tc.wantMinute {
			t.Fatalf("RoundToQuarter(9:%02d:%02d) = %02d:%02d, want %02d:%02d",
				tc.minute, tc.second, got.Hour(), got.Minute(), tc.wantHour, tc.wantMinute)
		}
		if got.Second() != 0 || got.Nanosecond() != 0 {
			t.Fatalf("RoundToQuarter kept sub-minute components: %v", got)
		}
	}
}

func rangeAt(t *testing.T, startHour, endHour int) Range {
	t.Helper()
	return New(
		time.Date(2024, 3, 4, startHour, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, endHour, 0, 0, 0, time.UTC),
	)
}

func TestOverlaps(t *testing.T) {
	a := rangeAt(t, 9, 11)
	b := rangeAt(t, 10, 12)
	c := rangeAt(t, 11, 12)

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("overlapping ranges must conflict in both directions")
	}
	// Touching at a bound is not an overlap: [9,11) and [11,12).
	if a.Overlaps(c) || c.Overlaps(a) {
		t.Fatal("ranges touching at a bound must not conflict")
	}
	// Containment overlaps.
	inner := New(
		time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
	)
	if !a.Overlaps(inner) {
		t.Fatal("contained range must conflict")
	}
}

func TestConflictsWith(t *testing.T) {
	stored := []Conflict{
		{ID: 3, Period: rangeAt(t, 10, 12)},
		{ID: 1, Period: rangeAt(t, 8, 10)},
		{ID: 2, Period: rangeAt(t, 9, 10)},
	}
	candidate := rangeAt(t, 9, 11)

	got := ConflictsWith(candidate, stored, -1)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("conflict ids = %v, want [1 2 3]", got)
	}

	// Self-exclusion for updates.
	got = ConflictsWith(candidate, stored, 2)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("conflict ids with exclusion = %v, want [1 3]", got)
	}

	// A touching range produces no conflict.
	got = ConflictsWith(rangeAt(t, 12, 13), stored, -1)
	if len(got) != 0 {
		t.Fatalf("touching range conflicts = %v, want none", got)
	}
}
