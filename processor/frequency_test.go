package processor

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"gridio/models"
)

type memDest struct {
	bytes.Buffer
	closed bool
}

func (d *memDest) Close() error {
	d.closed = true
	return nil
}

func memOpener(dests map[string]*memDest) DayOpener {
	return func(day string) (io.WriteCloser, error) {
		d := &memDest{}
		dests[day] = d
		return d, nil
	}
}

func TestSplitFrequencyByDay(t *testing.T) {
	input := "timestamp_fixed,frequency\n" +
		"2024-01-01T00:00:00,50.01\n" +
		"2024-01-01T00:00:01,49.99\n" +
		"2024-01-02T00:00:00,50.00\n"

	dests := make(map[string]*memDest)
	split, err := SplitFrequency(strings.NewReader(input), memOpener(dests))
	if err != nil {
		t.Fatalf("SplitFrequency: %v", err)
	}

	if split.SkippedRows != 0 {
		t.Errorf("skipped = %d, want 0", split.SkippedRows)
	}
	if split.RowsByDay["2024-01-01"] != 2 || split.RowsByDay["2024-01-02"] != 1 {
		t.Errorf("rows by day = %v", split.RowsByDay)
	}
	if got := dests["2024-01-01"].String(); got != "time,frequency\n00:00:00,50.01\n00:00:01,49.99\n" {
		t.Errorf("day one output:\n%s", got)
	}
	if got := dests["2024-01-02"].String(); got != "time,frequency\n00:00:00,50.00\n" {
		t.Errorf("day two output:\n%s", got)
	}
	for day, d := range dests {
		if !d.closed {
			t.Errorf("destination for %s not closed", day)
		}
	}
}

func TestSplitFrequencySkipsMalformedRows(t *testing.T) {
	input := "timestamp_fixed,frequency\n" +
		",50.01\n" + // empty timestamp
		"2024-01-01 00:00:00,50.01\n" + // no T separator
		"2024-01-01T00:00:02,50.02\n"

	dests := make(map[string]*memDest)
	split, err := SplitFrequency(strings.NewReader(input), memOpener(dests))
	if err != nil {
		t.Fatalf("SplitFrequency: %v", err)
	}
	if split.SkippedRows != 2 {
		t.Errorf("skipped = %d, want 2", split.SkippedRows)
	}
	if len(dests) != 1 {
		t.Errorf("opened %d destinations, want 1", len(dests))
	}
}

func TestSplitFrequencyOnlyBadRowsOpensNothing(t *testing.T) {
	input := "timestamp_fixed,frequency\n,50.01\n"

	dests := make(map[string]*memDest)
	split, err := SplitFrequency(strings.NewReader(input), memOpener(dests))
	if err != nil {
		t.Fatalf("SplitFrequency: %v", err)
	}
	if split.SkippedRows != 1 {
		t.Errorf("skipped = %d, want 1", split.SkippedRows)
	}
	if len(dests) != 0 {
		t.Errorf("opened %d destinations, want 0", len(dests))
	}
}

func TestSplitFrequencyMissingColumns(t *testing.T) {
	var schemaErr *models.SchemaError

	dests := make(map[string]*memDest)
	_, err := SplitFrequency(strings.NewReader("timestamp,frequency\n"), memOpener(dests))
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if schemaErr.Column != "timestamp_fixed" {
		t.Errorf("column = %q", schemaErr.Column)
	}

	_, err = SplitFrequency(strings.NewReader("timestamp_fixed,hz\n"), memOpener(dests))
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if schemaErr.Column != "frequency" {
		t.Errorf("column = %q", schemaErr.Column)
	}
}

func TestSplitFrequencyToleratesInterleavedDays(t *testing.T) {
	input := "timestamp_fixed,frequency\n" +
		"2024-01-01T00:00:00,50.01\n" +
		"2024-01-02T00:00:00,50.02\n" +
		"2024-01-01T00:00:01,50.03\n"

	dests := make(map[string]*memDest)
	split, err := SplitFrequency(strings.NewReader(input), memOpener(dests))
	if err != nil {
		t.Fatalf("SplitFrequency: %v", err)
	}
	if split.RowsByDay["2024-01-01"] != 2 || split.RowsByDay["2024-01-02"] != 1 {
		t.Errorf("rows by day = %v", split.RowsByDay)
	}
	if got := dests["2024-01-01"].String(); got != "time,frequency\n00:00:00,50.01\n00:00:01,50.03\n" {
		t.Errorf("interleaved day output:\n%s", got)
	}
}

func TestSplitFrequencyRoundTrip(t *testing.T) {
	// Concatenating all per-day outputs reproduces the input pairs,
	// minus the malformed row.
	input := "timestamp_fixed,frequency\n" +
		"2024-01-02T10:00:00,49.98\n" +
		"2024-01-01T09:00:00,50.02\n" +
		"bad,1\n" +
		"2024-01-01T08:00:00,50.01\n"

	dests := make(map[string]*memDest)
	split, err := SplitFrequency(strings.NewReader(input), memOpener(dests))
	if err != nil {
		t.Fatalf("SplitFrequency: %v", err)
	}
	if split.SkippedRows != 1 {
		t.Fatalf("skipped = %d, want 1", split.SkippedRows)
	}

	var got []string
	for _, d := range dests {
		for _, line := range strings.Split(strings.TrimSpace(d.String()), "\n")[1:] {
			got = append(got, line)
		}
	}
	sort.Strings(got)

	want := []string{"08:00:00,50.01", "09:00:00,50.02", "10:00:00,49.98"}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitFrequencyDaysSorted(t *testing.T) {
	s := FrequencySplit{RowsByDay: map[string]int{"2024-01-03": 1, "2024-01-01": 2, "2024-01-02": 3}}
	days := s.Days()
	if len(days) != 3 || days[0] != "2024-01-01" || days[2] != "2024-01-03" {
		t.Errorf("days = %v", days)
	}
}
