package processor

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"gridio/logger"
	"gridio/models"
)

// DayOpener creates the output destination for one calendar day.
type DayOpener func(day string) (io.WriteCloser, error)

// FrequencySplit is the outcome of one splitter run.
type FrequencySplit struct {
	RowsByDay   map[string]int
	SkippedRows int
}

// Days returns the processed days in ascending order.
func (s FrequencySplit) Days() []string {
	days := make([]string, 0, len(s.RowsByDay))
	for d := range s.RowsByDay {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// SplitFrequency streams a combined frequency CSV and partitions it into
// one destination per calendar day. Destinations open lazily on the first
// row of a day and all stay open until the input is exhausted, so
// interleaved days are tolerated. Rows with an empty or malformed
// timestamp are counted and skipped, never fatal; missing required input
// columns are a SchemaError.
func SplitFrequency(input io.Reader, open DayOpener) (FrequencySplit, error) {
	log := logger.GetLogger().WithComponent("frequency_splitter")

	split := FrequencySplit{RowsByDay: make(map[string]int)}

	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return split, fmt.Errorf("read header: %w", err)
	}

	idxTimestamp, idxFrequency := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "timestamp_fixed":
			idxTimestamp = i
		case "frequency":
			idxFrequency = i
		}
	}
	if idxTimestamp < 0 {
		return split, &models.SchemaError{Column: "timestamp_fixed"}
	}
	if idxFrequency < 0 {
		return split, &models.SchemaError{Column: "frequency"}
	}

	writers := make(map[string]*csv.Writer)
	closers := make(map[string]io.WriteCloser)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			split.SkippedRows++
			continue
		}
		if len(row) <= idxTimestamp || len(row) <= idxFrequency {
			split.SkippedRows++
			continue
		}

		timestamp := strings.TrimSpace(row[idxTimestamp])
		frequency := strings.TrimSpace(row[idxFrequency])
		if timestamp == "" {
			split.SkippedRows++
			continue
		}
		day, timeHMS, ok := splitTimestamp(timestamp)
		if !ok {
			split.SkippedRows++
			continue
		}

		w, exists := writers[day]
		if !exists {
			dest, err := open(day)
			if err != nil {
				return split, fmt.Errorf("open day %s: %w", day, err)
			}
			closers[day] = dest
			w = csv.NewWriter(dest)
			if err := w.Write(models.FrequencyColumns); err != nil {
				return split, fmt.Errorf("write header for %s: %w", day, err)
			}
			writers[day] = w
			log.WithFields(logger.Fields{"day": day}).Debug("opened day destination")
		}

		if err := w.Write([]string{timeHMS, frequency}); err != nil {
			return split, fmt.Errorf("write row for %s: %w", day, err)
		}
		split.RowsByDay[day]++
	}

	for day, w := range writers {
		w.Flush()
		if err := w.Error(); err != nil {
			return split, fmt.Errorf("flush day %s: %w", day, err)
		}
	}
	for day, c := range closers {
		if err := c.Close(); err != nil {
			return split, fmt.Errorf("close day %s: %w", day, err)
		}
		delete(closers, day)
	}

	return split, nil
}

// splitTimestamp splits an ISO-like timestamp at the literal T separator
// into its day and HH:MM:SS prefix.
func splitTimestamp(value string) (day, timeHMS string, ok bool) {
	day, rest, found := strings.Cut(value, "T")
	if !found {
		return "", "", false
	}
	if len(rest) > 8 {
		rest = rest[:8]
	}
	return day, rest, true
}
