// Package timeutil resolves calendar days in the Swedish market time zone
// and derives the HH:MM:SS keys used to merge per-interval records.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gridio/models"
)

// ZoneName is the market time zone for all Swedish bidding zones.
const ZoneName = "Europe/Stockholm"

const dayFormat = "2006-01-02"

var zone = mustLoadZone()

func mustLoadZone() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		panic(fmt.Sprintf("load %s: %v", ZoneName, err))
	}
	return loc
}

// Zone returns the Europe/Stockholm location.
func Zone() *time.Location { return zone }

// ParseDay parses a yyyy-mm-dd day argument. It wraps ErrInvalidDate so
// callers can fail fast on malformed CLI input.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(dayFormat, day, zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", models.ErrInvalidDate, day)
	}
	return t, nil
}

// DayWindow converts a calendar day into the half-open UTC interval
// [start, end) covering local midnight to the next local midnight. Across
// DST transitions the interval is 23 or 25 hours long instead of 24.
func DayWindow(day string) (start, end time.Time, err error) {
	t, err := ParseDay(day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startLocal := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, zone)
	endLocal := startLocal.AddDate(0, 0, 1)
	return startLocal.UTC(), endLocal.UTC(), nil
}

// ISOMillis renders a UTC instant the way the eSett API expects its start
// and end parameters: millisecond precision with an explicit Z suffix.
func ISOMillis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// isoFormats covers the timestamp shapes the upstream APIs emit: with and
// without fractional seconds, with a zone suffix or bare local clock time.
var isoFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func parseISO(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, layout := range isoFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", value)
}

// LocalClockHMS extracts the HH:MM:SS component of a source-provided
// local-time string. When the string does not parse as a timestamp the
// trailing eight characters are used instead; this is a known-lossy legacy
// accommodation for older exports, not a supported format.
func LocalClockHMS(value string) string {
	if value == "" {
		return ""
	}
	t, err := parseISO(value)
	if err != nil {
		if len(value) >= 8 {
			return value[len(value)-8:]
		}
		return ""
	}
	return t.Format("15:04:05")
}

// ToLocalHMS converts a UTC timestamp into the Stockholm local clock and
// returns its HH:MM:SS component.
func ToLocalHMS(value string) (string, error) {
	t, err := parseISO(value)
	if err != nil {
		return "", err
	}
	return t.In(zone).Format("15:04:05"), nil
}

var hmsPattern = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})`)

// ExtractHMS returns the first embedded HH:MM:SS substring, or "" when the
// value carries none.
func ExtractHMS(value string) string {
	return hmsPattern.FindString(value)
}

// ParseDecimal parses a decimal number that may use either a comma or a
// period as its separator, as the Svk CSV export does.
func ParseDecimal(value string) (float64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// FormatPrice renders a price with exactly five decimal digits.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}
