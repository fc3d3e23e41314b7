package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateTimeLocalLayout is the value format of an HTML datetime-local input.
const DateTimeLocalLayout = "2006-01-02T15:04"

// DisplayLayout is how timestamps are shown on pages.
const DisplayLayout = "Jan 2, 2006 15:04"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDateTimeLocal parses a datetime-local input value as UTC.
// Full RFC 3339 values are accepted too so API-shaped input round-trips.
func ParseDateTimeLocal(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateTimeLocalLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDateTimeLocal renders t as a datetime-local input value; zero renders empty.
func FormatDateTimeLocal(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateTimeLocalLayout)
}

// FormatDisplay renders t for humans; zero renders an em dash placeholder.
func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.UTC().Format(DisplayLayout)
}
