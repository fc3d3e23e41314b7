package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yigit/skillhub/internal/pkg/helpers"
)

// Timestamp is a time that decodes leniently: RFC 3339, datetime-local values,
// empty strings and null are all accepted since records created through older
// forms carry schedules without a zone.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := helpers.ParseDateTimeLocal(s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler; the zero time encodes as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Display renders the timestamp for pages.
func (t Timestamp) Display() string {
	return helpers.FormatDisplay(t.Time)
}
