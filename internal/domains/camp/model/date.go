package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted for an incoming event date, tried in order.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05", // không có timezone
}

// Date is a calendar date on the wire: written as "2006-01-02", read from a
// date or a timestamp. The time of day and zone are dropped; the date the
// client wrote is kept. Zero = unscheduled, written as null.
type Date struct {
	time.Time
}

// NewDate wraps t as a calendar date.
func NewDate(t time.Time) Date {
	return Date{Time: DateOnly(t)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("event_date must be a string: %w", err)
	}
	if raw == "" {
		*d = Date{}
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			*d = NewDate(t)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", raw)
}
