package request

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted by every date field
const DateLayout = "2006-01-02"

// Date accepts either a calendar date or a full RFC 3339 timestamp
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// ToTime returns nil for a missing or empty date
func (d *Date) ToTime() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
