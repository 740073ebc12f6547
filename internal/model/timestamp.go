package model

import (
	"fmt"
	"time"
)

// TimestampLayout is the on-disk format of every journal timestamp. Range
// filters compare these strings lexically, which only works because the
// layout is zero-padded and fixed-width.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the format accepted for journal/history date bounds.
const DateLayout = "2006-01-02"

// FormatTimestamp renders t in the journal format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// DateRange bounds a journal query. Empty fields impose no filter.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Bounds returns the inclusive lower and upper timestamp strings for the
// range: From at 00:00:00 and To at 23:59:59.
func (r DateRange) Bounds() (lower, upper string, err error) {
	if r.From != "" {
		if _, err := time.Parse(DateLayout, r.From); err != nil {
			return "", "", fmt.Errorf("from %q: %w", r.From, ErrInvalidDate)
		}
		lower = r.From + " 00:00:00"
	}
	if r.To != "" {
		if _, err := time.Parse(DateLayout, r.To); err != nil {
			return "", "", fmt.Errorf("to %q: %w", r.To, ErrInvalidDate)
		}
		upper = r.To + " 23:59:59"
	}
	return lower, upper, nil
}
