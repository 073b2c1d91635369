package format

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned for a date that is neither YYYY-MM-DD nor an
// RFC 3339 timestamp.
var ErrInvalidDate = errors.New("invalid date")

const (
	isoDate  = "2006-01-02"
	longDate = "January 2, 2006"
)

// FormatDate renders an ISO date as a long-form calendar date, e.g.
// "2025-01-05" -> "January 5, 2025". A timestamp contributes only its
// calendar date as written, never shifted into another zone.
func FormatDate(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(longDate), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(isoDate, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
