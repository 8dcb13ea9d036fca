package analytics

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange marks malformed date bounds that should return HTTP 400.
var ErrInvalidRange = errors.New("invalid date range")

// rangeLayouts are the accepted input forms, tried in order.
var rangeLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ResolveRange normalizes caller-supplied bounds into an inclusive DateRange.
// An absent start defaults to January 1, 00:00 of now's year; an absent end
// defaults to now. Malformed values fail with ErrInvalidRange.
//
// Start <= End is deliberately not enforced: an inverted range selects an
// empty record set downstream, which every view handles.
func ResolveRange(rawStart, rawEnd string, now time.Time) (DateRange, error) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	end := now

	if rawStart != "" {
		parsed, err := ParseDate(rawStart)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidRange, rawStart)
		}
		start = parsed
	}

	if rawEnd != "" {
		parsed, err := ParseDate(rawEnd)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidRange, rawEnd)
		}
		end = parsed
	}

	return DateRange{Start: start, End: end}, nil
}

// ParseDate parses a calendar date in any of the accepted input forms.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range rangeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
