// Package timecode converts between a human 12-hour clock string and the
// integer minutes-since-midnight representation sessions are stored with.
//
// Storing start times as integers makes them range-queryable: "sessions
// before 7 00 PM" becomes a simple startTime < 1140 comparison.
//
// The wire format is "H MM AM" / "H MM PM" (hour 1-12, minute 0-59), the
// three parts separated by whitespace. Format reverses the mapping with one
// inherited quirk: the hour is only shifted when strictly greater than 12,
// so minute counts in [0,60) render with hour 0 and counts in [720,780)
// render as "12 <m> AM". This asymmetry is kept on purpose; callers that
// need a strict round trip must stay outside those two ranges.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned when a clock string does not decompose
// into hour, minute and an AM/PM marker.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// MaxMinutes is the largest valid encoded value (23:59).
const MaxMinutes = 23*60 + 59

// Encode converts a 24-hour clock reading to minutes since midnight.
func Encode(hour, minute int) (int, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %d out of range: %w", hour, ErrInvalidTimeFormat)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute %d out of range: %w", minute, ErrInvalidTimeFormat)
	}
	return hour*60 + minute, nil
}

// ParseClock parses a 12-hour clock string such as "7 30 PM" into minutes
// since midnight. The marker is case-insensitive; "12 00 AM" is midnight
// and "12 00 PM" is noon, per the usual 12-hour convention.
func ParseClock(s string) (int, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return 0, fmt.Errorf("%q: want \"H MM AM/PM\": %w", s, ErrInvalidTimeFormat)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%q: bad hour: %w", s, ErrInvalidTimeFormat)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%q: bad minute: %w", s, ErrInvalidTimeFormat)
	}

	switch strings.ToUpper(parts[2]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, fmt.Errorf("%q: bad AM/PM marker: %w", s, ErrInvalidTimeFormat)
	}

	return Encode(hour, minute)
}

// Format renders minutes since midnight as a 12-hour clock string.
//
// The hour is shifted into PM only when strictly greater than 12, so
// Format(0) is "0 0 AM" and Format(720) is "12 0 AM". Inherited behavior;
// see the package comment.
func Format(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60
	marker := "AM"
	if hour > 12 {
		hour -= 12
		marker = "PM"
	}
	return fmt.Sprintf("%d %d %s", hour, minute, marker)
}
