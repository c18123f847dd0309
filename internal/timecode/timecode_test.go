package timecode_test

import (
	"errors"
	"testing"

	"confhall/internal/timecode"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12 00 AM", 0},
		{"12 30 am", 30},
		{"1 00 AM", 60},
		{"9 05 AM", 9*60 + 5},
		{"11 59 AM", 11*60 + 59},
		{"12 00 PM", 720},
		{"12 15 pm", 735},
		{"1 00 PM", 780},
		{"7 30 PM", 19*60 + 30},
		{"11 59 PM", timecode.MaxMinutes},
		{"7 5 PM", 19*60 + 5}, // minute without zero padding
	}
	for _, tt := range tests {
		got, err := timecode.ParseClock(tt.in)
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseClockInvalid(t *testing.T) {
	inputs := []string{
		"",
		"7 30",
		"7 30 PM extra",
		"0 30 AM",  // hour below 12-hour range
		"13 00 PM", // hour above 12-hour range
		"7 60 PM",
		"7 -1 PM",
		"seven 30 PM",
		"7 thirty PM",
		"7 30 XX",
	}
	for _, in := range inputs {
		if _, err := timecode.ParseClock(in); !errors.Is(err, timecode.ErrInvalidTimeFormat) {
			t.Errorf("ParseClock(%q) = %v, want ErrInvalidTimeFormat", in, err)
		}
	}
}

func TestEncode(t *testing.T) {
	got, err := timecode.Encode(19, 30)
	if err != nil {
		t.Fatalf("Encode(19, 30): %v", err)
	}
	if want := 1170; got != want {
		t.Errorf("Encode(19, 30) = %d, want %d", got, want)
	}

	for _, bad := range [][2]int{{-1, 0}, {24, 0}, {0, -1}, {0, 60}} {
		if _, err := timecode.Encode(bad[0], bad[1]); !errors.Is(err, timecode.ErrInvalidTimeFormat) {
			t.Errorf("Encode(%d, %d) = %v, want ErrInvalidTimeFormat", bad[0], bad[1], err)
		}
	}
}

// TestFormatQuirk pins the inherited hour labeling: the hour only shifts to
// PM when strictly greater than 12, so midnight and noon get non-standard
// labels. These literals are load-bearing; do not "fix" them.
func TestFormatQuirk(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 0 AM"},     // midnight
		{5, "0 5 AM"},     // shortly after midnight
		{720, "12 0 AM"},  // noon, labeled AM by the >12 rule
		{725, "12 5 AM"},  // just past noon
		{779, "12 59 AM"}, // last minute before the shift kicks in
		{780, "1 0 PM"},
		{1170, "7 30 PM"},
		{1439, "11 59 PM"},
		{60, "1 0 AM"},
		{545, "9 5 AM"},
	}
	for _, tt := range tests {
		if got := timecode.Format(tt.minutes); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

// TestRoundTrip checks ParseClock(Format(m)) == m wherever Format emits a
// well-formed 12-hour string. The quirk ranges [0,60) and [720,780) emit
// hour 0 or a mislabeled marker and are excluded by construction.
func TestRoundTrip(t *testing.T) {
	for m := 0; m <= timecode.MaxMinutes; m++ {
		got, err := timecode.ParseClock(timecode.Format(m))
		switch {
		case m < 60:
			// "0 <m> AM" has no valid 12-hour hour.
			if err == nil {
				t.Errorf("ParseClock(Format(%d)) unexpectedly succeeded", m)
			}
		case m >= 720 && m < 780:
			// "12 <m> AM" parses as just-past-midnight, not noon.
			if err != nil {
				t.Errorf("ParseClock(Format(%d)): %v", m, err)
			} else if got != m-720 {
				t.Errorf("ParseClock(Format(%d)) = %d, want %d", m, got, m-720)
			}
		default:
			if err != nil {
				t.Errorf("ParseClock(Format(%d)): %v", m, err)
			} else if got != m {
				t.Errorf("ParseClock(Format(%d)) = %d, want %d", m, got, m)
			}
		}
	}
}
