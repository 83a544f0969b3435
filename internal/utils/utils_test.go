package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00"},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{61 * time.Minute, "01:01:00"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.duration); got != c.expected {
			t.Errorf("FormatDuration(%v): ожидалось %q, получено %q", c.duration, c.expected, got)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00"},
		{45.4, "00:45"},
		{125, "02:05"},
	}

	for _, c := range cases {
		if got := FormatSeconds(c.seconds); got != c.expected {
			t.Errorf("FormatSeconds(%v): ожидалось %q, получено %q", c.seconds, c.expected, got)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes    int64
		expected string
	}{
		{500, "500 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}

	for _, c := range cases {
		if got := FormatFileSize(c.bytes); got != c.expected {
			t.Errorf("FormatFileSize(%d): ожидалось %q, получено %q", c.bytes, c.expected, got)
		}
	}
}

func TestTruncateString(t *testing.T) {
	cases := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"a very long sound name", 10, "a very ..."},
		{"abc", 3, "abc"},
		{"abcdef", 3, "abc"},
	}

	for _, c := range cases {
		if got := TruncateString(c.input, c.maxLen); got != c.expected {
			t.Errorf("TruncateString(%q, %d): ожидалось %q, получено %q", c.input, c.maxLen, c.expected, got)
		}
	}
}
