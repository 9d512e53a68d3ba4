//go:build !integration

package timeutil

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "negative duration clamps to zero",
			duration: -5 * time.Second,
			expected: "0ms",
		},
		{
			name:     "sub-millisecond shows microseconds",
			duration: 250 * time.Microsecond,
			expected: "250µs",
		},
		{
			name:     "milliseconds below one second",
			duration: 42 * time.Millisecond,
			expected: "42ms",
		},
		{
			name:     "whole milliseconds truncate fractions",
			duration: 42*time.Millisecond + 800*time.Microsecond,
			expected: "42ms",
		},
		{
			name:     "seconds with one decimal",
			duration: 2500 * time.Millisecond,
			expected: "2.5s",
		},
		{
			name:     "minutes and seconds",
			duration: 72 * time.Second,
			expected: "1m12s",
		},
		{
			name:     "exact minute",
			duration: time.Minute,
			expected: "1m0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDuration(tt.duration)
			if result != tt.expected {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.duration, result, tt.expected)
			}
		})
	}
}
