package output

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "zero",
			duration: 0,
			want:     "0.00s",
		},
		{
			name:     "sub-second",
			duration: 250 * time.Millisecond,
			want:     "0.25s",
		},
		{
			name:     "seconds with two decimals",
			duration: 1500 * time.Millisecond,
			want:     "1.50s",
		},
		{
			name:     "just under a minute",
			duration: 59*time.Second + 990*time.Millisecond,
			want:     "59.99s",
		},
		{
			name:     "exactly a minute",
			duration: time.Minute,
			want:     "1m0s",
		},
		{
			name:     "minutes and seconds",
			duration: 90 * time.Second,
			want:     "1m30s",
		},
		{
			name:     "sub-second noise rounded away",
			duration: 2*time.Minute + 5*time.Second + 300*time.Millisecond,
			want:     "2m5s",
		},
		{
			name:     "hours",
			duration: time.Hour + 30*time.Minute,
			want:     "1h30m0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.duration); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
