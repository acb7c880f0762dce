package dfq

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "padded slash separator",
			input: "05.07.2006/10:48:07",
			want:  time.Date(2006, time.July, 5, 10, 48, 7, 0, time.UTC),
		},
		{
			name:  "unpadded fields",
			input: "5.7.2006/10:48:7",
			want:  time.Date(2006, time.July, 5, 10, 48, 7, 0, time.UTC),
		},
		{
			name:  "space separator",
			input: "12.08.1999 15:23:45",
			want:  time.Date(1999, time.August, 12, 15, 23, 45, 0, time.UTC),
		},
		{
			name:  "two digit year pivots to previous century",
			input: "12.08.99/15:23:45",
			want:  time.Date(1999, time.August, 12, 15, 23, 45, 0, time.UTC),
		},
		{
			name:  "two digit year in current century",
			input: "03.01.06/08:00:00",
			want:  time.Date(2006, time.January, 3, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.input)
			if !got.Valid {
				t.Fatalf("ParseTimestamp(%q) invalid, want %v", tt.input, tt.want)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got.Time, tt.want)
			}
		})
	}
}

// Day-first is always assumed: 05.07. is the fifth of July, never May 7th.
func TestParseTimestamp_DayFirst(t *testing.T) {
	got := ParseTimestamp("05.07.2006/10:48:07")
	if !got.Valid {
		t.Fatal("timestamp not parsed")
	}
	if got.Time.Month() != time.July || got.Time.Day() != 5 {
		t.Errorf("got %v, want July 5th", got.Time)
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"free text", "gestern"},
		{"date only", "05.07.2006"},
		{"iso order", "2006-07-05 10:48:07"},
		{"month out of range", "05.13.2006/10:48:07"},
		{"day rolls over", "32.01.2006/10:48:07"},
		{"hour out of range", "05.07.2006/25:00:00"},
		{"trailing garbage", "05.07.2006/10:48:07x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTimestamp(tt.input); got.Valid {
				t.Errorf("ParseTimestamp(%q) = %v, want invalid", tt.input, got.Time)
			}
		})
	}
}
