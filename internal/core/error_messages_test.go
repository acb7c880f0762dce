package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no measurements", fmt.Errorf("x.dfq: %w", ErrNoMeasurements), "FILE001"},
		{"empty file", fmt.Errorf("x.dfq: %w", ErrEmptyFile), "FILE002"},
		{"body too large", errors.New("http: request body too large"), "FILE003"},
		{"no files", ErrNoFiles, "FILE004"},
		{"limiter full", ErrTooManyConversions, "CNV001"},
		{"cancelled", errors.New("context canceled"), "CNV003"},
		{"deadline", errors.New("context deadline exceeded"), "CNV004"},
		{"duplicate account", errors.New(`duplicate key value violates unique constraint "users_username_key"`), "ACC002"},
		{"db down", errors.New("dial tcp: connection refused"), "DB001"},
		{"rate limited", errors.New("rate limit exceeded"), "RATE001"},
		{"unknown", errors.New("something exploded"), "ERR000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %s, want %s", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	if got := MapError(nil); got.Code != "" {
		t.Errorf("MapError(nil) = %+v, want zero value", got)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrNoMeasurements)
	want := "The file contains no measurement values (Code: FILE001). Check that the file is a Q-DAS transfer file with value lines"
	if got != want {
		t.Errorf("FormatUserError = %q, want %q", got, want)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(ErrNoMeasurements) {
		t.Error("known pattern should be user facing")
	}
	if IsUserFacing(errors.New("mystery failure")) {
		t.Error("unknown error should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil is never user facing")
	}
}
