package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"120", 120 * time.Second},
		{" 3 ", 3 * time.Second},
		{"-1", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		if got := ParseRetryAfter(tt.in); got != tt.want {
			t.Errorf("ParseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHTTPError_Temporary(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{400, false},
		{401, false},
		{404, false},
	}
	for _, tt := range tests {
		e := &HTTPError{StatusCode: tt.status}
		if got := e.Temporary(); got != tt.want {
			t.Errorf("HTTPError{%d}.Temporary() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestHTTPError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &HTTPError{StatusCode: 502, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected HTTPError to unwrap to its cause")
	}
	if err.Error() != "upstream HTTP 502: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}
