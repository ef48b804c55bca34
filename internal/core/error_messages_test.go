package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "stale response maps correctly",
			err:         fmt.Errorf("load page 2: %w", ErrStaleResponse),
			wantCode:    "API004",
			wantMessage: "A newer page request replaced this one",
		},
		{
			name:        "upstream status maps correctly",
			err:         errors.New("artic: unexpected status 503 Service Unavailable"),
			wantCode:    "API002",
			wantMessage: "The artwork catalog returned an error",
		},
		{
			name:        "decode failure maps correctly",
			err:         errors.New("artic: decode response: invalid character '<'"),
			wantCode:    "API003",
			wantMessage: "The artwork catalog response could not be read",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			wantCode:    "API001",
			wantMessage: "Unable to reach the artwork catalog",
		},
		{
			name:        "deadline maps correctly",
			err:         errors.New("Get \"https://api.artic.edu\": context deadline exceeded"),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "session not found maps correctly",
			err:         fmt.Errorf("lookup abc: %w", ErrSessionNotFound),
			wantCode:    "SES001",
			wantMessage: "Your session has expired",
		},
		{
			name:        "submission store maps correctly",
			err:         errors.New("submission store: insert: connection refused"),
			wantCode:    "SUB002",
			wantMessage: "The submission could not be recorded",
		},
		{
			name:        "missing history maps correctly",
			err:         ErrNoHistory,
			wantCode:    "SUB003",
			wantMessage: "Submission history is not available",
		},
		{
			name:        "malformed request maps correctly",
			err:         errors.New(`invalid request: page index "x"`),
			wantCode:    "REQ003",
			wantMessage: "The request could not be understood",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("RATE LIMIT exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(errors.New("rate limit exceeded"))

	expected := "Too many requests (Code: RATE001). Please wait a moment before trying again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}
