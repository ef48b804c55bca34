// Package core provides the state and behavior of the artwork selection table.
//
// # Error Codes Reference
//
// Technical errors are mapped to user-friendly messages with codes for support
// reference. Fetch failures never reach the user (the table keeps the last
// good page), but their codes are logged so a report can be correlated.
//
// # Upstream API Errors (API001-API099)
//
//	API001 - Catalog unreachable: transport failure talking to the API
//	         Patterns: "connection refused", "no such host", "connection reset"
//
//	API002 - Catalog error: the API answered with a non-2xx status
//	         Patterns: "unexpected status"
//
//	API003 - Catalog response unreadable: the body was not the expected JSON
//	         Patterns: "decode response", "missing data"
//
//	API004 - Superseded: a newer page request replaced this one
//	         Patterns: "stale response"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ002 - Request timed out
//	         Patterns: "context deadline exceeded", "timeout"
//
//	REQ003 - Malformed request: bad page index, ID, or body
//	         Patterns: "invalid request"
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Limit exceeded: proposed selection is larger than the limit
//	SEL002 - Unknown artwork: an ID was proposed that is not on any known page
//	         Patterns: "unknown artwork"
//
// # Submission Errors (SUB001-SUB099)
//
//	SUB000 - Submitted (success notice)
//	SUB001 - Not exact: selection size differs from the limit
//	SUB002 - Submission log unavailable
//	         Patterns: "submission store"
//
//	SUB003 - No submission history: the server runs without a database
//	         Patterns: "submission history not configured"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired
//	         Patterns: "session not found"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check application logs for the
// original technical error when users report ERR000.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are listed
// before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Upstream API Errors (API001-API004)
	// =========================================================================
	{
		pattern: "stale response",
		msg: UserMessage{
			Message: "A newer page request replaced this one",
			Action:  "No action needed",
			Code:    "API004",
		},
	},
	{
		pattern: "unexpected status",
		msg: UserMessage{
			Message: "The artwork catalog returned an error",
			Action:  "Please try another page or try again later",
			Code:    "API002",
		},
	},
	{
		pattern: "decode response",
		msg: UserMessage{
			Message: "The artwork catalog response could not be read",
			Action:  "Please try again later",
			Code:    "API003",
		},
	},
	{
		pattern: "missing data",
		msg: UserMessage{
			Message: "The artwork catalog response could not be read",
			Action:  "Please try again later",
			Code:    "API003",
		},
	},
	{
		pattern: "submission store",
		msg: UserMessage{
			Message: "The submission could not be recorded",
			Action:  "Your selection was logged; contact support if this persists",
			Code:    "SUB002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the artwork catalog",
			Action:  "Please try again in a few moments",
			Code:    "API001",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Unable to reach the artwork catalog",
			Action:  "Check the network connection",
			Code:    "API001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Connection to the artwork catalog was interrupted",
			Action:  "Please try again",
			Code:    "API001",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ003)
	// =========================================================================
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request could not be understood",
			Action:  "Reload the page and try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again later",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again later",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Selection and Session Errors
	// =========================================================================
	{
		pattern: "unknown artwork",
		msg: UserMessage{
			Message: "That artwork is not on a loaded page",
			Action:  "Reload the page and select again",
			Code:    "SEL002",
		},
	},
	{
		pattern: "submission history not configured",
		msg: UserMessage{
			Message: "Submission history is not available",
			Action:  "Configure DATABASE_URL to record submissions",
			Code:    "SUB003",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Reload the page to start a new selection",
			Code:    "SES001",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or ERR000 when nothing matches.
//
// Example:
//
//	err := errors.New("artic: unexpected status 503")
//	msg := MapError(err)
//	// msg.Code == "API002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
