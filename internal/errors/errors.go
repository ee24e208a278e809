package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingClientID  = errors.New("spotify client id not configured")
	ErrNoActiveDevice   = errors.New("no active device")
	ErrNoDevices        = errors.New("no devices found")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrPremiumRequired  = errors.New("spotify premium required")
	ErrRateLimited      = errors.New("rate limited")
	ErrNetworkError     = errors.New("network error")
	ErrTimeout          = errors.New("request timeout")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid configuration")

	ErrSelectionCancelled = errors.New("selection cancelled")
)

// SuggestedError wraps an error with a user-friendly suggestion.
type SuggestedError struct {
	Err        error
	Suggestion string
}

func (e *SuggestedError) Error() string {
	return e.Err.Error()
}

func (e *SuggestedError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SuggestedError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// suggestion pairs a hint with the sentinels and message fragments that
// trigger it. Rules are checked in order.
type suggestion struct {
	is       []error
	contains []string
	text     string
}

var suggestions = []suggestion{
	{
		is:       []error{ErrNotAuthenticated},
		contains: []string{"not authenticated", "invalid access token", "token expired", "oauth2"},
		text:     "Run 'termspot auth login' to authenticate with Spotify",
	},
	{
		is:   []error{ErrMissingClientID},
		text: "Set spotify.client_id in ~/.termspotrc or export TERMSPOT_SPOTIFY_CLIENT_ID",
	},
	{
		is:       []error{ErrNoActiveDevice},
		contains: []string{"no active device"},
		text:     "Type 'devices' to refresh the device list, then 'activate' to pick one",
	},
	{
		is:   []error{ErrNoDevices},
		text: "Open Spotify on a phone, computer or speaker, then type 'devices'",
	},
	{
		is:       []error{ErrDeviceNotFound},
		contains: []string{"device not found"},
		text:     "Type 'devices' to see available devices",
	},
	{
		is:       []error{ErrPremiumRequired},
		contains: []string{"premium required", "restricted device"},
		text:     "Playback control requires Spotify Premium",
	},
	{
		is:       []error{ErrRateLimited},
		contains: []string{"rate limit", "429"},
		text:     "Too many requests. Wait a moment and try again",
	},
	{
		is:       []error{ErrNetworkError, ErrTimeout},
		contains: []string{"network", "timeout", "connection refused"},
		text:     "Check your internet connection and try again",
	},
	{
		is:   []error{ErrConfigNotFound, ErrInvalidConfig},
		text: "Run 'termspot config init' to create a configuration file",
	},
	{
		contains: []string{"500", "server error"},
		text:     "Spotify is having issues. Try again in a moment",
	},
}

func (s suggestion) matches(err error, msg string) bool {
	for _, target := range s.is {
		if errors.Is(err, target) {
			return true
		}
	}
	for _, frag := range s.contains {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}

// GetSuggestion returns a hint for err, or "" when none applies.
// An explicit WithSuggestion hint wins over the built-in rules.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var sErr *SuggestedError
	if errors.As(err, &sErr) && sErr.Suggestion != "" {
		return sErr.Suggestion
	}

	msg := strings.ToLower(err.Error())
	for _, s := range suggestions {
		if s.matches(err, msg) {
			return s.text
		}
	}
	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
