package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLocation rejects blank locations before any request is made
	ErrInvalidLocation = errors.New("please enter a valid location")
	// ErrMissingAPIKey is returned when no provider key is configured
	ErrMissingAPIKey = errors.New("weather API key is missing")
	// ErrNotFound means the provider could not resolve the location
	ErrNotFound = errors.New("location not found")
	// ErrInvalidAPIKey means the provider rejected the configured key
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrTransport covers network failures and unreadable payloads
	ErrTransport = errors.New("weather request failed")
)

const fallbackProviderMessage = "Failed to fetch weather data"

// ProviderError carries a provider-reported failure for codes without a
// dedicated outcome.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fallbackProviderMessage
	}
	if e.Code == "" {
		return msg
	}
	return fmt.Sprintf("provider error %s: %s", e.Code, msg)
}
