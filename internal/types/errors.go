package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned by domain queries for caller mistakes.
var ErrInvalidInput = errors.New("invalid input")

// ProviderErrorKind classifies a ProviderError.
type ProviderErrorKind string

const (
	ProviderErrAuth      ProviderErrorKind = "auth"
	ProviderErrTransport ProviderErrorKind = "transport"
	ProviderErrEmpty     ProviderErrorKind = "empty_response"
	ProviderErrRateLimit ProviderErrorKind = "rate_limit"
)

// ProviderError is a transport, auth or empty-response failure from an LLM backend.
type ProviderError struct {
	Provider ProviderID
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err, unless it is already a ProviderError.
func NewProviderError(p ProviderID, kind ProviderErrorKind, err error) error {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: p, Kind: kind, Err: err}
}

// RateLimitError marks a quota/429 failure. It may be retried.
type RateLimitError struct {
	ProviderError
}

func NewRateLimitError(p ProviderID, err error) *RateLimitError {
	return &RateLimitError{ProviderError{Provider: p, Kind: ProviderErrRateLimit, Err: err}}
}

func (e *RateLimitError) Error() string { return e.ProviderError.Error() }

func (e *RateLimitError) Unwrap() error { return &e.ProviderError }

// MalformedResponseError means the adapter returned text that is not valid
// JSON or does not match the expected shape.
type MalformedResponseError struct {
	Provider ProviderID
	Snippet  string
	Err      error
}

const maxSnippetLen = 200

func NewMalformedResponseError(p ProviderID, raw string, err error) *MalformedResponseError {
	snippet := raw
	if len(snippet) > maxSnippetLen {
		snippet = snippet[:maxSnippetLen] + "..."
	}
	return &MalformedResponseError{Provider: p, Snippet: snippet, Err: err}
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned a malformed response: %v", e.Provider, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// EnrichmentLookupError is an image, geocode or AQI failure. It never
// reaches the user.
type EnrichmentLookupError struct {
	Lookup string // "image", "geocode", "aqi"
	Query  string
	Err    error
}

func (e *EnrichmentLookupError) Error() string {
	return fmt.Sprintf("%s lookup for %q failed: %v", e.Lookup, e.Query, e.Err)
}

func (e *EnrichmentLookupError) Unwrap() error { return e.Err }

// CacheIOError is a read or write failure against the cache store.
type CacheIOError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *CacheIOError) Unwrap() error { return e.Err }

// FetchErrorProvider extracts the provider from any orchestrator error.
func FetchErrorProvider(err error) (ProviderID, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Provider, true
	}
	var me *MalformedResponseError
	if errors.As(err, &me) {
		return me.Provider, true
	}
	return "", false
}

// Notification is a transient, user visible message about a failed request.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	Provider  ProviderID `json:"provider"`
	Kind      string     `json:"kind"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

// Response is the envelope written by api.ErrorResponse.
type Response struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
