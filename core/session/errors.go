package session

import "errors"

var (
	// ErrMalformed is returned when a session blob is not valid base64 or JSON.
	ErrMalformed = errors.New("malformed session")
	// ErrExpired is returned when a session has expired and is no longer valid.
	ErrExpired = errors.New("session has expired")
	// ErrIncomplete is returned when a company session is missing the company ID
	// or the access token.
	ErrIncomplete = errors.New("session is missing required fields")
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
)
