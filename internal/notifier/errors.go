package notifier

import "errors"

var (
	// ErrNoMessage means the push has no commits and is neither a creation nor a deletion.
	ErrNoMessage = errors.New("nothing to notify")
	// ErrMalformedPayload means a field needed for rendering is missing.
	ErrMalformedPayload = errors.New("malformed push payload")
)
