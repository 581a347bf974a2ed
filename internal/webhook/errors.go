package webhook

import "errors"

var (
	// ErrParsePayload wraps any failure to decode a push payload.
	ErrParsePayload = errors.New("could not parse JSON payload")
	// ErrPayloadShape is returned for valid JSON that does not look like a push payload.
	ErrPayloadShape = errors.New("unexpected push payload shape")
	// ErrPayloadTooLarge is returned when the body exceeds Config.MaxBodyBytes.
	ErrPayloadTooLarge = errors.New("payload too large")
)
