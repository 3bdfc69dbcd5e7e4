package serialize

import "errors"

var (
	// ErrMalformed is returned for any token-stream shape the parser does
	// not recognize: missing braces, an unexpected token, or a record with
	// the wrong field count.
	ErrMalformed = errors.New("serialize: malformed record")
	// ErrNegativeDuration is returned when an arc record's duration field
	// parses to a negative number.
	ErrNegativeDuration = errors.New("serialize: arc has negative duration")
	// ErrUnknownNode is returned when an arc record names a place or
	// transition key that was never declared.
	ErrUnknownNode = errors.New("serialize: arc refers to unknown node")
	// ErrEmptyNet is returned by Save when net has no places and no
	// transitions.
	ErrEmptyNet = errors.New("serialize: net is empty")
)
