package handle

import "errors"

var (
	// ErrInvalidHandle is returned when a handle is negative, at or past
	// the table's size, or was destroyed.
	ErrInvalidHandle = errors.New("handle: invalid or destroyed handle")
	// ErrNotSupported is returned by Editor: the external renderer it
	// would block on is a collaborator this engine never implements.
	ErrNotSupported = errors.New("handle: not supported")
)
