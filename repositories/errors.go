package repositories

import "errors"

// Common repository errors.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate means an insert or update would violate a unique constraint.
	ErrDuplicate = errors.New("repository: duplicate entry")
	// ErrForbidden means the requester is not allowed to act on the record.
	ErrForbidden = errors.New("repository: forbidden")
	// ErrInvalid means the input failed validation.
	ErrInvalid = errors.New("repository: invalid input")
)
