package documents

import "errors"

var (
	// ErrNotFound means the document does not exist or is deleted.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidType means the upload's content type is outside the
	// allow-list.
	ErrInvalidType = errors.New("unsupported file type")
	// ErrTooLarge means the upload exceeds the size ceiling.
	ErrTooLarge = errors.New("file exceeds maximum size")
	// ErrInvalidInput covers malformed requests (empty file name, bad patch).
	ErrInvalidInput = errors.New("invalid input")
)
