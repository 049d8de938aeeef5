package storage

import "errors"

// ErrDuplicateSlug is returned when an insert violates the unique slug index.
var ErrDuplicateSlug = errors.New("duplicate slug")
