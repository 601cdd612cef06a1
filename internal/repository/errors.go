package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the
// store. Callers should check for it with errors.Is.
var ErrNotFound = errors.New("record not found")
