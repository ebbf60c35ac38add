package repository

import "errors"

// ErrNotFound is returned by every repository when a lookup matches no row.
var ErrNotFound = errors.New("not found")
