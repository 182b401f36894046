package db

import "errors"

// ErrNotFound is returned when a looked-up record does not exist
var ErrNotFound = errors.New("record not found")
