package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrRead  = errors.New("storage read failed")
	ErrWrite = errors.New("storage write failed")
)
