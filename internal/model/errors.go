package model

import "errors"

var (
	// ErrNotFound is returned by stores when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores on a uniqueness constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)
