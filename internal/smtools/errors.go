package smtools

import (
	"errors"

	"github.com/containerd/errdefs"
)

var (
	// ErrNotADirectory is returned when a path that must be a directory
	// does not exist or is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrInvalidArgument is returned when a path that must be a regular file
	// does not exist or is not a regular file.
	ErrInvalidArgument = errdefs.ErrInvalidArgument

	// ErrNotFound is returned when a walk root does not exist.
	ErrNotFound = errdefs.ErrNotFound
)
