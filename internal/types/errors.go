package types

import (
	"errors"
	"fmt"
)

// Container-access failure classes. Individual field misses are never errors;
// these cover failures to open or read the container itself.
var (
	ErrNotFound      = errors.New("container not found")
	ErrInvalidFormat = errors.New("invalid container format")
	ErrAccessDenied  = errors.New("container access denied")
)

// ContainerError wraps a container-level failure with the path it occurred on.
// It is the only error class the metadata service propagates to callers.
type ContainerError struct {
	Path string
	Err  error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("container %s: %v", e.Path, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

// NewContainerError builds a ContainerError for the given path and cause.
func NewContainerError(path string, err error) *ContainerError {
	return &ContainerError{Path: path, Err: err}
}
