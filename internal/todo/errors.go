package todo

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned by mutations issued before Load has finished.
var ErrNotLoaded = errors.New("todo: list not loaded yet")

// ErrClosed is returned by mutations issued after Close.
var ErrClosed = errors.New("todo: store closed")

// StorageReadError reports a failed read or decode of the persisted list.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read %q: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError reports a failed encode or write of the list.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
