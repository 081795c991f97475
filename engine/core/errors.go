package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPlatform matches every PlatformError via errors.Is.
	ErrPlatform = errors.New("platform error")

	// ErrNotEnoughData is returned when a pixel buffer is too small for the
	// region it should fill. The device never reads past the buffer.
	ErrNotEnoughData = errors.New("not enough pixel data")

	// ErrOutOfBounds is returned when a texture region does not lie inside
	// the texture.
	ErrOutOfBounds = errors.New("region outside texture bounds")
)

// PlatformError reports that the graphics driver rejected an operation.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	if e.Err == nil {
		return "platform: " + e.Op
	}
	return "platform: " + e.Op + ": " + e.Err.Error()
}

func (e *PlatformError) Unwrap() error { return e.Err }

func (e *PlatformError) Is(target error) bool { return target == ErrPlatform }

// NotEnoughDataError carries the byte counts behind ErrNotEnoughData.
type NotEnoughDataError struct {
	Expected, Actual int
}

func (e *NotEnoughDataError) Error() string {
	return fmt.Sprintf("not enough pixel data: expected %d bytes, got %d", e.Expected, e.Actual)
}

func (e *NotEnoughDataError) Is(target error) bool { return target == ErrNotEnoughData }
