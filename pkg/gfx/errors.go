// ABOUTME: Sentinel errors for the graphics runtime; callers match with errors.Is
// ABOUTME: Pixel writes and blits never return these: they clip silently instead

package gfx

import "errors"

var (
	// ErrTerminalSizeUnavailable is returned when the terminal dimensions
	// cannot be queried at startup.
	ErrTerminalSizeUnavailable = errors.New("terminal size unavailable")

	// ErrOutOfBounds is returned by GetPixel for coordinates outside the buffer.
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrIO wraps any failure to write or flush the output stream.
	ErrIO = errors.New("terminal output failed")

	// ErrImageDecode wraps failures to open or decode an image file.
	ErrImageDecode = errors.New("image decode failed")

	// ErrInvalidInput is returned when raw terminal input is not valid UTF-8.
	ErrInvalidInput = errors.New("terminal input is not valid UTF-8")

	// ErrInvalidConfig is returned for unusable startup configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)
