package opengl

import "errors"

var (
	// ErrNoContext is returned by CreateBase when no context request succeeds.
	ErrNoContext = errors.New("opengl: no usable GL context")
	// ErrWindowGone is returned by window operations after Destroy.
	ErrWindowGone = errors.New("opengl: window destroyed")
	// ErrZeroSize is returned while the framebuffer is 0x0 (minimized).
	ErrZeroSize = errors.New("opengl: framebuffer has zero size")
	// ErrTooManyTextures is returned by AddTexture when the table is full.
	ErrTooManyTextures = errors.New("opengl: texture table full")
)
