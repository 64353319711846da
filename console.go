package conio

import (
	"errors"
	"time"
)

// ErrClosed is returned for operations on a console that has been closed.
var ErrClosed = errors.New("conio: console is closed")

// Console is the small capability set this package needs from the
// platform: read raw input units and write raw bytes. NewConsole picks the
// platform implementation; everything else in the package depends only on
// this interface, so tests substitute an in-memory one.
//
// The console is expected to already be in raw, non-echoing mode. Putting
// it there and restoring it afterwards is the caller's job.
type Console interface {
	// Read blocks until at least one byte is available.
	Read(p []byte) (int, error)

	// ReadTimeout waits at most d for input. It returns 0 bytes and a nil
	// error when the wait expires.
	ReadTimeout(p []byte, d time.Duration) (int, error)

	// Write sends raw bytes to the terminal.
	Write(p []byte) (int, error)

	// Close releases the device handle.
	Close() error
}
