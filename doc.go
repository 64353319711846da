// Package conio turns the raw byte stream of a terminal device into typed
// keyboard and mouse events.
//
// The package assumes the terminal has already been put into raw,
// non-echoing mode by the caller (for example with golang.org/x/term).
// It provides a blocking SyncReader, a goroutine-backed AsyncReader with
// channel delivery, a raw until-delimiter passthrough, and commands for
// toggling mouse reporting.
package conio
