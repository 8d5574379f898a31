//go:build windows

// Package stderr provides a no-op implementation for Windows, where the
// audio backend does not write to the console.
package stderr

import "os"

// Messages never receives on Windows.
var Messages = make(chan string)

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
