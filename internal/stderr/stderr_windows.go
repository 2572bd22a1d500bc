//go:build windows

// Package stderr is a no-op on Windows, where the console APIs do not
// allow swapping fd 2 out from under a running process the same way.
package stderr

import "os"

// Messages receives captured stderr lines; never written on Windows.
var Messages = make(chan string, 100)

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
