//go:build !windows

// Package stderr captures writes to file descriptor 2 while the terminal
// UI owns the screen. The structured logger and anything a child process
// prints before its pipes are wired both land on fd 2 and would corrupt
// the alternate-screen layout; captured lines are surfaced through the
// UI message area instead.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Messages receives the captured stderr lines. The terminal UI drains
// this channel and shows the lines in its message area.
var Messages = make(chan string, 100)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start redirects fd 2 into a pipe and forwards its lines to Messages.
// Call before the terminal UI takes over the screen. Failure to set up
// capture is not fatal; output then goes to the real stderr as usual.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go func() {
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case Messages <- line:
			default:
				// Nobody is draining; drop rather than block fd 2.
			}
		}
	}()

	return nil
}

// WriteOriginal writes to the saved stderr, bypassing capture. For fatal
// errors that must reach the terminal even mid-capture.
func WriteOriginal(msg string) {
	if origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
	}
}

// Stop restores fd 2 and closes Messages. Call after the terminal UI has
// released the screen.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)

	pipeWrite.Close()
	pipeRead.Close()

	close(Messages)
	started = false
}
