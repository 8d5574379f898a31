//go:build !windows

// Package stderr captures output that the audio backend writes straight to
// file descriptor 2 (ALSA warnings from the speaker, decoder noise), which
// would otherwise corrupt the TUI layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/llehouerou/tilawa/internal/logging"
)

// Messages receives captured stderr lines. The UI shows the latest one in
// its status line; every line is also logged.
var Messages = make(chan string, 100)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start redirects fd 2 into a pipe. Call it before the speaker is
// initialized. On error the program keeps writing to the real stderr.
func Start() error {
	mu.Lock()
	defer mu.Unlock()
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr, pipeRead, pipeWrite, started = orig, r, w, true
	go forward(r)
	return nil
}

func forward(r *os.File) {
	log := logging.For("stderr")
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		log.Warn(line)
		select {
		case Messages <- line:
		default:
		}
	}
}

// WriteOriginal writes to the real stderr, bypassing the capture. Used
// for fatal errors after the TUI exits.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores the original stderr.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if !started {
		return
	}
	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	pipeRead.Close()
	started = false
}
