//go:build !windows

package conio

import (
	"io"
	"os"
	"time"

	"github.com/pkg/term"
	"github.com/xyproto/env/v2"
)

type unixConsole struct {
	t *term.Term
}

// NewConsole opens the controlling terminal device for reading and
// writing. It does not change the terminal mode beyond the per-read
// timeout; raw mode is the caller's responsibility.
func NewConsole() (Console, error) {
	t, err := term.Open(consolePath())
	if err != nil {
		return nil, err
	}
	return &unixConsole{t: t}, nil
}

// consolePath returns the device to read from, preferring the multiplexer
// pane or SSH session device when one is advertised.
func consolePath() string {
	if tmuxTTY := env.Str("TMUX_PANE_TTY"); tmuxTTY != "" {
		return tmuxTTY
	}
	if sshTTY := env.Str("SSH_TTY"); sshTTY != "" {
		return sshTTY
	}
	if _, err := os.Stat("/dev/tty"); err == nil {
		return "/dev/tty"
	}
	return "/dev/stdin"
}

func (c *unixConsole) Read(p []byte) (int, error) {
	// Zero timeout means VMIN=1: block until at least one byte.
	if err := c.t.SetReadTimeout(0); err != nil {
		return 0, err
	}
	return c.t.Read(p)
}

// ReadTimeout waits at most d for input. termios VTIME counts in tenths
// of a second, so the tty layer rounds d up to the next 100ms step.
func (c *unixConsole) ReadTimeout(p []byte, d time.Duration) (int, error) {
	if err := c.t.SetReadTimeout(d); err != nil {
		return 0, err
	}
	n, err := c.t.Read(p)
	if n == 0 && err == io.EOF {
		// VTIME expired without input.
		return 0, nil
	}
	return n, err
}

func (c *unixConsole) Write(p []byte) (int, error) {
	return c.t.Write(p)
}

func (c *unixConsole) Close() error {
	c.t.Restore()
	return c.t.Close()
}
